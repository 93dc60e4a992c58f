package stomp

// Builder functions for the outbound frames this client sends. Each one
// funnels through NewFrame so a malformed frame is rejected at
// construction time, giving Client a single failure mode
// (ErrCouldNotCreateValidFrame) for bad outbound construction.

// ConnectFrame builds a STOMP frame for host using the given credentials.
func ConnectFrame(host, login, passcode string) (Frame, error) {
	headers := NewHeaders()
	headers.Set(HeaderAcceptVersion, "1.2")
	headers.Set(HeaderHost, host)
	headers.Set(HeaderLogin, login)
	headers.Set(HeaderPasscode, passcode)
	return NewFrame(CommandStomp, headers, nil)
}

// SubscribeFrame builds a SUBSCRIBE frame for destination, identified by
// id, requesting a RECEIPT frame carrying the same id so the caller can
// correlate the server's acknowledgement with the subscription.
func SubscribeFrame(destination, id string) (Frame, error) {
	headers := NewHeaders()
	headers.Set(HeaderID, id)
	headers.Set(HeaderDestination, destination)
	headers.Set(HeaderAck, "auto")
	headers.Set(HeaderReceipt, id)
	return NewFrame(CommandSubscribe, headers, nil)
}

// UnsubscribeFrame builds an UNSUBSCRIBE frame for the subscription id.
func UnsubscribeFrame(id string) (Frame, error) {
	headers := NewHeaders()
	headers.Set(HeaderID, id)
	return NewFrame(CommandUnsubscribe, headers, nil)
}

// DisconnectFrame builds a DISCONNECT frame, optionally requesting a
// RECEIPT frame carrying receipt.
func DisconnectFrame(receipt string) (Frame, error) {
	headers := NewHeaders()
	if receipt != "" {
		headers.Set(HeaderReceipt, receipt)
	}
	return NewFrame(CommandDisconnect, headers, nil)
}
