package stomp

// ClientError is the closed set of failure reasons a Client reports to its
// on_connect/on_disconnect/on_subscribe/on_message callbacks.
type ClientError int

const (
	// ErrOk indicates success; it is the value passed to a callback when
	// no error occurred.
	ErrOk ClientError = iota

	// ErrUndefined is reserved for failures that don't fit any other
	// member of this set. No code path currently produces it.
	ErrUndefined

	// ErrCouldNotCloseConnection occurs when the underlying transport
	// reports an error while closing.
	ErrCouldNotCloseConnection

	// ErrCouldNotConnectToServer occurs when the underlying transport
	// fails to establish a connection.
	ErrCouldNotConnectToServer

	// ErrCouldNotSendFrame occurs when sending the STOMP CONNECT frame
	// over an already-open transport fails.
	ErrCouldNotSendFrame

	// ErrCouldNotSendSubscribeFrame occurs when sending a SUBSCRIBE frame
	// fails after the frame was successfully constructed.
	ErrCouldNotSendSubscribeFrame

	// ErrCouldNotCreateValidFrame occurs when constructing an outbound
	// frame fails. An inbound message that fails to parse is only logged.
	ErrCouldNotCreateValidFrame

	// ErrUnexpectedSubscriptionMismatch occurs when a MESSAGE frame's
	// destination header does not match the subscription it was
	// addressed to.
	ErrUnexpectedSubscriptionMismatch

	// ErrServerDisconnected occurs when the transport closes from the
	// remote side after a connection was established.
	ErrServerDisconnected

	// ErrUnexpectedMessageContentType is reserved for a non-text
	// WebSocket message. The transport drops those before they reach the
	// client, so no code path currently produces it either.
	ErrUnexpectedMessageContentType
)

// String returns a short human-readable name for e.
func (e ClientError) String() string {
	switch e {
	case ErrOk:
		return "ok"
	case ErrUndefined:
		return "undefined error"
	case ErrCouldNotCloseConnection:
		return "could not close connection"
	case ErrCouldNotConnectToServer:
		return "could not connect to server"
	case ErrCouldNotSendFrame:
		return "could not send frame"
	case ErrCouldNotSendSubscribeFrame:
		return "could not send subscribe frame"
	case ErrCouldNotCreateValidFrame:
		return "could not create valid frame"
	case ErrUnexpectedSubscriptionMismatch:
		return "unexpected subscription mismatch"
	case ErrServerDisconnected:
		return "server disconnected"
	case ErrUnexpectedMessageContentType:
		return "unexpected message content type"
	default:
		return "undefined error"
	}
}
