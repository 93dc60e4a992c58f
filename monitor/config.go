package monitor

// Config is the full set of inputs Configure needs to bring up a monitor.
// It is immutable after Configure returns.
type Config struct {
	// ServerURL is the bare hostname of the STOMP-over-WebSocket server,
	// e.g. "ltnm.learncppthroughprojects.com".
	ServerURL string

	// ServerPort is the server's TLS port, e.g. 443.
	ServerPort int

	// Username and Password authenticate the STOMP CONNECT.
	Username string
	Password string

	// CACertFile is a PEM file containing the trust anchor used to
	// verify the server's certificate, for both the WebSocket transport
	// and the layout download.
	CACertFile string

	// NetworkLayoutFile is a local path to a network-layout document. If
	// empty, the layout is downloaded from the server instead.
	NetworkLayoutFile string
}
