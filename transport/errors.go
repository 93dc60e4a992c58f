package transport

import "errors"

// Closed set of failure reasons Dial/Send/Close can report.
var (
	// ErrMissingCACertFile occurs when no CA certificate file was
	// configured, or it could not be read or parsed.
	ErrMissingCACertFile = errors.New("transport: missing or invalid CA certificate file")

	// ErrCouldNotConnect occurs when DNS resolution, the TCP dial, the
	// TLS handshake, or the WebSocket upgrade fails.
	ErrCouldNotConnect = errors.New("transport: could not connect")

	// ErrSendFailed occurs when writing a message to an open connection
	// fails.
	ErrSendFailed = errors.New("transport: send failed")

	// ErrCloseFailed occurs when closing the connection fails.
	ErrCloseFailed = errors.New("transport: close failed")
)
