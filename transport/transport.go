// Package transport implements a secure WebSocket connection suitable for
// carrying STOMP frames: DNS resolution, TCP, TLS, and the WebSocket
// handshake, wrapped in a narrow channel-based interface so the layer
// above never touches gorilla/websocket directly.
package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is a secure WebSocket connection. Its zero value is not usable;
// construct one with Dial. Conn implements stomp.Transporter.
type Conn struct {
	url     string
	tlsConf *tls.Config
	ws      *websocket.Conn

	writeMu sync.Mutex

	messages chan []byte
	done     chan error

	closeOnce sync.Once
	closeErr  error
}

// Config configures a Dial.
type Config struct {
	// URL is the wss:// URL to connect to, e.g.
	// "wss://host:port/network-events".
	URL string

	// CACertFile is a PEM file containing the trust anchor used to
	// verify the server's certificate. Required: this client never
	// dials without a pinned CA.
	CACertFile string
}

// Dial resolves, opens a TLS connection, and completes the WebSocket
// handshake against cfg.URL, verifying the peer against cfg.CACertFile.
// It does not return until the handshake succeeds or ctx is done.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	if cfg.CACertFile == "" {
		return nil, ErrMissingCACertFile
	}

	pem, err := os.ReadFile(cfg.CACertFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCACertFile, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: no certificates found in %s", ErrMissingCACertFile, cfg.CACertFile)
	}
	tlsConf := &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}

	dialer := websocket.Dialer{TLSClientConfig: tlsConf}
	ws, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCouldNotConnect, err)
	}

	c := &Conn{
		url:      cfg.URL,
		tlsConf:  tlsConf,
		ws:       ws,
		messages: make(chan []byte, 64),
		done:     make(chan error, 1),
	}
	go c.readPump()
	return c, nil
}

// readPump is the connection's distinct execution context for inbound
// data: the only goroutine that ever reads from the underlying websocket.
// It closes messages only after every already-received message has been
// forwarded, then reports the close on done exactly once — guaranteeing
// callers that range over Messages to completion before reading Closed
// see every already-queued message before the close is visible.
func (c *Conn) readPump() {
	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			close(c.messages)
			c.reportClosed(err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		c.messages <- data
	}
}

func (c *Conn) reportClosed(err error) {
	c.closeOnce.Do(func() {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			err = nil
		}
		c.closeErr = err
		c.done <- err
	})
}

// Connect satisfies stomp.Transporter for an already-dialed Conn: the
// handshake already happened in Dial, so Connect is a no-op success.
func (c *Conn) Connect(ctx context.Context) error {
	return nil
}

// Send writes data as a single WebSocket text message. Writes are
// serialized with a mutex: gorilla/websocket permits only one concurrent
// writer per connection.
func (c *Conn) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Close closes the connection from this side with a normal closure frame.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = nil
		c.done <- nil
	})
	c.writeMu.Lock()
	deadline := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := c.ws.WriteMessage(websocket.CloseMessage, deadline)
	c.writeMu.Unlock()
	closeErr := c.ws.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCloseFailed, err)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrCloseFailed, closeErr)
	}
	return nil
}

// Messages returns the channel of inbound text messages. It is closed
// once the connection ends, after every already-received message has
// been delivered.
func (c *Conn) Messages() <-chan []byte {
	return c.messages
}

// Closed returns a channel receiving exactly one value once the
// connection has ended. A nil value means the close was initiated
// locally via Close or was a clean remote closure.
func (c *Conn) Closed() <-chan error {
	return c.done
}
