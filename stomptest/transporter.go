// Package stomptest provides an in-memory fake of stomp.Transporter so the
// STOMP client's state machine can be tested without a real WebSocket
// server, the Go rendition of injecting a test double as a value rather
// than subclassing a template parameter.
package stomptest

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send once the fake has been closed.
var ErrClosed = errors.New("stomptest: transporter closed")

// Transporter is an in-memory stomp.Transporter. The zero value is not
// ready to use; call New. Tests drive it by calling Deliver to simulate an
// inbound message and CloseFromServer to simulate the remote side closing.
type Transporter struct {
	connectErr error

	mu     sync.Mutex
	closed bool
	sent   [][]byte

	sendErr func(data []byte) error

	messages chan []byte
	done     chan error
}

// New returns a ready Transporter. If connectErr is non-nil, Connect
// returns it instead of succeeding.
func New(connectErr error) *Transporter {
	return &Transporter{
		connectErr: connectErr,
		messages:   make(chan []byte, 16),
		done:       make(chan error, 1),
	}
}

// Connect implements stomp.Transporter.
func (t *Transporter) Connect(ctx context.Context) error {
	return t.connectErr
}

// Send implements stomp.Transporter. It records every frame sent so tests
// can assert on it with Sent, and fails with whatever SendFails configured.
func (t *Transporter) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.sendErr != nil {
		if err := t.sendErr(data); err != nil {
			return err
		}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	t.sent = append(t.sent, cp)
	return nil
}

// Close implements stomp.Transporter: it closes locally, with a nil error
// on Closed().
func (t *Transporter) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()
	close(t.messages)
	t.done <- nil
	return nil
}

// Messages implements stomp.Transporter.
func (t *Transporter) Messages() <-chan []byte {
	return t.messages
}

// Closed implements stomp.Transporter.
func (t *Transporter) Closed() <-chan error {
	return t.done
}

// SendFails makes every future call to Send evaluate fn; a non-nil return
// value is returned from Send as the failure.
func (t *Transporter) SendFails(fn func(data []byte) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sendErr = fn
}

// Deliver simulates an inbound message from the server.
func (t *Transporter) Deliver(data []byte) {
	t.messages <- data
}

// CloseFromServer simulates the remote side closing the connection. err is
// the error later observed on Closed(); nil reports a clean close.
func (t *Transporter) CloseFromServer(err error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()
	close(t.messages)
	t.done <- err
}

// Sent returns every frame successfully recorded by Send, in order.
func (t *Transporter) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.sent))
	copy(out, t.sent)
	return out
}
