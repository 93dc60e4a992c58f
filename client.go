package stomp

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/uuid"
)

// subscription tracks the handlers and endpoint for one active
// SUBSCRIBE, keyed by its subscription id.
type subscription struct {
	endpoint    string
	onSubscribe func(ClientError, string)
	onMessage   func(ClientError, string)
}

// Client is a STOMP 1.2 client layered over an injected Transporter. It
// implements the subset of STOMP needed to authenticate and subscribe to
// a destination: CONNECT (sent as STOMP, since the transport already
// performed its own handshake) and SUBSCRIBE with receipt-based
// acknowledgement. Close closes the transport without sending a
// DISCONNECT frame.
//
// All user-facing callbacks — onConnect, onDisconnect, onSubscribe,
// onMessage — run on a single dedicated goroutine, so a caller never needs
// to synchronize between them.
type Client struct {
	host     string
	login    string
	passcode string

	transport Transporter
	logger    Logger

	dispatch chan func()

	mu             sync.Mutex
	connectStarted bool
	disconnected   bool
	subscriptions  map[string]subscription
	onConnect      func(ClientError)
	onDisconnect   func(ClientError)
}

// NewClient returns a Client that will authenticate as login/passcode and
// identify itself to the server as host, once Connect is called. transport
// must not be shared between Clients. A nil logger defaults to NilLogger.
func NewClient(host, login, passcode string, transport Transporter, logger Logger) *Client {
	if logger == nil {
		logger = NilLogger
	}
	c := &Client{
		host:          host,
		login:         login,
		passcode:      passcode,
		transport:     transport,
		logger:        logger,
		dispatch:      make(chan func(), 64),
		subscriptions: make(map[string]subscription),
	}
	go c.runDispatch()
	return c
}

// post queues f to run on the client's dispatch goroutine.
func (c *Client) post(f func()) {
	c.dispatch <- f
}

// runDispatch is the client's isolated execution context: the only
// goroutine that ever invokes a caller-supplied callback.
func (c *Client) runDispatch() {
	for f := range c.dispatch {
		f()
	}
}

// Connect opens the underlying transport and performs the STOMP
// handshake. onConnect is called with ErrOk when the server's CONNECTED
// frame arrives, or with the failure reason if the transport cannot
// connect or the STOMP frame cannot be built or sent; if it is called
// with an error, onDisconnect will not be called for that failure.
// onDisconnect is called at most once, when the connection ends; if the
// transport closes before CONNECTED arrives, only onDisconnect is called.
// Connect returns immediately; the handshake runs in the background.
func (c *Client) Connect(ctx context.Context, onConnect, onDisconnect func(ClientError)) {
	c.mu.Lock()
	c.connectStarted = true
	c.onConnect = onConnect
	c.onDisconnect = onDisconnect
	c.mu.Unlock()
	go c.connect(ctx)
}

func (c *Client) connect(ctx context.Context) {
	if err := c.transport.Connect(ctx); err != nil {
		c.logger.Infof("stomp: connect: %v", err)
		c.post(func() { c.fireConnect(ErrCouldNotConnectToServer) })
		return
	}

	frame, err := ConnectFrame(c.host, c.login, c.passcode)
	if err != nil {
		c.logger.Infof("stomp: connect: %v", err)
		c.post(func() { c.fireConnect(ErrCouldNotCreateValidFrame) })
		return
	}

	var buf bytes.Buffer
	if _, err := frame.WriteTo(&buf); err != nil {
		c.post(func() { c.fireConnect(ErrCouldNotCreateValidFrame) })
		return
	}
	if err := c.transport.Send(buf.Bytes()); err != nil {
		c.logger.Infof("stomp: connect: send: %v", err)
		c.post(func() { c.fireConnect(ErrCouldNotSendFrame) })
		return
	}

	go c.readLoop()
}

// readLoop drains the transport's inbound messages until it closes, then
// reports the disconnect. It is the one place Messages() and Closed() are
// read, so their happens-before ordering (every queued message delivered
// before the close is reported) falls out of ranging to completion first.
func (c *Client) readLoop() {
	for msg := range c.transport.Messages() {
		c.handleMessage(msg)
	}
	err := <-c.transport.Closed()
	clientErr := ErrOk
	if err != nil {
		clientErr = ErrServerDisconnected
	}
	c.post(func() { c.fireDisconnect(clientErr) })
}

func (c *Client) handleMessage(data []byte) {
	frame, err := Parse(data)
	if err != nil {
		c.logger.Infof("stomp: could not parse frame: %v", err)
		return
	}
	switch frame.Command {
	case CommandConnected:
		c.post(func() { c.fireConnect(ErrOk) })
	case CommandError:
		c.logger.Infof("stomp: server sent ERROR: %s", frame.Body)
	case CommandMessage:
		c.handleSubscriptionMessage(frame)
	case CommandReceipt:
		c.handleSubscriptionReceipt(frame)
	default:
		c.logger.Infof("stomp: unexpected command from server: %s", frame.Command)
	}
}

func (c *Client) handleSubscriptionMessage(frame Frame) {
	id, _ := frame.Headers.Get(HeaderSubscription)
	c.mu.Lock()
	sub, ok := c.subscriptions[id]
	c.mu.Unlock()
	if !ok {
		c.logger.Infof("stomp: message for unknown subscription %q", id)
		return
	}

	if dest, _ := frame.Headers.Get(HeaderDestination); dest != sub.endpoint {
		c.post(func() {
			if sub.onMessage != nil {
				sub.onMessage(ErrUnexpectedSubscriptionMismatch, "")
			}
		})
		return
	}

	body := string(frame.Body)
	c.post(func() {
		if sub.onMessage != nil {
			sub.onMessage(ErrOk, body)
		}
	})
}

func (c *Client) handleSubscriptionReceipt(frame Frame) {
	id, _ := frame.Headers.Get(HeaderReceiptID)
	c.mu.Lock()
	sub, ok := c.subscriptions[id]
	c.mu.Unlock()
	if !ok {
		c.logger.Infof("stomp: receipt for unknown subscription %q", id)
		return
	}
	c.post(func() {
		if sub.onSubscribe != nil {
			sub.onSubscribe(ErrOk, id)
		}
	})
}

// fireConnect invokes onConnect unless the client has already reached its
// terminal disconnected state. A non-ok error is itself terminal: it
// means the connection never came up, so no disconnect can follow it.
func (c *Client) fireConnect(e ClientError) {
	c.mu.Lock()
	if c.disconnected {
		c.mu.Unlock()
		return
	}
	onConnect := c.onConnect
	if e != ErrOk {
		c.disconnected = true
	}
	c.mu.Unlock()
	if onConnect != nil {
		onConnect(e)
	}
}

// fireDisconnect invokes onDisconnect exactly once, the first time the
// client reaches its terminal state.
func (c *Client) fireDisconnect(e ClientError) {
	c.mu.Lock()
	if c.disconnected {
		c.mu.Unlock()
		return
	}
	c.disconnected = true
	onDisconnect := c.onDisconnect
	c.mu.Unlock()
	if onDisconnect != nil {
		onDisconnect(e)
	}
}

// Subscribe subscribes to destination and returns its subscription id.
// The id is generated and returned as soon as the SUBSCRIBE frame is
// known to be constructible; onSubscribe is called later, once the
// server's receipt confirms the subscription (or the send itself fails).
// onMessage is called for every subsequent MESSAGE frame addressed to
// this subscription. Subscribe returns the empty string if the frame
// could not be constructed.
func (c *Client) Subscribe(destination string, onSubscribe, onMessage func(ClientError, string)) string {
	id := uuid.NewString()

	frame, err := SubscribeFrame(destination, id)
	if err != nil {
		c.post(func() {
			if onSubscribe != nil {
				onSubscribe(ErrCouldNotCreateValidFrame, id)
			}
		})
		return ""
	}

	sub := subscription{endpoint: destination, onSubscribe: onSubscribe, onMessage: onMessage}
	go func() {
		var buf bytes.Buffer
		if _, err := frame.WriteTo(&buf); err == nil {
			err = c.transport.Send(buf.Bytes())
		}
		if err != nil {
			c.logger.Infof("stomp: subscribe: %v", err)
			c.post(func() {
				if onSubscribe != nil {
					onSubscribe(ErrCouldNotSendSubscribeFrame, "")
				}
			})
			return
		}
		c.mu.Lock()
		c.subscriptions[id] = sub
		c.mu.Unlock()
	}()

	return id
}

// Close clears all subscriptions and closes the underlying transport.
// onClose is called once, with ErrOk or ErrCouldNotCloseConnection. Calling
// Close before Connect has ever been called is itself a failure: there is
// no transport to close, so onClose is called with
// ErrCouldNotCloseConnection without touching the transport.
func (c *Client) Close(onClose func(ClientError)) {
	c.mu.Lock()
	started := c.connectStarted
	c.subscriptions = make(map[string]subscription)
	c.mu.Unlock()

	if !started {
		c.post(func() {
			if onClose != nil {
				onClose(ErrCouldNotCloseConnection)
			}
		})
		return
	}

	err := c.transport.Close()
	result := ErrOk
	if err != nil {
		c.logger.Infof("stomp: close: %v", err)
		result = ErrCouldNotCloseConnection
	}
	c.post(func() {
		if onClose != nil {
			onClose(result)
		}
	})
}
