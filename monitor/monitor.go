// Package monitor orchestrates the frame codec, secure WebSocket
// transport, STOMP client, and transport-network model into a single
// running live occupancy monitor: it connects, subscribes to the
// passenger-event stream, and feeds every decoded event into the network
// model, tracking the last error observed along the way.
package monitor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	stomp "github.com/nofeaturesonlybugs/network-monitor"
	"github.com/nofeaturesonlybugs/network-monitor/internal/download"
	"github.com/nofeaturesonlybugs/network-monitor/network"
	"github.com/nofeaturesonlybugs/network-monitor/transport"
)

const passengerDestination = "/passengers"

// Monitor ties the STOMP client to a Network and tracks the last error
// observed across a Configure/Run cycle. The zero value is not usable;
// construct one with New.
type Monitor struct {
	logger stomp.Logger

	mu         sync.Mutex
	lastError  Error
	cfg        Config
	network    *network.Network
	client     *stomp.Client
	connected  bool
	subscribed bool
	stopCh     chan struct{}
	stopOnce   *sync.Once
}

// New returns a Monitor that logs through logger. A nil logger defaults to
// stomp.NilLogger.
func New(logger stomp.Logger) *Monitor {
	if logger == nil {
		logger = stomp.NilLogger
	}
	return &Monitor{logger: logger}
}

// Configure validates cfg, obtains the network layout (locally or by
// download) and builds the Network from it. Every failure here is
// synchronous and fatal: Configure does not attempt to connect to the
// STOMP server.
func (m *Monitor) Configure(ctx context.Context, cfg Config) error {
	if _, err := os.Stat(cfg.CACertFile); err != nil {
		m.setLastError(MissingCaCertFile)
		return fmt.Errorf("%w: %v", errMissingCaCertFile, err)
	}

	data, err := m.loadLayoutDocument(ctx, cfg)
	if err != nil {
		return err
	}

	layout, err := network.ParseLayout(data)
	if err != nil {
		m.setLastError(FailedNetworkLayoutFileParsing)
		return fmt.Errorf("%w: %v", errFailedLayoutParsing, err)
	}

	net, err := network.FromLayout(layout)
	if err != nil {
		m.setLastError(FailedTransportNetworkConstruction)
		return fmt.Errorf("%w: %v", errFailedNetworkConstruction, err)
	}

	m.mu.Lock()
	m.cfg = cfg
	m.network = net
	m.mu.Unlock()
	return nil
}

func (m *Monitor) loadLayoutDocument(ctx context.Context, cfg Config) ([]byte, error) {
	if cfg.NetworkLayoutFile == "" {
		data, err := download.FetchLayout(ctx, cfg.ServerURL, cfg.ServerPort, cfg.CACertFile)
		if err != nil {
			m.setLastError(FailedNetworkLayoutFileDownload)
			return nil, fmt.Errorf("%w: %v", errFailedLayoutDownload, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(cfg.NetworkLayoutFile)
	if err != nil {
		m.setLastError(MissingNetworkLayoutFile)
		return nil, fmt.Errorf("%w: %v", errMissingLayoutFile, err)
	}
	return data, nil
}

// Run dials the STOMP server, subscribes to the passenger-event stream,
// and records every event until duration elapses, Stop is called, or the
// STOMP session ends. A non-positive duration means run until Stop is
// called or the session ends. Run returns once the monitor has stopped;
// the caller inspects GetLastErrorCode for the outcome.
func (m *Monitor) Run(ctx context.Context, duration time.Duration) error {
	m.mu.Lock()
	cfg := m.cfg
	stopOnce := &sync.Once{}
	stopCh := make(chan struct{})
	m.stopCh = stopCh
	m.stopOnce = stopOnce
	m.mu.Unlock()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	url := fmt.Sprintf("wss://%s:%d/network-events", cfg.ServerURL, cfg.ServerPort)
	conn, err := transport.Dial(ctx, transport.Config{URL: url, CACertFile: cfg.CACertFile})
	if err != nil {
		m.setLastError(CouldNotConnectToStompClient)
		return fmt.Errorf("%w: %v", errCouldNotConnect, err)
	}

	client := stomp.NewClient(cfg.ServerURL, cfg.Username, cfg.Password, conn, m.logger)
	m.mu.Lock()
	m.client = client
	m.mu.Unlock()

	sessionEnded := make(chan struct{})
	var endOnce sync.Once
	endSession := func() { endOnce.Do(func() { close(sessionEnded) }) }

	client.Connect(ctx, func(e stomp.ClientError) {
		if e != stomp.ErrOk {
			m.setLastError(CouldNotConnectToStompClient)
			endSession()
			return
		}
		m.mu.Lock()
		m.connected = true
		m.mu.Unlock()
		m.subscribe(client)
	}, func(e stomp.ClientError) {
		if e != stomp.ErrOk {
			m.setLastError(StompClientDisconnected)
		}
		m.mu.Lock()
		m.connected = false
		m.subscribed = false
		m.mu.Unlock()
		endSession()
	})

	select {
	case <-ctx.Done():
	case <-stopCh:
	case <-sessionEnded:
	}

	closed := make(chan struct{})
	client.Close(func(stomp.ClientError) { close(closed) })
	select {
	case <-closed:
	case <-time.After(time.Second):
	}
	return nil
}

func (m *Monitor) subscribe(client *stomp.Client) {
	client.Subscribe(passengerDestination,
		func(e stomp.ClientError, _ string) {
			if e != stomp.ErrOk {
				m.setLastError(CouldNotSubscribeToPassengerEvents)
				return
			}
			m.mu.Lock()
			m.subscribed = true
			m.mu.Unlock()
		},
		func(e stomp.ClientError, body string) {
			if e != stomp.ErrOk {
				return
			}
			m.handlePassengerEvent([]byte(body))
		},
	)
}

func (m *Monitor) handlePassengerEvent(body []byte) {
	event, err := network.ParsePassengerEvent(bytes.TrimSpace(body))
	if err != nil {
		m.logger.Infof("monitor: could not parse passenger event: %v", err)
		m.setLastError(CouldNotParsePassengerEvent)
		return
	}

	m.mu.Lock()
	net := m.network
	m.mu.Unlock()

	if err := net.RecordPassengerEvent(event); err != nil {
		m.logger.Infof("monitor: could not record passenger event: %v", err)
		m.setLastError(CouldNotRecordPassengerEvent)
	}
}

// Stop requests that a running Run return as soon as possible. It is safe
// to call before Run, concurrently with Run, or more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	stopCh, once := m.stopCh, m.stopOnce
	m.mu.Unlock()
	if stopCh == nil || once == nil {
		return
	}
	once.Do(func() { close(stopCh) })
}

// GetLastErrorCode returns the most recent failure recorded by Configure
// or Run, or Ok if none was.
func (m *Monitor) GetLastErrorCode() Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// GetNetworkRepresentation returns the Network built by Configure, or nil
// if Configure has not yet succeeded.
func (m *Monitor) GetNetworkRepresentation() *network.Network {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.network
}

// IsConnected reports whether the STOMP client currently has an active
// connection.
func (m *Monitor) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// IsSubscribed reports whether the passenger-event subscription is
// currently acknowledged.
func (m *Monitor) IsSubscribed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribed
}

func (m *Monitor) setLastError(e Error) {
	m.mu.Lock()
	m.lastError = e
	m.mu.Unlock()
}
