package transport_test

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nofeaturesonlybugs/network-monitor/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEchoServer starts a local TLS WebSocket server that echoes every
// text message it receives, and writes its CA certificate to a temp PEM
// file so Dial can verify it against that trust anchor.
func newEchoServer(t *testing.T) (wsURL string, caCertFile string) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	server.StartTLS()
	t.Cleanup(server.Close)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	dir := t.TempDir()
	caCertFile = filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(caCertFile, certPEM, 0o600))

	wsURL = "wss" + server.URL[len("https"):]
	return wsURL, caCertFile
}

func TestDialSendAndEcho(t *testing.T) {
	chk := assert.New(t)
	wsURL, caCertFile := newEchoServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := transport.Dial(ctx, transport.Config{URL: wsURL, CACertFile: caCertFile})
	chk.NoError(err)
	defer conn.Close()

	chk.NoError(conn.Send([]byte("hello")))

	select {
	case msg := <-conn.Messages():
		chk.Equal("hello", string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for echoed message")
	}
}

func TestDialFailsWithoutCACertFile(t *testing.T) {
	chk := assert.New(t)
	_, err := transport.Dial(context.Background(), transport.Config{URL: "wss://example.org"})
	chk.ErrorIs(err, transport.ErrMissingCACertFile)
}

func TestCloseReportsOnClosedChannel(t *testing.T) {
	chk := assert.New(t)
	wsURL, caCertFile := newEchoServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := transport.Dial(ctx, transport.Config{URL: wsURL, CACertFile: caCertFile})
	chk.NoError(err)

	chk.NoError(conn.Close())

	select {
	case err := <-conn.Closed():
		chk.NoError(err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Closed()")
	}
}
