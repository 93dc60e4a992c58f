package stomp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nofeaturesonlybugs/network-monitor"
	"github.com/nofeaturesonlybugs/network-monitor/stomptest"
	"github.com/stretchr/testify/assert"
)

func TestClientConnectSuccess(t *testing.T) {
	chk := assert.New(t)

	transport := stomptest.New(nil)
	client := stomp.NewClient("example.org", "user", "pass", transport, nil)

	connected := make(chan stomp.ClientError, 1)
	client.Connect(context.Background(), func(e stomp.ClientError) { connected <- e }, nil)

	chk.Eventually(func() bool { return len(transport.Sent()) == 1 }, time.Second, time.Millisecond)

	transport.Deliver([]byte("CONNECTED\nversion:1.2\n\n\x00"))

	select {
	case e := <-connected:
		chk.Equal(stomp.ErrOk, e)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for onConnect")
	}
}

func TestClientConnectFailsWhenTransportFails(t *testing.T) {
	chk := assert.New(t)

	transport := stomptest.New(errors.New("dns failure"))
	client := stomp.NewClient("example.org", "user", "pass", transport, nil)

	connected := make(chan stomp.ClientError, 1)
	disconnected := make(chan stomp.ClientError, 1)
	client.Connect(
		context.Background(),
		func(e stomp.ClientError) { connected <- e },
		func(e stomp.ClientError) { disconnected <- e },
	)

	select {
	case e := <-connected:
		chk.Equal(stomp.ErrCouldNotConnectToServer, e)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for onConnect")
	}

	select {
	case <-disconnected:
		t.Fatal("onDisconnect should not fire after a failed onConnect")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClientSubscribeReturnsIDSynchronously(t *testing.T) {
	chk := assert.New(t)

	transport := stomptest.New(nil)
	client := stomp.NewClient("example.org", "user", "pass", transport, nil)

	id := client.Subscribe("/passengers", nil, nil)
	chk.NotEmpty(id)
}

func TestClientSubscribeFiresOnSubscribeOnReceipt(t *testing.T) {
	chk := assert.New(t)

	transport := stomptest.New(nil)
	client := stomp.NewClient("example.org", "user", "pass", transport, nil)
	client.Connect(context.Background(), nil, nil)

	subscribed := make(chan string, 1)
	id := client.Subscribe("/passengers", func(e stomp.ClientError, subID string) {
		chk.Equal(stomp.ErrOk, e)
		subscribed <- subID
	}, nil)

	chk.Eventually(func() bool { return len(transport.Sent()) == 1 }, time.Second, time.Millisecond)
	transport.Deliver([]byte("RECEIPT\nreceipt-id:" + id + "\n\n\x00"))

	select {
	case got := <-subscribed:
		chk.Equal(id, got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for onSubscribe")
	}
}

func TestClientDeliversMessagesToMatchingSubscription(t *testing.T) {
	chk := assert.New(t)

	transport := stomptest.New(nil)
	client := stomp.NewClient("example.org", "user", "pass", transport, nil)
	client.Connect(context.Background(), nil, nil)

	messages := make(chan string, 1)
	id := client.Subscribe("/passengers", nil, func(e stomp.ClientError, body string) {
		chk.Equal(stomp.ErrOk, e)
		messages <- body
	})
	chk.Eventually(func() bool { return len(transport.Sent()) == 2 }, time.Second, time.Millisecond)
	transport.Deliver([]byte("RECEIPT\nreceipt-id:" + id + "\n\n\x00"))
	chk.Eventually(func() bool { return len(transport.Sent()) == 2 }, time.Second, time.Millisecond)

	msg := "MESSAGE\ndestination:/passengers\nmessage-id:1\nsubscription:" + id + "\ncontent-length:2\n\n{}\x00"
	transport.Deliver([]byte(msg))

	select {
	case body := <-messages:
		chk.Equal("{}", body)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for onMessage")
	}
}

func TestClientOnDisconnectFiresAfterServerCloses(t *testing.T) {
	chk := assert.New(t)

	transport := stomptest.New(nil)
	client := stomp.NewClient("example.org", "user", "pass", transport, nil)

	disconnected := make(chan stomp.ClientError, 1)
	client.Connect(context.Background(), nil, func(e stomp.ClientError) { disconnected <- e })

	// Close only after the STOMP frame went out, as a server rejecting the
	// credentials would.
	chk.Eventually(func() bool { return len(transport.Sent()) == 1 }, time.Second, time.Millisecond)
	transport.CloseFromServer(errors.New("connection reset"))

	select {
	case e := <-disconnected:
		chk.Equal(stomp.ErrServerDisconnected, e)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for onDisconnect")
	}
}
