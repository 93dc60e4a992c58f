package stomp_test

import (
	"testing"

	"github.com/nofeaturesonlybugs/network-monitor"
	"github.com/stretchr/testify/assert"
)

func TestNewFrameRejectsInvalidCommand(t *testing.T) {
	chk := assert.New(t)

	_, err := stomp.NewFrame("NOT-A-COMMAND", stomp.NewHeaders(), nil)
	chk.ErrorIs(err, stomp.ErrInvalidCommand)
}

func TestNewFrameRejectsMissingRequiredHeader(t *testing.T) {
	chk := assert.New(t)

	h := stomp.NewHeaders()
	h.Set(stomp.HeaderDestination, "/passengers")
	// SUBSCRIBE also requires an id header.
	_, err := stomp.NewFrame(stomp.CommandSubscribe, h, nil)
	chk.ErrorIs(err, stomp.ErrMissingRequiredHeader)
}

func TestNewFrameClonesHeaders(t *testing.T) {
	chk := assert.New(t)

	h := stomp.NewHeaders()
	h.Set(stomp.HeaderDestination, "/passengers")
	h.Set(stomp.HeaderID, "sub-0")
	f, err := stomp.NewFrame(stomp.CommandSubscribe, h, nil)
	chk.NoError(err)

	h.Set(stomp.HeaderDestination, "/mutated")
	v, _ := f.Headers.Get(stomp.HeaderDestination)
	chk.Equal("/passengers", v)
}

func TestFrameEmpty(t *testing.T) {
	chk := assert.New(t)
	chk.True(stomp.Frame{}.Empty())

	h := stomp.NewHeaders()
	h.Set("a", "b")
	chk.False(stomp.Frame{Headers: h}.Empty())
}

func TestFrameRoundTrip(t *testing.T) {
	chk := assert.New(t)

	h := stomp.NewHeaders()
	h.Set(stomp.HeaderDestination, "/passengers")
	h.Set(stomp.HeaderMessageID, "42")
	h.Set(stomp.HeaderSubscription, "sub-0")
	f, err := stomp.NewFrame(stomp.CommandMessage, h, []byte(`{"count":1}`))
	chk.NoError(err)

	parsed, err := stomp.Parse([]byte(f.String()))
	chk.NoError(err)
	chk.Equal(f.Command, parsed.Command)
	chk.Equal(f.Body, parsed.Body)
	v, _ := parsed.Headers.Get(stomp.HeaderDestination)
	chk.Equal("/passengers", v)
}
