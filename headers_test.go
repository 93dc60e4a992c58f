package stomp_test

import (
	"testing"

	"github.com/nofeaturesonlybugs/network-monitor"
	"github.com/stretchr/testify/assert"
)

func TestHeadersAddKeepsFirstOccurrence(t *testing.T) {
	chk := assert.New(t)

	h := stomp.NewHeaders()
	h.Add("destination", "/first")
	h.Add("destination", "/second")

	v, ok := h.Get("destination")
	chk.True(ok)
	chk.Equal("/first", v)
}

func TestHeadersSetOverwritesInPlace(t *testing.T) {
	chk := assert.New(t)

	h := stomp.NewHeaders()
	h.Set("a", "1")
	h.Set("b", "2")
	h.Set("a", "3")

	chk.Equal([]string{"a", "b"}, h.Keys())
	v, _ := h.Get("a")
	chk.Equal("3", v)
}

func TestHeaderValueEscaping(t *testing.T) {
	chk := assert.New(t)

	h := stomp.NewHeaders()
	h.Set("message", "line one\nline two: with colon\\backslash")

	f := stomp.Frame{Command: stomp.CommandError, Headers: h}
	serialized := f.String()

	parsed, err := stomp.Parse([]byte(serialized))
	chk.NoError(err)
	v, ok := parsed.Headers.Get("message")
	chk.True(ok)
	chk.Equal("line one\nline two: with colon\\backslash", v)
}

func TestHeaderValueNotEscapedForConnect(t *testing.T) {
	chk := assert.New(t)

	// CONNECT/STOMP/CONNECTED header values are transmitted raw even if
	// they contain characters that would otherwise require escaping.
	h := stomp.NewHeaders()
	h.Set(stomp.HeaderAcceptVersion, "1.2")
	h.Set(stomp.HeaderHost, "example.org")
	h.Set(stomp.HeaderLogin, "has:colon")
	h.Set(stomp.HeaderPasscode, "secret")

	f, err := stomp.NewFrame(stomp.CommandConnect, h, nil)
	chk.NoError(err)
	chk.Contains(f.String(), "login:has:colon\n")
}
