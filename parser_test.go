package stomp_test

import (
	"testing"

	"github.com/nofeaturesonlybugs/network-monitor"
	"github.com/stretchr/testify/assert"
)

func TestParseEmptyInput(t *testing.T) {
	chk := assert.New(t)
	_, err := stomp.Parse(nil)
	chk.ErrorIs(err, stomp.ErrEmptyInput)
}

func TestParseUnterminatedFrame(t *testing.T) {
	chk := assert.New(t)
	_, err := stomp.Parse([]byte("CONNECTED\nversion:1.2\n\n"))
	chk.ErrorIs(err, stomp.ErrUnterminatedFrame)
}

func TestParseInvalidCommand(t *testing.T) {
	chk := assert.New(t)
	_, err := stomp.Parse([]byte("BOGUS\n\n\x00"))
	chk.ErrorIs(err, stomp.ErrInvalidCommand)
}

func TestParseMalformedHeaderLine(t *testing.T) {
	chk := assert.New(t)
	_, err := stomp.Parse([]byte("CONNECTED\nversion-without-colon\n\n\x00"))
	chk.ErrorIs(err, stomp.ErrNoHeader)
}

func TestParseEmptyHeaderKey(t *testing.T) {
	chk := assert.New(t)
	_, err := stomp.Parse([]byte("CONNECTED\n:novalue\n\n\x00"))
	chk.ErrorIs(err, stomp.ErrEmptyHeaderKey)
}

func TestParseDuplicateHeaderFirstWins(t *testing.T) {
	chk := assert.New(t)
	f, err := stomp.Parse([]byte("CONNECTED\nversion:1.2\nversion:9.9\n\n\x00"))
	chk.NoError(err)
	v, ok := f.Headers.Get(stomp.HeaderVersion)
	chk.True(ok)
	chk.Equal("1.2", v)
}

func TestParseMissingRequiredHeader(t *testing.T) {
	chk := assert.New(t)
	_, err := stomp.Parse([]byte("CONNECTED\n\n\x00"))
	chk.ErrorIs(err, stomp.ErrMissingRequiredHeader)
}

func TestParseContentLengthBody(t *testing.T) {
	chk := assert.New(t)
	raw := "MESSAGE\ndestination:/passengers\nmessage-id:1\nsubscription:sub-0\ncontent-length:5\n\nhello\x00"
	f, err := stomp.Parse([]byte(raw))
	chk.NoError(err)
	chk.Equal([]byte("hello"), f.Body)
}

func TestParseContentLengthMismatch(t *testing.T) {
	chk := assert.New(t)
	raw := "MESSAGE\ndestination:/passengers\nmessage-id:1\nsubscription:sub-0\ncontent-length:99\n\nhello\x00"
	_, err := stomp.Parse([]byte(raw))
	chk.ErrorIs(err, stomp.ErrContentLengthMismatch)
}

func TestParseBodyWithoutContentLengthStopsAtNul(t *testing.T) {
	chk := assert.New(t)
	raw := "MESSAGE\ndestination:/passengers\nmessage-id:1\nsubscription:sub-0\n\nhello\x00"
	f, err := stomp.Parse([]byte(raw))
	chk.NoError(err)
	chk.Equal([]byte("hello"), f.Body)
}

func TestParseJunkAfterBodyRejected(t *testing.T) {
	chk := assert.New(t)
	raw := "CONNECTED\nversion:1.2\n\n\x00garbage"
	_, err := stomp.Parse([]byte(raw))
	chk.ErrorIs(err, stomp.ErrJunkAfterBody)
}

func TestParseToleratesHeartbeatPaddingAfterBody(t *testing.T) {
	chk := assert.New(t)
	raw := "CONNECTED\nversion:1.2\n\n\x00\n\n"
	f, err := stomp.Parse([]byte(raw))
	chk.NoError(err)
	chk.Equal(stomp.CommandConnected, f.Command)
}

func TestParseHeaderValueUnescaping(t *testing.T) {
	chk := assert.New(t)
	raw := "ERROR\nmessage:bad\\nthing\\cmore\n\n\x00"
	f, err := stomp.Parse([]byte(raw))
	chk.NoError(err)
	v, _ := f.Headers.Get(stomp.HeaderMessage)
	chk.Equal("bad\nthing:more", v)
}
