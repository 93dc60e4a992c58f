package stomp

import "strings"

// Header names used by this implementation. Not exhaustive of STOMP 1.2,
// only the headers this client and the frames it builds/parses need.
const (
	HeaderAcceptVersion = "accept-version"
	HeaderAck           = "ack"
	HeaderContentLength = "content-length"
	HeaderDestination   = "destination"
	HeaderHost          = "host"
	HeaderID            = "id"
	HeaderLogin         = "login"
	HeaderMessage       = "message"
	HeaderMessageID     = "message-id"
	HeaderPasscode      = "passcode"
	HeaderReceipt       = "receipt"
	HeaderReceiptID     = "receipt-id"
	HeaderReplyTo       = "reply-to"
	HeaderSession       = "session"
	HeaderSubscription  = "subscription"
	HeaderVersion       = "version"
)

// header is a single key/value pair preserving the case it was set with.
type header struct {
	Key   string
	Value string
}

// Headers are the ordered header key/value pairs of a Frame.
//
// Unlike a map, Headers preserves insertion order (STOMP 1.2 frames are
// serialized with headers in the order they were added) and enforces that
// a key appears at most once: Add keeps the first occurrence of a key,
// matching the STOMP 1.2 rule that duplicate headers are resolved by
// taking the first; Set always replaces a key's value if present.
type Headers []header

// NewHeaders returns an empty, ready-to-use Headers value.
func NewHeaders() Headers {
	return Headers{}
}

// Get returns the value for key and whether it was present.
func (h Headers) Get(key string) (string, bool) {
	for _, kv := range h {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Add appends key/value if key is not already present; if key already
// exists the existing value is kept (first occurrence wins).
func (h *Headers) Add(key, value string) {
	for _, kv := range *h {
		if kv.Key == key {
			return
		}
	}
	*h = append(*h, header{Key: key, Value: value})
}

// Set inserts key/value, or overwrites the value of an existing key while
// preserving its original position.
func (h *Headers) Set(key, value string) {
	for i, kv := range *h {
		if kv.Key == key {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, header{Key: key, Value: value})
}

// Keys returns the header keys in insertion order.
func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	for _, kv := range h {
		keys = append(keys, kv.Key)
	}
	return keys
}

// Clone returns an independent copy of h.
func (h Headers) Clone() Headers {
	c := make(Headers, len(h))
	copy(c, h)
	return c
}

// escapeHeaderValue applies the STOMP 1.2 header value escapes. CONNECT
// and CONNECTED frames are exempt: their header values are transmitted raw.
func escapeHeaderValue(cmd Command, value string) string {
	if rawValueCommands[cmd] {
		return value
	}
	var b strings.Builder
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case ':':
			b.WriteString(`\c`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescapeHeaderValue reverses escapeHeaderValue. An unrecognized escape
// sequence, or a trailing backslash with nothing to escape, is rejected.
func unescapeHeaderValue(cmd Command, value string) (string, error) {
	if rawValueCommands[cmd] {
		return value, nil
	}
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(value) {
			return "", ErrInvalidHeaderValue
		}
		switch value[i] {
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 'c':
			b.WriteByte(':')
		case '\\':
			b.WriteByte('\\')
		default:
			return "", ErrInvalidHeaderValue
		}
	}
	return b.String(), nil
}
