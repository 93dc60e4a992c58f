package monitor

import "errors"

// Sentinel errors returned synchronously by Configure, one per Error
// member it can produce, plus errCouldNotConnect, which Run returns when
// it cannot dial the server. Every other Run failure is reported only
// through GetLastErrorCode.
var (
	errMissingCaCertFile         = errors.New("monitor: missing or invalid CA certificate file")
	errFailedLayoutDownload      = errors.New("monitor: failed to download network layout")
	errMissingLayoutFile         = errors.New("monitor: network layout file not found")
	errFailedLayoutParsing       = errors.New("monitor: failed to parse network layout")
	errFailedNetworkConstruction = errors.New("monitor: failed to construct transport network")
	errCouldNotConnect           = errors.New("monitor: could not connect to stomp server")
)

// Error is the closed set of failure reasons the monitor reports through
// GetLastErrorCode. Ok is the zero value: a monitor that never recorded a
// failure reports Ok.
type Error int

const (
	// Ok indicates no recorded failure.
	Ok Error = iota

	// Undefined is reserved for failures that don't fit any other member
	// of this set. No code path currently produces it.
	Undefined

	// CouldNotConnectToStompClient occurs when the STOMP client's
	// on_connect callback reports anything other than success.
	CouldNotConnectToStompClient

	// CouldNotParsePassengerEvent occurs when a message delivered on the
	// passenger destination fails to decode as a PassengerEvent.
	// Monitoring continues.
	CouldNotParsePassengerEvent

	// CouldNotRecordPassengerEvent occurs when a successfully decoded
	// PassengerEvent names a station absent from the loaded network.
	// Monitoring continues.
	CouldNotRecordPassengerEvent

	// CouldNotSubscribeToPassengerEvents occurs when the STOMP client's
	// on_subscribe callback reports anything other than success.
	CouldNotSubscribeToPassengerEvents

	// FailedNetworkLayoutFileDownload occurs when no local layout file
	// was configured and fetching one from the server failed.
	FailedNetworkLayoutFileDownload

	// FailedNetworkLayoutFileParsing occurs when the layout document,
	// however obtained, is not valid JSON in the expected shape.
	FailedNetworkLayoutFileParsing

	// FailedTransportNetworkConstruction occurs when a syntactically
	// valid layout document violates a network invariant (unknown
	// station, duplicate id, malformed route, ...).
	FailedTransportNetworkConstruction

	// MissingCaCertFile occurs when the configured CA certificate file
	// does not exist or cannot be read.
	MissingCaCertFile

	// MissingNetworkLayoutFile occurs when a local layout file path was
	// configured but does not exist.
	MissingNetworkLayoutFile

	// StompClientDisconnected occurs when the STOMP client's
	// on_disconnect callback reports anything other than success.
	StompClientDisconnected
)

// String returns a short human-readable name for e.
func (e Error) String() string {
	switch e {
	case Ok:
		return "ok"
	case Undefined:
		return "undefined error"
	case CouldNotConnectToStompClient:
		return "could not connect to stomp client"
	case CouldNotParsePassengerEvent:
		return "could not parse passenger event"
	case CouldNotRecordPassengerEvent:
		return "could not record passenger event"
	case CouldNotSubscribeToPassengerEvents:
		return "could not subscribe to passenger events"
	case FailedNetworkLayoutFileDownload:
		return "failed network layout file download"
	case FailedNetworkLayoutFileParsing:
		return "failed network layout file parsing"
	case FailedTransportNetworkConstruction:
		return "failed transport network construction"
	case MissingCaCertFile:
		return "missing ca cert file"
	case MissingNetworkLayoutFile:
		return "missing network layout file"
	case StompClientDisconnected:
		return "stomp client disconnected"
	default:
		return "undefined error"
	}
}
