package network

import (
	"encoding/json"
	"fmt"
	"time"
)

// PassengerEventKind is the closed set of tap events a PassengerEvent can
// carry.
type PassengerEventKind string

const (
	PassengerIn  PassengerEventKind = "in"
	PassengerOut PassengerEventKind = "out"
)

// PassengerEvent is a single tap-in/tap-out observation at a station.
type PassengerEvent struct {
	StationID string
	Kind      PassengerEventKind
	Timestamp time.Time
}

// passengerEventPayload is the wire shape of a PassengerEvent, decoded
// directly off a subscription message body.
type passengerEventPayload struct {
	Datetime       string `json:"datetime"`
	PassengerEvent string `json:"passenger_event"`
	StationID      string `json:"station_id"`
}

// ParsePassengerEvent decodes the JSON payload delivered on the
// /passengers destination. Any structural problem — invalid JSON, an
// unparseable datetime, or a passenger_event value outside {in, out} — is
// reported as a single error so the orchestrator has one failure mode to
// record.
func ParsePassengerEvent(data []byte) (PassengerEvent, error) {
	var payload passengerEventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return PassengerEvent{}, fmt.Errorf("passenger event: %w", err)
	}
	if payload.StationID == "" {
		return PassengerEvent{}, fmt.Errorf("passenger event: missing station_id")
	}

	var kind PassengerEventKind
	switch payload.PassengerEvent {
	case string(PassengerIn):
		kind = PassengerIn
	case string(PassengerOut):
		kind = PassengerOut
	default:
		return PassengerEvent{}, fmt.Errorf("passenger event: invalid passenger_event %q", payload.PassengerEvent)
	}

	ts, err := time.Parse(time.RFC3339Nano, payload.Datetime)
	if err != nil {
		return PassengerEvent{}, fmt.Errorf("passenger event: invalid datetime %q: %w", payload.Datetime, err)
	}

	return PassengerEvent{StationID: payload.StationID, Kind: kind, Timestamp: ts}, nil
}
