package network

import "errors"

// Construction and query errors. Construction failures are total: any one
// of these during FromLayout aborts the whole build and returns no usable
// Network.
var (
	// ErrUnknownStation occurs when a route, travel_times entry, or
	// RecordPassengerEvent call references a station id not present in
	// the layout's station set.
	ErrUnknownStation = errors.New("network: unknown station")

	// ErrDuplicateStation occurs when the layout declares the same
	// station id twice.
	ErrDuplicateStation = errors.New("network: duplicate station")

	// ErrDuplicateLine occurs when the layout declares the same line id
	// twice.
	ErrDuplicateLine = errors.New("network: duplicate line")

	// ErrDuplicateRoute occurs when a line declares the same route id
	// twice.
	ErrDuplicateRoute = errors.New("network: duplicate route")

	// ErrEmptyRoute occurs when a route's station sequence has fewer
	// than two stations.
	ErrEmptyRoute = errors.New("network: route has fewer than two stations")

	// ErrRepeatedStationInRoute occurs when a route visits the same
	// station more than once.
	ErrRepeatedStationInRoute = errors.New("network: station repeated in route")

	// ErrRouteEndpointMismatch occurs when a route's declared
	// start/end station id does not match its station sequence.
	ErrRouteEndpointMismatch = errors.New("network: route endpoint does not match its station sequence")

	// ErrEdgeNotFound occurs when SetTravelTime or a travel_times layout
	// entry names a station pair (optionally qualified by line/route)
	// that is not an adjacent pair on any declared route.
	ErrEdgeNotFound = errors.New("network: no travel segment between the given stations")
)
