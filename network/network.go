// Package network models an underground transport network as a typed
// multigraph: stations connected by directed travel segments, grouped
// into lines and routes. The topology is built once from a Layout and
// never mutated again; only station passenger counters and segment
// travel times (through SetTravelTime) change after construction.
package network

import (
	"fmt"
	"sync"
)

// Network is a constructed, queryable transport network. The zero value
// is not usable; build one with FromLayout.
type Network struct {
	mu sync.RWMutex

	stations map[string]*stationState
	lines    map[string]Line

	// stationRoutes indexes every (line, route) that visits a station.
	stationRoutes map[string][]RouteRef

	// routeStations holds each route's declared station order, for
	// travel-time aggregation along a route's direction.
	routeStations map[routeKey][]string

	// segments indexes every directed adjacent-station edge by its full
	// key, and separately by the bare (from, to) pair so a travel_times
	// entry without line/route can update every segment connecting them.
	segments       map[segmentKey]*segment
	segmentsByPair map[[2]string][]*segment
}

// FromLayout builds a Network from a Layout. Construction is total: any
// invariant violation aborts the whole build and returns a nil Network.
func FromLayout(layout Layout) (*Network, error) {
	n := &Network{
		stations:       make(map[string]*stationState, len(layout.Stations)),
		lines:          make(map[string]Line, len(layout.Lines)),
		stationRoutes:  make(map[string][]RouteRef),
		routeStations:  make(map[routeKey][]string),
		segments:       make(map[segmentKey]*segment),
		segmentsByPair: make(map[[2]string][]*segment),
	}

	for _, s := range layout.Stations {
		if _, exists := n.stations[s.StationID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStation, s.StationID)
		}
		n.stations[s.StationID] = &stationState{id: s.StationID, name: s.Name}
	}

	for _, l := range layout.Lines {
		if _, exists := n.lines[l.LineID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLine, l.LineID)
		}
		line := Line{ID: l.LineID, Name: l.Name}

		seenRoutes := make(map[string]bool, len(l.Routes))
		for _, r := range l.Routes {
			if seenRoutes[r.RouteID] {
				return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateRoute, l.LineID, r.RouteID)
			}
			seenRoutes[r.RouteID] = true

			if len(r.RouteStations) < 2 {
				return nil, fmt.Errorf("%w: %s/%s", ErrEmptyRoute, l.LineID, r.RouteID)
			}
			if r.RouteStations[0] != r.StartStationID || r.RouteStations[len(r.RouteStations)-1] != r.EndStationID {
				return nil, fmt.Errorf("%w: %s/%s", ErrRouteEndpointMismatch, l.LineID, r.RouteID)
			}

			seenStations := make(map[string]bool, len(r.RouteStations))
			for _, stationID := range r.RouteStations {
				if _, ok := n.stations[stationID]; !ok {
					return nil, fmt.Errorf("%w: %q (route %s/%s)", ErrUnknownStation, stationID, l.LineID, r.RouteID)
				}
				if seenStations[stationID] {
					return nil, fmt.Errorf("%w: %q in %s/%s", ErrRepeatedStationInRoute, stationID, l.LineID, r.RouteID)
				}
				seenStations[stationID] = true
			}

			route := Route{ID: r.RouteID, LineID: l.LineID, Stations: append([]string{}, r.RouteStations...)}
			line.Routes = append(line.Routes, route)

			rk := routeKey{lineID: l.LineID, routeID: r.RouteID}
			n.routeStations[rk] = route.Stations

			ref := RouteRef{LineID: l.LineID, RouteID: r.RouteID}
			for _, stationID := range r.RouteStations {
				n.stationRoutes[stationID] = append(n.stationRoutes[stationID], ref)
			}

			for i := 0; i+1 < len(r.RouteStations); i++ {
				from, to := r.RouteStations[i], r.RouteStations[i+1]
				key := segmentKey{from: from, to: to, lineID: l.LineID, routeID: r.RouteID}
				seg := &segment{key: key}
				n.segments[key] = seg
				pair := [2]string{from, to}
				n.segmentsByPair[pair] = append(n.segmentsByPair[pair], seg)
			}
		}

		n.lines[l.LineID] = line
	}

	for _, tt := range layout.TravelTimes {
		if err := n.applyLayoutTravelTime(tt); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (n *Network) applyLayoutTravelTime(tt LayoutTravelTime) error {
	if _, ok := n.stations[tt.StartStationID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStation, tt.StartStationID)
	}
	if _, ok := n.stations[tt.EndStationID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStation, tt.EndStationID)
	}

	if tt.LineID != "" || tt.RouteID != "" {
		key := segmentKey{from: tt.StartStationID, to: tt.EndStationID, lineID: tt.LineID, routeID: tt.RouteID}
		seg, ok := n.segments[key]
		if !ok {
			return fmt.Errorf("%w: %s->%s on %s/%s", ErrEdgeNotFound, tt.StartStationID, tt.EndStationID, tt.LineID, tt.RouteID)
		}
		seg.travelTime = tt.TravelTime
		return nil
	}

	segs := n.segmentsByPair[[2]string{tt.StartStationID, tt.EndStationID}]
	if len(segs) == 0 {
		return fmt.Errorf("%w: %s->%s", ErrEdgeNotFound, tt.StartStationID, tt.EndStationID)
	}
	for _, seg := range segs {
		seg.travelTime = tt.TravelTime
	}
	return nil
}

// GetPassengerCount returns the current passenger count for stationID.
func (n *Network) GetPassengerCount(stationID string) (int, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.stations[stationID]
	if !ok {
		return 0, false
	}
	return s.count, true
}

// RecordPassengerEvent applies event to its station's counter: +1 for an
// "in" event, -1 for "out". An event for an unknown station is rejected
// without mutating any counter.
func (n *Network) RecordPassengerEvent(event PassengerEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	s, ok := n.stations[event.StationID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStation, event.StationID)
	}
	switch event.Kind {
	case PassengerIn:
		s.count++
	case PassengerOut:
		s.count--
	}
	return nil
}

// GetRoutesServingStation returns every (line, route) that visits
// stationID, empty if none (including if the station is unknown).
func (n *Network) GetRoutesServingStation(stationID string) []RouteRef {
	n.mu.RLock()
	defer n.mu.RUnlock()
	refs := n.stationRoutes[stationID]
	out := make([]RouteRef, len(refs))
	copy(out, refs)
	return out
}

// SetTravelTime overwrites the travel time of the segment from->to on
// the given line and route. It never creates a new segment.
func (n *Network) SetTravelTime(from, to, lineID, routeID string, travelTime int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	seg, ok := n.segments[segmentKey{from: from, to: to, lineID: lineID, routeID: routeID}]
	if !ok {
		return fmt.Errorf("%w: %s->%s on %s/%s", ErrEdgeNotFound, from, to, lineID, routeID)
	}
	seg.travelTime = travelTime
	return nil
}

// GetTravelTime returns the travel time between from and to if exactly
// one (line, route) visits to somewhere after from, summed
// along that route between the two stations; 0 if zero or more than one
// route connects them, or if either station is unknown.
func (n *Network) GetTravelTime(from, to string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var matches []routeKey
	for rk, stations := range n.routeStations {
		if routeConnects(stations, from, to) {
			matches = append(matches, rk)
		}
	}
	if len(matches) != 1 {
		return 0
	}
	return n.sumAlongRoute(matches[0], from, to)
}

// GetTravelTimeOnRoute returns the sum of segment travel times from
// from to to along the declared direction of (lineID, routeID); 0 if to
// does not follow from on that route.
func (n *Network) GetTravelTimeOnRoute(lineID, routeID, from, to string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sumAlongRoute(routeKey{lineID: lineID, routeID: routeID}, from, to)
}

// sumAlongRoute must be called with n.mu held for reading.
func (n *Network) sumAlongRoute(rk routeKey, from, to string) int {
	stations, ok := n.routeStations[rk]
	if !ok {
		return 0
	}
	fromIdx, toIdx := indexOf(stations, from), indexOf(stations, to)
	if fromIdx == -1 || toIdx == -1 || toIdx <= fromIdx {
		return 0
	}
	total := 0
	for i := fromIdx; i < toIdx; i++ {
		seg, ok := n.segments[segmentKey{from: stations[i], to: stations[i+1], lineID: rk.lineID, routeID: rk.routeID}]
		if !ok {
			return 0
		}
		total += seg.travelTime
	}
	return total
}

func routeConnects(stations []string, from, to string) bool {
	fromIdx, toIdx := indexOf(stations, from), indexOf(stations, to)
	return fromIdx != -1 && toIdx != -1 && toIdx > fromIdx
}

func indexOf(stations []string, id string) int {
	for i, s := range stations {
		if s == id {
			return i
		}
	}
	return -1
}

// GetStation returns a snapshot of stationID's current state.
func (n *Network) GetStation(stationID string) (Station, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.stations[stationID]
	if !ok {
		return Station{}, false
	}
	return s.snapshot(), true
}

// GetLine returns lineID's declared topology. Lines are immutable after
// construction, so the returned value needs no further copying beyond
// the slice header.
func (n *Network) GetLine(lineID string) (Line, bool) {
	l, ok := n.lines[lineID]
	return l, ok
}

// Stations returns a snapshot of every station's current state.
func (n *Network) Stations() []Station {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Station, 0, len(n.stations))
	for _, s := range n.stations {
		out = append(out, s.snapshot())
	}
	return out
}

// Lines returns every line's declared topology.
func (n *Network) Lines() []Line {
	out := make([]Line, 0, len(n.lines))
	for _, l := range n.lines {
		out = append(out, l)
	}
	return out
}
