package network

// Station is a network station and its current passenger occupancy.
// passenger_count is a net delta, not a capacity, and may be negative.
type Station struct {
	ID             string
	Name           string
	PassengerCount int
}

// stationState is the mutable record backing a Station in the Network's
// index. Only Count is ever mutated after construction.
type stationState struct {
	id    string
	name  string
	count int
}

func (s *stationState) snapshot() Station {
	return Station{ID: s.id, Name: s.name, PassengerCount: s.count}
}
