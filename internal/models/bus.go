package models

// BusStatus is the presentational seat availability badge.
type BusStatus string

const (
	BusStatusFull      BusStatus = "Full"
	BusStatusPartial   BusStatus = "Partial"
	BusStatusAvailable BusStatus = "Available"
)

type Bus struct {
	ID             int64  `json:"id"`
	BusNumber      string `json:"busNumber"`
	Route          string `json:"route"`
	Capacity       int    `json:"capacity"`
	AvailableSeats int    `json:"availableSeats"`
}

// BusInput is the mutable part of a bus sent on create and update.
type BusInput struct {
	BusNumber      string `json:"busNumber" yaml:"busNumber"`
	Route          string `json:"route" yaml:"route"`
	Capacity       int    `json:"capacity" yaml:"capacity"`
	AvailableSeats int    `json:"availableSeats" yaml:"availableSeats"`
}

// Input returns the mutable fields of b.
func (b Bus) Input() BusInput {
	return BusInput{
		BusNumber:      b.BusNumber,
		Route:          b.Route,
		Capacity:       b.Capacity,
		AvailableSeats: b.AvailableSeats,
	}
}

// Status derives the badge from the current seat numbers. Partial means
// fewer than half of the capacity is still free.
func (b Bus) Status() BusStatus {
	switch {
	case b.AvailableSeats == 0:
		return BusStatusFull
	case float64(b.AvailableSeats) < float64(b.Capacity)/2:
		return BusStatusPartial
	default:
		return BusStatusAvailable
	}
}
