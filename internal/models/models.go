package models

// Stats are the dashboard summary figures derived from the current
// collections.
type Stats struct {
	TotalBuses          int     `json:"totalBuses"`
	TotalAvailableSeats int     `json:"totalAvailableSeats"`
	TotalTours          int     `json:"totalTours"`
	TotalTourValue      float64 `json:"totalTourValue"`
}

// ComputeStats aggregates the summary figures. Empty inputs yield zeros.
func ComputeStats(buses []Bus, tours []TourPackage) Stats {
	stats := Stats{TotalBuses: len(buses), TotalTours: len(tours)}
	for _, b := range buses {
		stats.TotalAvailableSeats += b.AvailableSeats
	}
	for _, t := range tours {
		stats.TotalTourValue += t.Price
	}
	return stats
}
