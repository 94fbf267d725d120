package models

import "strings"

// EntityRef references another entity by id in a request body.
type EntityRef struct {
	ID int64 `json:"id"`
}

type Booking struct {
	ID           int64        `json:"id"`
	CustomerName string       `json:"customerName"`
	BookingDate  Date         `json:"bookingDate"`
	Bus          *Bus         `json:"bus"`
	TourPackage  *TourPackage `json:"tourPackage"`
	SeatsBooked  int          `json:"seatsBooked"`
	SeatNo       string       `json:"seatNo"`
}

// BookingInput is the create payload; bus and tour package are sent as
// {id} references.
type BookingInput struct {
	CustomerName string    `json:"customerName"`
	BookingDate  Date      `json:"bookingDate"`
	Bus          EntityRef `json:"bus"`
	TourPackage  EntityRef `json:"tourPackage"`
	SeatsBooked  int       `json:"seatsBooked"`
	SeatNo       string    `json:"seatNo"`
}

// BusLabel renders the referenced bus as "number — route", or "N/A".
func (b Booking) BusLabel() string {
	if b.Bus == nil || b.Bus.BusNumber == "" {
		return "N/A"
	}
	return b.Bus.BusNumber + " — " + b.Bus.Route
}

// TourLabel renders the referenced tour package name, or "-".
func (b Booking) TourLabel() string {
	if b.TourPackage == nil || b.TourPackage.PackageName == "" {
		return "-"
	}
	return b.TourPackage.PackageName
}

// SplitSeats splits a comma separated seat list, trimming labels and
// dropping empty ones.
func SplitSeats(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
