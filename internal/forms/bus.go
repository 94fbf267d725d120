package forms

import (
	"strconv"
	"strings"

	"busdash/internal/models"
)

// BusForm is the create form and the inline edit shadow form. Values are
// kept as typed so they can be re-rendered after a failed submit.
type BusForm struct {
	BusNumber      string `form:"busNumber"`
	Route          string `form:"route"`
	Capacity       string `form:"capacity"`
	AvailableSeats string `form:"availableSeats"`
}

type busCheck struct {
	BusNumber      string `form:"busNumber" validate:"required"`
	Route          string `form:"route" validate:"required"`
	Capacity       *int   `form:"capacity" validate:"required,gte=1"`
	AvailableSeats *int   `form:"availableSeats" validate:"required,gte=0"`
}

var busMessages = messages{
	"busNumber":      {"required": "Bus number is required"},
	"route":          {"required": "Route is required"},
	"capacity":       {"required": "Capacity is required", "gte": "Capacity must be at least 1"},
	"availableSeats": {"required": "Available seats is required", "gte": "Available seats cannot be negative"},
}

// BusFormFrom fills the shadow form with a bus's current values.
func BusFormFrom(b models.Bus) BusForm {
	return BusForm{
		BusNumber:      b.BusNumber,
		Route:          b.Route,
		Capacity:       strconv.Itoa(b.Capacity),
		AvailableSeats: strconv.Itoa(b.AvailableSeats),
	}
}

// Validate checks required fields and the numeric minimums. Available
// seats are not compared with capacity.
func (f BusForm) Validate() (models.BusInput, Errors) {
	c := busCheck{
		BusNumber:      strings.TrimSpace(f.BusNumber),
		Route:          strings.TrimSpace(f.Route),
		Capacity:       parseInt(f.Capacity),
		AvailableSeats: parseInt(f.AvailableSeats),
	}
	if errs := check(c, busMessages); errs != nil {
		return models.BusInput{}, errs
	}
	return models.BusInput{
		BusNumber:      c.BusNumber,
		Route:          c.Route,
		Capacity:       *c.Capacity,
		AvailableSeats: *c.AvailableSeats,
	}, nil
}
