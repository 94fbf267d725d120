package forms

import (
	"strings"

	"busdash/internal/models"
)

const (
	msgFillAllFields = "Please fill all fields"
	msgSeatMismatch  = "Seat count does not match seat numbers"
)

type BookingForm struct {
	CustomerName string `form:"customerName"`
	BookingDate  string `form:"bookingDate"`
	BusID        string `form:"busId"`
	TourID       string `form:"tourId"`
	SeatNo       string `form:"seatNo"`
	SeatsBooked  string `form:"seatsBooked"`
}

type bookingPresence struct {
	CustomerName string `form:"customerName" validate:"required"`
	BookingDate  string `form:"bookingDate" validate:"required"`
	BusID        string `form:"busId" validate:"required"`
	TourID       string `form:"tourId" validate:"required"`
	SeatNo       string `form:"seatNo" validate:"required"`
	SeatsBooked  string `form:"seatsBooked" validate:"required"`
}

type bookingValues struct {
	BookingDate string `form:"bookingDate" validate:"datetime=2006-01-02"`
	BusID       *int64 `form:"busId" validate:"required,gt=0"`
	TourID      *int64 `form:"tourId" validate:"required,gt=0"`
	SeatsBooked *int   `form:"seatsBooked" validate:"required,gte=1"`
}

var bookingMessages = messages{
	"bookingDate": {"datetime": "Booking date must be a valid date"},
	"busId":       {"required": "Select a bus"},
	"tourId":      {"required": "Select a tour package"},
	"seatsBooked": {"required": "Seats booked must be at least 1"},
}

// Validate requires all six fields and that the seat list has exactly as
// many labels as seats booked.
func (f BookingForm) Validate() (models.BookingInput, Errors) {
	presence := bookingPresence{
		CustomerName: strings.TrimSpace(f.CustomerName),
		BookingDate:  strings.TrimSpace(f.BookingDate),
		BusID:        strings.TrimSpace(f.BusID),
		TourID:       strings.TrimSpace(f.TourID),
		SeatNo:       strings.TrimSpace(f.SeatNo),
		SeatsBooked:  strings.TrimSpace(f.SeatsBooked),
	}
	if validate.Struct(presence) != nil {
		return models.BookingInput{}, Errors{{Field: FieldForm, Message: msgFillAllFields}}
	}

	values := bookingValues{
		BookingDate: presence.BookingDate,
		BusID:       parseInt64(presence.BusID),
		TourID:      parseInt64(presence.TourID),
		SeatsBooked: parseInt(presence.SeatsBooked),
	}
	if errs := check(values, bookingMessages); errs != nil {
		return models.BookingInput{}, errs
	}

	if len(models.SplitSeats(f.SeatNo)) != *values.SeatsBooked {
		return models.BookingInput{}, Errors{{Field: "seatNo", Message: msgSeatMismatch}}
	}

	date, err := models.ParseDate(values.BookingDate)
	if err != nil {
		return models.BookingInput{}, Errors{{Field: "bookingDate", Message: bookingMessages["bookingDate"]["datetime"]}}
	}

	return models.BookingInput{
		CustomerName: f.CustomerName,
		BookingDate:  date,
		Bus:          models.EntityRef{ID: *values.BusID},
		TourPackage:  models.EntityRef{ID: *values.TourID},
		SeatsBooked:  *values.SeatsBooked,
		SeatNo:       f.SeatNo,
	}, nil
}
