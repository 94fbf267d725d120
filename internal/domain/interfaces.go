package domain

import (
	"context"

	"busdash/internal/models"
)

// CollectionReader lists the backend collections.
type CollectionReader interface {
	ListBuses(ctx context.Context) ([]models.Bus, error)
	ListTourPackages(ctx context.Context) ([]models.TourPackage, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

// Mutator performs the create/update/delete calls the dashboard offers.
type Mutator interface {
	CreateBus(ctx context.Context, in models.BusInput) (*models.Bus, error)
	UpdateBus(ctx context.Context, id int64, in models.BusInput) (*models.Bus, error)
	DeleteBus(ctx context.Context, id int64) error
	CreateTourPackage(ctx context.Context, in models.TourPackageInput) (*models.TourPackage, error)
	DeleteTourPackage(ctx context.Context, id int64) error
	CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// Backend is the full REST surface of the booking backend.
type Backend interface {
	CollectionReader
	Mutator
}
