package models

import "time"

// Collection names a backend list endpoint mirrored in memory.
type Collection string

const (
	CollectionBuses        Collection = "buses"
	CollectionTourPackages Collection = "tours"
	CollectionBookings     Collection = "bookings"
)

// Collections lists every collection in display order.
var Collections = []Collection{CollectionBuses, CollectionTourPackages, CollectionBookings}

// Valid reports whether c names a known collection.
func (c Collection) Valid() bool {
	switch c {
	case CollectionBuses, CollectionTourPackages, CollectionBookings:
		return true
	}
	return false
}

// Entity names used as the first part of a pending operation key.
const (
	EntityBus         = "bus"
	EntityTourPackage = "tour_package"
	EntityBooking     = "booking"
)

// Operation names used by pending operation keys and the mutation metric.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

const (
	// DefaultRequestTimeout bounds every backend request.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultNotificationTTL is how long a toast stays visible.
	DefaultNotificationTTL = 3 * time.Second

	// DefaultNotificationCapacity caps the number of simultaneous toasts.
	DefaultNotificationCapacity = 5

	// DateLayout is the wire and form format of calendar dates.
	DateLayout = "2006-01-02"
)
