package export

import (
	"bytes"
	"testing"
	"time"

	"busdash/internal/models"
	"busdash/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testSnapshot(t *testing.T) store.Snapshot {
	t.Helper()
	date, err := models.ParseDate("2025-05-01")
	require.NoError(t, err)
	return store.Snapshot{
		Buses: []models.Bus{
			{ID: 1, BusNumber: "B001", Route: "Mumbai to Delhi", Capacity: 50, AvailableSeats: 0},
			{ID: 2, BusNumber: "B002", Route: "Pune to Goa", Capacity: 40, AvailableSeats: 30},
		},
		TourPackages: []models.TourPackage{{ID: 3, PackageName: "Goa", Description: "Beaches and forts", Price: 1999.5, DurationDays: 4}},
		Bookings: []models.Booking{{
			ID: 7, CustomerName: "Ravi", BookingDate: date,
			Bus: &models.Bus{BusNumber: "B002", Route: "Pune to Goa"}, SeatsBooked: 2, SeatNo: "A1,A2",
		}},
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWorkbookBuses(t *testing.T) {
	data, err := Workbook(testSnapshot(t), models.CollectionBuses)
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"Buses"}, f.GetSheetList())

	rows, err := f.GetRows("Buses")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Bus Number", "Route", "Capacity", "Available Seats", "Status"}, rows[0])
	assert.Equal(t, []string{"1", "B001", "Mumbai to Delhi", "50", "0", "Full"}, rows[1])
	assert.Equal(t, "Available", rows[2][5])
}

func TestWorkbookBookings(t *testing.T) {
	data, err := Workbook(testSnapshot(t), models.CollectionBookings)
	require.NoError(t, err)

	rows, err := open(t, data).GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"7", "Ravi", "2025-05-01", "B002 — Pune to Goa", "-", "2", "A1,A2"}, rows[1])
}

func TestWorkbookTours(t *testing.T) {
	data, err := Workbook(testSnapshot(t), models.CollectionTourPackages)
	require.NoError(t, err)

	rows, err := open(t, data).GetRows("Tour Packages")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Goa", rows[1][1])
}

func TestWorkbookEmptyAndUnknown(t *testing.T) {
	data, err := Workbook(store.Snapshot{}, models.CollectionBuses)
	require.NoError(t, err)
	rows, err := open(t, data).GetRows("Buses")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = Workbook(store.Snapshot{}, models.Collection("users"))
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "bookings_2026-10-19.xlsx", FileName(models.CollectionBookings, at))
}
