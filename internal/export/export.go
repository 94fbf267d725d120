// Package export renders collections as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"busdash/internal/models"
	"busdash/internal/store"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var sheetNames = map[models.Collection]string{
	models.CollectionBuses:        "Buses",
	models.CollectionTourPackages: "Tour Packages",
	models.CollectionBookings:     "Bookings",
}

// FileName returns the download name for a collection export.
func FileName(collection models.Collection, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", collection, at.Format("2006-01-02"))
}

// Workbook writes one collection of snap into an xlsx document.
func Workbook(snap store.Snapshot, collection models.Collection) ([]byte, error) {
	sheetName, ok := sheetNames[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	header, rows := tableFor(snap, collection)
	if err := writeRow(f, sheetName, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(f, sheetName, i+2, row); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheetName, "A1", lastCell, style)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetColWidth(sheetName, "A", lastCol, 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func tableFor(snap store.Snapshot, collection models.Collection) ([]any, [][]any) {
	switch collection {
	case models.CollectionBuses:
		rows := make([][]any, 0, len(snap.Buses))
		for _, b := range snap.Buses {
			rows = append(rows, []any{b.ID, b.BusNumber, b.Route, b.Capacity, b.AvailableSeats, string(b.Status())})
		}
		return []any{"ID", "Bus Number", "Route", "Capacity", "Available Seats", "Status"}, rows
	case models.CollectionTourPackages:
		rows := make([][]any, 0, len(snap.TourPackages))
		for _, t := range snap.TourPackages {
			rows = append(rows, []any{t.ID, t.PackageName, t.Description, t.Price, t.DurationDays})
		}
		return []any{"ID", "Package Name", "Description", "Price", "Duration (Days)"}, rows
	default:
		rows := make([][]any, 0, len(snap.Bookings))
		for _, b := range snap.Bookings {
			rows = append(rows, []any{b.ID, b.CustomerName, b.BookingDate.String(), b.BusLabel(), b.TourLabel(), b.SeatsBooked, b.SeatNo})
		}
		return []any{"ID", "Customer", "Date", "Bus", "Tour", "Seats", "Seat No(s)"}, rows
	}
}

func writeRow(f *excelize.File, sheetName string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
