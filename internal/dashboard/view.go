package dashboard

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"busdash/internal/forms"
	"busdash/internal/models"
	"busdash/internal/notify"
	"busdash/internal/pending"

	"github.com/gin-gonic/gin"
)

var templateFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}

var pageTitles = map[string]string{
	"buses":    "Buses",
	"tours":    "Tour Packages",
	"bookings": "Bookings",
}

// pageData is the view model shared by every page template.
type pageData struct {
	Page          string
	Title         string
	Stats         models.Stats
	LoadError     string
	Notifications []notify.Notification

	Buses        []models.Bus
	TourPackages []models.TourPackage
	Bookings     []models.Booking

	BusForm     forms.BusForm
	TourForm    forms.TourForm
	BookingForm forms.BookingForm
	Errors      forms.Errors

	// EditingID is the bus rendered with the inline shadow form, 0 for none.
	EditingID int64
	EditForm  forms.BusForm

	Confirm *confirmation

	pending *pending.Registry
}

type confirmation struct {
	Prompt string
	Action string
	Cancel string
}

type errorPage struct {
	Message string
	Detail  string
}

// Deleting reports whether a delete of the given row is in flight.
func (p pageData) Deleting(entity string, id int64) bool {
	if p.pending == nil {
		return false
	}
	return p.pending.IsPending(pending.Key{Entity: entity, ID: id, Op: models.OpDelete})
}

// Saving reports whether an inline bus update is in flight.
func (p pageData) Saving(id int64) bool {
	if p.pending == nil {
		return false
	}
	return p.pending.IsPending(pending.Key{Entity: models.EntityBus, ID: id, Op: models.OpUpdate})
}

// TotalSeatsBooked sums the seats across all bookings.
func (p pageData) TotalSeatsBooked() int {
	total := 0
	for _, b := range p.Bookings {
		total += b.SeatsBooked
	}
	return total
}

// page builds the common view model from the current shell state.
func (s *Server) page(c *gin.Context, name string) pageData {
	s.shell.EnsureLoaded(c.Request.Context())
	snap := s.store.Snapshot()
	return pageData{
		Page:          name,
		Title:         pageTitles[name],
		Stats:         snap.Stats(),
		LoadError:     s.shell.LoadError(),
		Notifications: s.notify.Active(),
		Buses:         snap.Buses,
		TourPackages:  snap.TourPackages,
		Bookings:      snap.Bookings,
		pending:       s.shell.Pending(),
	}
}

// seeOther finishes a successful POST with a redirect to a GET page.
func seeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
