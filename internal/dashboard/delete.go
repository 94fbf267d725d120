package dashboard

import (
	"context"
	"fmt"
	"net/http"

	"busdash/internal/backend"
	"busdash/internal/events"
	"busdash/internal/models"
	"busdash/internal/pending"

	"github.com/gin-gonic/gin"
)

// deletion describes the confirm-then-delete flow of one entity kind.
type deletion struct {
	entity   string
	page     string
	prompt   string
	success  string
	fallback string
	run      func(ctx context.Context, id int64) error
	// after runs once the backend accepted the delete.
	after func(ctx context.Context)
}

func (s *Server) busDeletion() deletion {
	return deletion{
		entity:   models.EntityBus,
		page:     "buses",
		prompt:   "Are you sure you want to delete this bus?",
		success:  "✅ Bus deleted successfully",
		fallback: "Failed to delete bus",
		run:      s.shell.backend.DeleteBus,
		after:    func(ctx context.Context) { _ = s.shell.Refresh(ctx) },
	}
}

func (s *Server) tourDeletion() deletion {
	return deletion{
		entity:   models.EntityTourPackage,
		page:     "tours",
		prompt:   "Are you sure you want to delete this tour package?",
		success:  "✅ Tour deleted",
		fallback: "Failed to delete tour",
		run:      s.shell.backend.DeleteTourPackage,
		after:    func(ctx context.Context) { _ = s.shell.Refresh(ctx) },
	}
}

func (s *Server) bookingDeletion() deletion {
	return deletion{
		entity:   models.EntityBooking,
		page:     "bookings",
		prompt:   "Delete this booking?",
		success:  "✅ Booking deleted",
		fallback: "Delete failed",
		run:      s.shell.backend.DeleteBooking,
		after: func(ctx context.Context) {
			if err := s.store.Invalidate(ctx, models.CollectionBookings); err != nil {
				s.logger.Error().Err(err).Msg("reload bookings")
			}
			_ = s.shell.Refresh(ctx)
		},
	}
}

func (s *Server) confirmDeleteBus(c *gin.Context) { s.confirmDelete(c, s.busDeletion()) }
func (s *Server) deleteBus(c *gin.Context) { s.performDelete(c, s.busDeletion()) }
func (s *Server) confirmDeleteTour(c *gin.Context) { s.confirmDelete(c, s.tourDeletion()) }
func (s *Server) deleteTour(c *gin.Context) { s.performDelete(c, s.tourDeletion()) }
func (s *Server) confirmDeleteBooking(c *gin.Context) { s.confirmDelete(c, s.bookingDeletion()) }
func (s *Server) deleteBooking(c *gin.Context) { s.performDelete(c, s.bookingDeletion()) }

func (s *Server) confirmDelete(c *gin.Context, d deletion) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}
	data := s.page(c, d.page)
	data.Confirm = &confirmation{
		Prompt: d.prompt,
		Action: fmt.Sprintf("/%s/%d/delete", d.page, id),
		Cancel: "/" + d.page,
	}
	c.HTML(http.StatusOK, "confirm", data)
}

// performDelete issues the backend delete only when the operator answered
// yes, and refuses a second delete of the same row while one is in flight.
func (s *Server) performDelete(c *gin.Context, d deletion) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}
	back := "/" + d.page
	if c.PostForm("confirm") != "yes" {
		seeOther(c, back)
		return
	}

	release, ok := s.shell.Pending().Begin(pending.Key{Entity: d.entity, ID: id, Op: models.OpDelete})
	if !ok {
		s.shell.Toast("❌ Delete already in progress", true)
		seeOther(c, back)
		return
	}
	defer release()

	ctx := c.Request.Context()
	if err := d.run(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("entity", d.entity).Int64("id", id).Msg("delete failed")
		s.shell.Toast("❌ "+backend.UserMessage(err, d.fallback), true)
		seeOther(c, back)
		return
	}

	s.shell.mutated(events.EventEntityDeleted, d.entity, id)
	s.shell.Toast(d.success, false)
	d.after(ctx)
	seeOther(c, back)
}
