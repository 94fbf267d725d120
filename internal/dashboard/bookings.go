package dashboard

import (
	"net/http"

	"busdash/internal/backend"
	"busdash/internal/events"
	"busdash/internal/forms"
	"busdash/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) bookingsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "bookings", s.page(c, "bookings"))
}

func (s *Server) createBooking(c *gin.Context) {
	var form forms.BookingForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	in, errs := form.Validate()
	if errs != nil {
		s.shell.Toast(errs.First()+" ⚠", true)
		s.renderBookingForm(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	ctx := c.Request.Context()
	booking, err := s.shell.backend.CreateBooking(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("create booking")
		s.shell.Toast("❌ "+backend.UserMessage(err, "Failed to create booking"), true)
		s.renderBookingForm(c, http.StatusBadGateway, form, nil)
		return
	}

	var id int64
	if booking != nil {
		id = booking.ID
	}
	s.shell.mutated(events.EventEntityCreated, models.EntityBooking, id)
	s.shell.Toast("✅ Booking created", false)
	_ = s.shell.Refresh(ctx)
	seeOther(c, "/bookings")
}

func (s *Server) renderBookingForm(c *gin.Context, status int, form forms.BookingForm, errs forms.Errors) {
	data := s.page(c, "bookings")
	data.BookingForm = form
	data.Errors = errs
	c.HTML(status, "bookings", data)
}
