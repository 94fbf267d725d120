package dashboard

import (
	"net/http"

	"busdash/internal/backend"
	"busdash/internal/events"
	"busdash/internal/forms"
	"busdash/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) toursPage(c *gin.Context) {
	c.HTML(http.StatusOK, "tours", s.page(c, "tours"))
}

func (s *Server) createTour(c *gin.Context) {
	var form forms.TourForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	in, errs := form.Validate()
	if errs != nil {
		s.renderTourForm(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	ctx := c.Request.Context()
	tour, err := s.shell.backend.CreateTourPackage(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("create tour package")
		s.shell.Toast("❌ "+backend.UserMessage(err, "Failed to create tour package"), true)
		s.renderTourForm(c, http.StatusBadGateway, form, nil)
		return
	}

	var id int64
	if tour != nil {
		id = tour.ID
	}
	s.shell.mutated(events.EventEntityCreated, models.EntityTourPackage, id)
	s.shell.Toast("✅ Tour package created successfully!", false)
	_ = s.shell.Refresh(ctx)
	seeOther(c, "/tours")
}

func (s *Server) renderTourForm(c *gin.Context, status int, form forms.TourForm, errs forms.Errors) {
	data := s.page(c, "tours")
	data.TourForm = form
	data.Errors = errs
	c.HTML(status, "tours", data)
}
