package dashboard

import (
	"net/http"
	"strconv"

	"busdash/internal/backend"
	"busdash/internal/events"
	"busdash/internal/forms"
	"busdash/internal/models"
	"busdash/internal/pending"

	"github.com/gin-gonic/gin"
)

func (s *Server) busesPage(c *gin.Context) {
	data := s.page(c, "buses")
	if raw := c.Query("edit"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if bus, ok := s.store.Snapshot().Bus(id); ok {
				data.EditingID = bus.ID
				data.EditForm = forms.BusFormFrom(bus)
			}
		}
	}
	c.HTML(http.StatusOK, "buses", data)
}

func (s *Server) createBus(c *gin.Context) {
	var form forms.BusForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	in, errs := form.Validate()
	if errs != nil {
		s.renderBusForm(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	ctx := c.Request.Context()
	bus, err := s.shell.backend.CreateBus(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("create bus")
		s.shell.Toast("❌ "+backend.UserMessage(err, "Failed to create bus"), true)
		s.renderBusForm(c, http.StatusBadGateway, form, nil)
		return
	}

	var id int64
	if bus != nil {
		id = bus.ID
	}
	s.shell.mutated(events.EventEntityCreated, models.EntityBus, id)
	s.shell.Toast("✅ Bus created successfully", false)
	_ = s.shell.Refresh(ctx)
	seeOther(c, "/buses")
}

func (s *Server) renderBusForm(c *gin.Context, status int, form forms.BusForm, errs forms.Errors) {
	data := s.page(c, "buses")
	data.BusForm = form
	data.Errors = errs
	c.HTML(status, "buses", data)
}

// updateBus saves the inline shadow form. All four fields are sent
// whether or not they changed.
func (s *Server) updateBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}

	var form forms.BusForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	in, errs := form.Validate()
	if errs != nil {
		s.renderBusEdit(c, http.StatusUnprocessableEntity, id, form, errs)
		return
	}

	release, ok := s.shell.Pending().Begin(pending.Key{Entity: models.EntityBus, ID: id, Op: models.OpUpdate})
	if !ok {
		s.shell.Toast("❌ Update already in progress", true)
		s.renderBusEdit(c, http.StatusConflict, id, form, nil)
		return
	}
	defer release()

	ctx := c.Request.Context()
	if _, err := s.shell.backend.UpdateBus(ctx, id, in); err != nil {
		s.logger.Error().Err(err).Int64("bus_id", id).Msg("update bus")
		s.shell.Toast("❌ "+backend.UserMessage(err, "Failed to update bus"), true)
		s.renderBusEdit(c, http.StatusBadGateway, id, form, nil)
		return
	}

	s.shell.mutated(events.EventEntityUpdated, models.EntityBus, id)
	s.shell.Toast("✅ Bus updated successfully", false)
	_ = s.shell.Refresh(ctx)
	seeOther(c, "/buses")
}

func (s *Server) renderBusEdit(c *gin.Context, status int, id int64, form forms.BusForm, errs forms.Errors) {
	data := s.page(c, "buses")
	data.EditingID = id
	data.EditForm = form
	data.Errors = errs
	c.HTML(status, "buses", data)
}
