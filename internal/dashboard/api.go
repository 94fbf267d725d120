package dashboard

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"busdash/internal/export"
	"busdash/internal/models"
	"busdash/internal/notify"

	"github.com/gin-gonic/gin"
)

// refresh reloads every collection and returns to the page the operator
// came from.
func (s *Server) refresh(c *gin.Context) {
	_ = s.shell.Refresh(c.Request.Context())
	seeOther(c, returnPath(c.PostForm("next")))
}

func (s *Server) dismissNotification(c *gin.Context) {
	s.notify.Dismiss(c.Param("id"))
	seeOther(c, returnPath(c.PostForm("next")))
}

func returnPath(next string) string {
	if _, ok := pageTitles[strings.TrimPrefix(next, "/")]; ok {
		return next
	}
	return "/buses"
}

func (s *Server) exportCollection(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("file"), ".xlsx")
	collection := models.Collection(name)
	if !ok || !collection.Valid() {
		s.notFound(c)
		return
	}

	s.shell.EnsureLoaded(c.Request.Context())
	data, err := export.Workbook(s.store.Snapshot(), collection)
	if err != nil {
		s.logger.Error().Err(err).Str("collection", name).Msg("export workbook")
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(collection, time.Now())))
	c.Data(http.StatusOK, export.ContentType, data)
}

func (s *Server) healthz(c *gin.Context) {
	snap := s.store.Snapshot()
	status := "ok"
	if s.shell.LoadError() != "" {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"loaded":    snap.Loaded,
		"loadError": s.shell.LoadError(),
		"pending":   s.shell.Pending().Len(),
	})
}

func (s *Server) apiStats(c *gin.Context) {
	s.shell.EnsureLoaded(c.Request.Context())
	c.JSON(http.StatusOK, s.shell.Stats())
}

func (s *Server) apiNotifications(c *gin.Context) {
	active := s.notify.Active()
	if active == nil {
		active = []notify.Notification{}
	}
	c.JSON(http.StatusOK, active)
}
