// Package dashboard serves the server-rendered booking dashboard.
package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"busdash/internal/config"
	"busdash/internal/domain"
	"busdash/internal/events"
	"busdash/internal/notify"
	"busdash/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server wires the shell into a gin engine and an http.Server.
type Server struct {
	cfg    *config.Config
	shell  *Shell
	store  *store.Store
	notify *notify.Queue
	engine *gin.Engine
	server *http.Server
	logger zerolog.Logger
}

// Deps groups the collaborators a Server renders from.
type Deps struct {
	Backend domain.Backend
	Store   *store.Store
	Notify  *notify.Queue
	Bus     *events.EventBus
	Logger  *zerolog.Logger
}

func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if !cfg.App.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:    cfg,
		store:  deps.Store,
		notify: deps.Notify,
		logger: zerolog.Nop(),
	}
	if deps.Logger != nil {
		srv.logger = *deps.Logger
	}
	srv.shell = NewShell(deps.Backend, deps.Store, deps.Notify, deps.Bus, deps.Logger)

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	if err := engine.SetTrustedProxies(nil); err != nil {
		srv.logger.Warn().Err(err).Msg("set trusted proxies")
	}
	engine.Use(
		requestID(),
		requestLogger(&srv.logger),
		requestMetrics(),
		gin.CustomRecoveryWithWriter(io.Discard, srv.recoverPanic),
	)
	engine.NoRoute(srv.notFound)
	srv.engine = engine
	srv.routes()

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return srv, nil
}

func (s *Server) routes() {
	limit := newRateLimiter(s.cfg.HTTP.RateLimit).middleware()

	s.engine.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/buses") })

	s.engine.GET("/buses", s.busesPage)
	s.engine.POST("/buses", limit, s.createBus)
	s.engine.POST("/buses/:id", limit, s.updateBus)
	s.engine.GET("/buses/:id/delete", s.confirmDeleteBus)
	s.engine.POST("/buses/:id/delete", limit, s.deleteBus)

	s.engine.GET("/tours", s.toursPage)
	s.engine.POST("/tours", limit, s.createTour)
	s.engine.GET("/tours/:id/delete", s.confirmDeleteTour)
	s.engine.POST("/tours/:id/delete", limit, s.deleteTour)

	s.engine.GET("/bookings", s.bookingsPage)
	s.engine.POST("/bookings", limit, s.createBooking)
	s.engine.GET("/bookings/:id/delete", s.confirmDeleteBooking)
	s.engine.POST("/bookings/:id/delete", limit, s.deleteBooking)

	s.engine.POST("/refresh", limit, s.refresh)
	s.engine.POST("/notifications/:id/dismiss", s.dismissNotification)
	s.engine.GET("/export/:file", s.exportCollection)
	s.engine.GET("/healthz", s.healthz)

	api := s.engine.Group("/api")
	if origins := s.cfg.HTTP.CORS.AllowedOrigins; len(origins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = origins
		corsCfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
		api.Use(cors.New(corsCfg))
	}
	api.GET("/stats", s.apiStats)
	api.GET("/notifications", s.apiNotifications)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Engine returns the gin engine so callers can mount extra routes.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Shell returns the root shell.
func (s *Server) Shell() *Shell {
	return s.shell
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("dashboard listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
