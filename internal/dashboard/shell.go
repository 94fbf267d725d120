package dashboard

import (
	"context"
	"sync"

	"busdash/internal/domain"
	"busdash/internal/events"
	"busdash/internal/metrics"
	"busdash/internal/models"
	"busdash/internal/notify"
	"busdash/internal/pending"
	"busdash/internal/store"

	"github.com/rs/zerolog"
)

// LoadErrorMessage is the banner text shown after a failed aggregate load.
const LoadErrorMessage = "Failed to load data. Please check your connection."

// Shell owns the collections, the notification queue and the pending
// operation registry shared by every page.
type Shell struct {
	backend  domain.Backend
	store    *store.Store
	notify   *notify.Queue
	pending  *pending.Registry
	bus      *events.EventBus
	logger   zerolog.Logger
	loadOnce sync.Once

	mu      sync.RWMutex
	loadErr string
}

func NewShell(
	backend domain.Backend,
	st *store.Store,
	queue *notify.Queue,
	bus *events.EventBus,
	logger *zerolog.Logger,
) *Shell {
	s := &Shell{
		backend: backend,
		store:   st,
		notify:  queue,
		pending: pending.NewRegistry(),
		bus:     bus,
		logger:  zerolog.Nop(),
	}
	if logger != nil {
		s.logger = *logger
	}
	if s.bus == nil {
		s.bus = events.NewEventBus()
	}
	for _, col := range models.Collections {
		st.Subscribe(col, func(c models.Collection) {
			s.logger.Debug().Str("collection", string(c)).Msg("collection refreshed")
		})
	}
	st.OnLoadFailed(func(err error) {
		s.logger.Error().Err(err).Msg("load dashboard data")
		s.mu.Lock()
		s.loadErr = LoadErrorMessage
		s.mu.Unlock()
	})
	for eventType, op := range mutationOps {
		s.bus.Subscribe(eventType, func(e *events.Event) error {
			var payload events.EntityPayload
			if err := e.Decode(&payload); err != nil {
				return err
			}
			metrics.IncMutation(payload.Entity, op)
			return nil
		})
	}
	return s
}

var mutationOps = map[string]string{
	events.EventEntityCreated: models.OpCreate,
	events.EventEntityUpdated: models.OpUpdate,
	events.EventEntityDeleted: models.OpDelete,
}

// LoadData fetches all three collections concurrently. Any failure marks
// the whole load failed and nothing from it is shown; the banner is raised
// by the store's load_failed event.
func (s *Shell) LoadData(ctx context.Context) error {
	return s.load(ctx, s.store.LoadAll)
}

// Refresh re-fetches everything from the backend, bypassing the client's
// read cache. It is the onChanged callback of every page.
func (s *Shell) Refresh(ctx context.Context) error {
	return s.load(ctx, s.store.Reload)
}

func (s *Shell) load(ctx context.Context, fetch func(context.Context) error) error {
	if err := fetch(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.loadErr = ""
	s.mu.Unlock()
	return nil
}

// EnsureLoaded performs the initial load once per process.
func (s *Shell) EnsureLoaded(ctx context.Context) {
	s.loadOnce.Do(func() {
		_ = s.LoadData(ctx)
	})
}

// Toast shows a transient notification.
func (s *Shell) Toast(message string, isError bool) notify.Notification {
	if isError {
		return s.notify.Error(message)
	}
	return s.notify.Success(message)
}

// LoadError returns the aggregate load error, empty when the last load
// succeeded.
func (s *Shell) LoadError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Stats recomputes the summary figures from the current collections.
func (s *Shell) Stats() models.Stats {
	return s.store.Snapshot().Stats()
}

// Pending exposes the registry so views can disable busy actions.
func (s *Shell) Pending() *pending.Registry {
	return s.pending
}

// mutated records a successful mutation on the event bus.
func (s *Shell) mutated(eventType, entity string, id int64) {
	if err := s.bus.PublishJSON(eventType, events.EntityPayload{Entity: entity, ID: id}); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("publish mutation event")
	}
}
