// Package store is the dashboard's single in-memory copy of the backend
// collections. Views read snapshots; mutations invalidate the affected
// collection and subscribers are told after every commit.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"busdash/internal/domain"
	"busdash/internal/events"
	"busdash/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Source lists the backend collections.
type Source = domain.CollectionReader

// cacheDropper is implemented by sources that keep a read cache in front
// of the backend.
type cacheDropper interface {
	DropCache(ctx context.Context)
}

// Snapshot is a copy of the collections at one point in time.
type Snapshot struct {
	Buses        []models.Bus
	TourPackages []models.TourPackage
	Bookings     []models.Booking
	LoadedAt     map[models.Collection]time.Time
	// Loaded is false until the first successful load.
	Loaded bool
}

// Stats aggregates the snapshot's summary figures.
func (s Snapshot) Stats() models.Stats {
	return models.ComputeStats(s.Buses, s.TourPackages)
}

// Bus finds a bus by id.
func (s Snapshot) Bus(id int64) (models.Bus, bool) {
	for _, b := range s.Buses {
		if b.ID == id {
			return b, true
		}
	}
	return models.Bus{}, false
}

type Store struct {
	source Source
	bus    *events.EventBus
	logger zerolog.Logger
	now    func() time.Time

	mu           sync.RWMutex
	buses        []models.Bus
	tourPackages []models.TourPackage
	bookings     []models.Booking
	loadedAt     map[models.Collection]time.Time
	loaded       bool
}

func New(source Source, bus *events.EventBus, logger *zerolog.Logger) *Store {
	s := &Store{
		source:       source,
		bus:          bus,
		logger:       zerolog.Nop(),
		now:          time.Now,
		buses:        []models.Bus{},
		tourPackages: []models.TourPackage{},
		bookings:     []models.Booking{},
		loadedAt:     make(map[models.Collection]time.Time),
	}
	if logger != nil {
		s.logger = *logger
	}
	if s.bus == nil {
		s.bus = events.NewEventBus()
	}
	return s
}

// Snapshot returns copies of the current collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loadedAt := make(map[models.Collection]time.Time, len(s.loadedAt))
	for k, v := range s.loadedAt {
		loadedAt[k] = v
	}
	return Snapshot{
		Buses:        append([]models.Bus{}, s.buses...),
		TourPackages: append([]models.TourPackage{}, s.tourPackages...),
		Bookings:     append([]models.Booking{}, s.bookings...),
		LoadedAt:     loadedAt,
		Loaded:       s.loaded,
	}
}

// LoadAll fetches the three collections concurrently. The result is
// committed only when every fetch succeeds; on failure the previous data
// stays untouched and the first error is returned.
func (s *Store) LoadAll(ctx context.Context) error {
	var (
		buses        []models.Bus
		tourPackages []models.TourPackage
		bookings     []models.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		buses, err = s.source.ListBuses(gctx)
		return wrap(models.CollectionBuses, err)
	})
	g.Go(func() error {
		var err error
		tourPackages, err = s.source.ListTourPackages(gctx)
		return wrap(models.CollectionTourPackages, err)
	})
	g.Go(func() error {
		var err error
		bookings, err = s.source.ListBookings(gctx)
		return wrap(models.CollectionBookings, err)
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("load collections")
		_ = s.bus.PublishJSON(events.EventLoadFailed, events.LoadFailedPayload{Error: err.Error()})
		return err
	}

	now := s.now()
	s.mu.Lock()
	s.buses = orEmpty(buses)
	s.tourPackages = orEmpty(tourPackages)
	s.bookings = orEmpty(bookings)
	for _, c := range models.Collections {
		s.loadedAt[c] = now
	}
	s.loaded = true
	counts := map[models.Collection]int{
		models.CollectionBuses:        len(s.buses),
		models.CollectionTourPackages: len(s.tourPackages),
		models.CollectionBookings:     len(s.bookings),
	}
	s.mu.Unlock()

	s.logger.Debug().
		Int("buses", counts[models.CollectionBuses]).
		Int("tours", counts[models.CollectionTourPackages]).
		Int("bookings", counts[models.CollectionBookings]).
		Msg("collections loaded")

	for _, c := range models.Collections {
		s.publish(c, counts[c])
	}
	return nil
}

// Reload is LoadAll past any source cache: every collection is re-fetched
// from the backend.
func (s *Store) Reload(ctx context.Context) error {
	s.dropSourceCache(ctx)
	return s.LoadAll(ctx)
}

// Invalidate re-fetches one collection from the backend. On error the
// previous data stays.
func (s *Store) Invalidate(ctx context.Context, collection models.Collection) error {
	s.dropSourceCache(ctx)
	var count int
	switch collection {
	case models.CollectionBuses:
		buses, err := s.source.ListBuses(ctx)
		if err != nil {
			return s.invalidateFailed(collection, err)
		}
		s.mu.Lock()
		s.buses = orEmpty(buses)
		count = len(s.buses)
		s.commitLocked(collection)
		s.mu.Unlock()
	case models.CollectionTourPackages:
		tours, err := s.source.ListTourPackages(ctx)
		if err != nil {
			return s.invalidateFailed(collection, err)
		}
		s.mu.Lock()
		s.tourPackages = orEmpty(tours)
		count = len(s.tourPackages)
		s.commitLocked(collection)
		s.mu.Unlock()
	case models.CollectionBookings:
		bookings, err := s.source.ListBookings(ctx)
		if err != nil {
			return s.invalidateFailed(collection, err)
		}
		s.mu.Lock()
		s.bookings = orEmpty(bookings)
		count = len(s.bookings)
		s.commitLocked(collection)
		s.mu.Unlock()
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}

	s.publish(collection, count)
	return nil
}

// Subscribe calls listener after each commit of collection. The returned
// function removes the listener.
func (s *Store) Subscribe(collection models.Collection, listener func(models.Collection)) func() {
	return s.bus.Subscribe(events.EventCollectionRefreshed, func(e *events.Event) error {
		var payload events.CollectionPayload
		if err := e.Decode(&payload); err != nil {
			return err
		}
		if models.Collection(payload.Collection) == collection {
			listener(collection)
		}
		return nil
	})
}

// OnLoadFailed calls listener with the error of every failed LoadAll.
func (s *Store) OnLoadFailed(listener func(error)) func() {
	return s.bus.Subscribe(events.EventLoadFailed, func(e *events.Event) error {
		var payload events.LoadFailedPayload
		if err := e.Decode(&payload); err != nil {
			return err
		}
		listener(errors.New(payload.Error))
		return nil
	})
}

func (s *Store) dropSourceCache(ctx context.Context) {
	if d, ok := s.source.(cacheDropper); ok {
		d.DropCache(ctx)
	}
}

func (s *Store) commitLocked(collection models.Collection) {
	s.loadedAt[collection] = s.now()
}

func (s *Store) invalidateFailed(collection models.Collection, err error) error {
	err = wrap(collection, err)
	s.logger.Error().Err(err).Str("collection", string(collection)).Msg("invalidate collection")
	return err
}

func (s *Store) publish(collection models.Collection, count int) {
	_ = s.bus.PublishJSON(events.EventCollectionRefreshed, events.CollectionPayload{
		Collection: string(collection),
		Count:      count,
	})
}

func wrap(collection models.Collection, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", collection, err)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
