package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"busdash/internal/events"
	"busdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu           sync.Mutex
	buses        []models.Bus
	tourPackages []models.TourPackage
	bookings     []models.Booking
	errs         map[models.Collection]error
	calls        map[models.Collection]*atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		errs: make(map[models.Collection]error),
		calls: map[models.Collection]*atomic.Int32{
			models.CollectionBuses:        {},
			models.CollectionTourPackages: {},
			models.CollectionBookings:     {},
		},
	}
}

func (f *fakeSource) failWith(c models.Collection, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[c] = err
}

func (f *fakeSource) err(c models.Collection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[c].Add(1)
	return f.errs[c]
}

func (f *fakeSource) ListBuses(context.Context) ([]models.Bus, error) {
	if err := f.err(models.CollectionBuses); err != nil {
		return nil, err
	}
	return f.buses, nil
}

func (f *fakeSource) ListTourPackages(context.Context) ([]models.TourPackage, error) {
	if err := f.err(models.CollectionTourPackages); err != nil {
		return nil, err
	}
	return f.tourPackages, nil
}

func (f *fakeSource) ListBookings(context.Context) ([]models.Booking, error) {
	if err := f.err(models.CollectionBookings); err != nil {
		return nil, err
	}
	return f.bookings, nil
}

func seededSource() *fakeSource {
	src := newFakeSource()
	src.buses = []models.Bus{{ID: 1, BusNumber: "B001", Capacity: 50, AvailableSeats: 20}}
	src.tourPackages = []models.TourPackage{{ID: 2, PackageName: "Goa", Price: 100}}
	src.bookings = []models.Booking{{ID: 7, CustomerName: "Asha"}}
	return src
}

func TestLoadAll(t *testing.T) {
	s := New(seededSource(), nil, nil)

	before := s.Snapshot()
	assert.False(t, before.Loaded)
	assert.NotNil(t, before.Buses)
	assert.Empty(t, before.Buses)

	require.NoError(t, s.LoadAll(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Len(t, snap.Buses, 1)
	assert.Len(t, snap.TourPackages, 1)
	assert.Len(t, snap.Bookings, 1)
	assert.Len(t, snap.LoadedAt, 3)

	stats := snap.Stats()
	assert.Equal(t, 1, stats.TotalBuses)
	assert.Equal(t, 20, stats.TotalAvailableSeats)
	assert.InDelta(t, 100.0, stats.TotalTourValue, 0.001)
}

func TestLoadAllIsAllOrNothing(t *testing.T) {
	for _, failing := range models.Collections {
		t.Run(string(failing), func(t *testing.T) {
			src := seededSource()
			src.failWith(failing, errors.New("connection refused"))
			s := New(src, nil, nil)

			err := s.LoadAll(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), string(failing))

			snap := s.Snapshot()
			assert.False(t, snap.Loaded)
			assert.Empty(t, snap.Buses, "no partial data")
			assert.Empty(t, snap.TourPackages, "no partial data")
			assert.Empty(t, snap.Bookings, "no partial data")
		})
	}
}

func TestLoadAllFailureKeepsPreviousData(t *testing.T) {
	src := seededSource()
	s := New(src, nil, nil)
	require.NoError(t, s.LoadAll(context.Background()))

	src.buses = append(src.buses, models.Bus{ID: 9})
	src.failWith(models.CollectionBookings, errors.New("timeout"))
	require.Error(t, s.LoadAll(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Len(t, snap.Buses, 1, "buses fetched during the failed load are not committed")
}

func TestLoadAllNilCollectionsBecomeEmpty(t *testing.T) {
	s := New(newFakeSource(), nil, nil)
	require.NoError(t, s.LoadAll(context.Background()))

	snap := s.Snapshot()
	assert.NotNil(t, snap.Buses)
	assert.NotNil(t, snap.TourPackages)
	assert.NotNil(t, snap.Bookings)
	assert.Equal(t, 0, snap.Stats().TotalAvailableSeats)
}

func TestInvalidate(t *testing.T) {
	src := seededSource()
	s := New(src, nil, nil)
	require.NoError(t, s.LoadAll(context.Background()))

	src.bookings = nil
	require.NoError(t, s.Invalidate(context.Background(), models.CollectionBookings))

	snap := s.Snapshot()
	assert.Empty(t, snap.Bookings)
	assert.Len(t, snap.Buses, 1)
	assert.Equal(t, int32(2), src.calls[models.CollectionBookings].Load())
	assert.Equal(t, int32(1), src.calls[models.CollectionBuses].Load())
}

func TestInvalidateFailureKeepsData(t *testing.T) {
	src := seededSource()
	s := New(src, nil, nil)
	require.NoError(t, s.LoadAll(context.Background()))

	src.failWith(models.CollectionTourPackages, errors.New("boom"))
	err := s.Invalidate(context.Background(), models.CollectionTourPackages)
	require.Error(t, err)
	assert.Len(t, s.Snapshot().TourPackages, 1)
}

func TestInvalidateUnknownCollection(t *testing.T) {
	s := New(seededSource(), nil, nil)
	assert.Error(t, s.Invalidate(context.Background(), models.Collection("users")))
}

func TestSubscribe(t *testing.T) {
	bus := events.NewEventBus()
	s := New(seededSource(), bus, nil)

	var bookingsSeen, busesSeen int
	unsubscribe := s.Subscribe(models.CollectionBookings, func(c models.Collection) {
		assert.Equal(t, models.CollectionBookings, c)
		bookingsSeen++
	})
	s.Subscribe(models.CollectionBuses, func(models.Collection) { busesSeen++ })

	require.NoError(t, s.LoadAll(context.Background()))
	assert.Equal(t, 1, bookingsSeen)
	assert.Equal(t, 1, busesSeen)

	require.NoError(t, s.Invalidate(context.Background(), models.CollectionBookings))
	assert.Equal(t, 2, bookingsSeen)
	assert.Equal(t, 1, busesSeen)

	unsubscribe()
	require.NoError(t, s.Invalidate(context.Background(), models.CollectionBookings))
	assert.Equal(t, 2, bookingsSeen)
}

func TestSubscribeNotCalledOnFailure(t *testing.T) {
	src := seededSource()
	src.failWith(models.CollectionBuses, errors.New("down"))
	s := New(src, nil, nil)

	called := false
	s.Subscribe(models.CollectionTourPackages, func(models.Collection) { called = true })
	require.Error(t, s.LoadAll(context.Background()))
	assert.False(t, called)
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New(seededSource(), nil, nil)
	require.NoError(t, s.LoadAll(context.Background()))

	snap := s.Snapshot()
	snap.Buses[0].BusNumber = "changed"
	assert.Equal(t, "B001", s.Snapshot().Buses[0].BusNumber)

	bus, ok := s.Snapshot().Bus(1)
	require.True(t, ok)
	assert.Equal(t, "B001", bus.BusNumber)
	_, ok = s.Snapshot().Bus(99)
	assert.False(t, ok)
}

type cachingSource struct {
	*fakeSource
	drops atomic.Int32
}

func (c *cachingSource) DropCache(context.Context) {
	c.drops.Add(1)
}

func TestReloadAndInvalidateDropSourceCache(t *testing.T) {
	src := &cachingSource{fakeSource: seededSource()}
	s := New(src, nil, nil)
	ctx := context.Background()

	require.NoError(t, s.LoadAll(ctx))
	assert.Equal(t, int32(0), src.drops.Load(), "the initial load may be served from cache")

	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, int32(1), src.drops.Load())
	assert.Equal(t, int32(2), src.calls[models.CollectionBuses].Load())

	require.NoError(t, s.Invalidate(ctx, models.CollectionBookings))
	assert.Equal(t, int32(2), src.drops.Load())
}

func TestReloadFailureKeepsData(t *testing.T) {
	src := seededSource()
	s := New(src, nil, nil)
	require.NoError(t, s.LoadAll(context.Background()))

	src.failWith(models.CollectionBookings, errors.New("down"))
	require.Error(t, s.Reload(context.Background()))
	assert.Len(t, s.Snapshot().Buses, 1)
	assert.Len(t, s.Snapshot().Bookings, 1)
}
