package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestQueue(capacity int) (*Queue, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewQueue(Options{TTL: 3 * time.Second, Capacity: capacity, Now: clock.Now}), clock
}

func TestNotifyAndExpire(t *testing.T) {
	q, clock := newTestQueue(5)

	n := q.Success("✅ Bus created successfully")
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, KindSuccess, n.Kind)
	assert.False(t, n.IsError())
	assert.Equal(t, clock.now.Add(3*time.Second), n.ExpiresAt)

	clock.Advance(2999 * time.Millisecond)
	require.Len(t, q.Active(), 1)

	clock.Advance(time.Millisecond)
	assert.Empty(t, q.Active())
}

func TestNotifyMultipleVisible(t *testing.T) {
	q, clock := newTestQueue(5)

	first := q.Success("first")
	clock.Advance(time.Second)
	second := q.Error("second")

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
	assert.True(t, active[1].IsError())

	// The first one expires on its own timer, the second keeps its own.
	clock.Advance(2 * time.Second)
	active = q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestNotifyCapacityDropsOldest(t *testing.T) {
	q, _ := newTestQueue(2)

	q.Success("one")
	q.Success("two")
	q.Success("three")

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "two", active[0].Message)
	assert.Equal(t, "three", active[1].Message)
}

func TestDismiss(t *testing.T) {
	q, _ := newTestQueue(5)
	n := q.Error("boom")
	q.Success("ok")

	assert.True(t, q.Dismiss(n.ID))
	assert.False(t, q.Dismiss(n.ID))

	active := q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "ok", active[0].Message)
}

func TestNewQueueDefaults(t *testing.T) {
	q := NewQueue(Options{})
	assert.Equal(t, 3*time.Second, q.ttl)
	assert.Equal(t, 5, q.capacity)
	assert.NotNil(t, q.now)
}
