// Package notify holds the transient operator notifications ("toasts").
//
// The queue is owned by the dashboard shell. Every page render asks for
// the active notifications; expired ones are pruned lazily. Several
// notifications can be visible at once, the oldest being dropped when the
// queue is full.
package notify

import (
	"sync"
	"time"

	"busdash/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Kind classifies a notification for styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsError is used by the layout template to pick the toast style.
func (n Notification) IsError() bool {
	return n.Kind == KindError
}

// Options configures a Queue. Zero fields fall back to defaults.
type Options struct {
	TTL      time.Duration
	Capacity int
	Now      func() time.Time
	Logger   *zerolog.Logger
}

type Queue struct {
	mu       sync.Mutex
	items    []Notification
	ttl      time.Duration
	capacity int
	now      func() time.Time
	logger   zerolog.Logger
}

func NewQueue(opts Options) *Queue {
	q := &Queue{
		ttl:      opts.TTL,
		capacity: opts.Capacity,
		now:      opts.Now,
		logger:   zerolog.Nop(),
	}
	if q.ttl <= 0 {
		q.ttl = 3 * time.Second
	}
	if q.capacity <= 0 {
		q.capacity = 5
	}
	if q.now == nil {
		q.now = time.Now
	}
	if opts.Logger != nil {
		q.logger = *opts.Logger
	}
	return q
}

// Notify enqueues a message and returns the stored notification.
func (q *Queue) Notify(message string, kind Kind) Notification {
	now := q.now()
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}

	q.mu.Lock()
	q.pruneLocked(now)
	q.items = append(q.items, n)
	if over := len(q.items) - q.capacity; over > 0 {
		q.items = append([]Notification(nil), q.items[over:]...)
	}
	q.mu.Unlock()

	metrics.IncNotification(string(kind))
	ev := q.logger.Info()
	if kind == KindError {
		ev = q.logger.Warn()
	}
	ev.Str("notification_id", n.ID).Str("kind", string(kind)).Msg(message)

	return n
}

func (q *Queue) Success(message string) Notification {
	return q.Notify(message, KindSuccess)
}

func (q *Queue) Error(message string) Notification {
	return q.Notify(message, KindError)
}

// Active returns the unexpired notifications, oldest first.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pruneLocked(q.now())
	return append([]Notification(nil), q.items...)
}

// Dismiss removes a notification before it expires. It reports whether
// the id was found.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) pruneLocked(now time.Time) {
	kept := q.items[:0]
	for _, n := range q.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	q.items = kept
}
