// Package pending tracks in-flight mutations so views can disable the
// matching action control and duplicate submissions are refused.
package pending

import (
	"fmt"
	"sync"
)

// Key identifies one operation on one entity.
type Key struct {
	Entity string
	ID     int64
	Op     string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%s", k.Entity, k.ID, k.Op)
}

// Registry is safe for concurrent use. The zero value is ready to use.
type Registry struct {
	mu      sync.Mutex
	entries map[Key]struct{}
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]struct{})}
}

// Begin marks key as pending. It returns ok=false without a release func
// when the same operation is already in flight.
func (r *Registry) Begin(key Key) (release func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[Key]struct{})
	}
	if _, busy := r.entries[key]; busy {
		return nil, false
	}
	r.entries[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.entries, key)
			r.mu.Unlock()
		})
	}, true
}

// IsPending reports whether key is in flight.
func (r *Registry) IsPending(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.entries[key]
	return busy
}

// Len returns the number of operations in flight.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
