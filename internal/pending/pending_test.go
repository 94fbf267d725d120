package pending

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBeginRelease(t *testing.T) {
	r := NewRegistry()
	key := Key{Entity: "booking", ID: 7, Op: "delete"}

	release, ok := r.Begin(key)
	require.True(t, ok)
	assert.True(t, r.IsPending(key))

	_, again := r.Begin(key)
	assert.False(t, again, "duplicate operation must be refused")

	release()
	release()
	assert.False(t, r.IsPending(key))
	assert.Equal(t, 0, r.Len())

	release, ok = r.Begin(key)
	require.True(t, ok)
	release()
}

func TestRegistryIndependentKeys(t *testing.T) {
	var r Registry
	a := Key{Entity: "bus", ID: 1, Op: "delete"}
	b := Key{Entity: "bus", ID: 2, Op: "delete"}
	c := Key{Entity: "bus", ID: 1, Op: "update"}
	d := Key{Entity: "booking", ID: 1, Op: "delete"}

	for _, k := range []Key{a, b, c, d} {
		_, ok := r.Begin(k)
		assert.True(t, ok, k.String())
	}
	assert.Equal(t, 4, r.Len())
}

func TestRegistryConcurrentBegin(t *testing.T) {
	r := NewRegistry()
	key := Key{Entity: "tour_package", ID: 3, Op: "delete"}

	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := r.Begin(key); ok {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "bus/5/update", Key{Entity: "bus", ID: 5, Op: "update"}.String())
}
