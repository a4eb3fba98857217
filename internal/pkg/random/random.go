package random

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Source is the randomness the engines draw from. A Source is not safe for concurrent use,
// every engine owns its own.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// New returns a deterministic source for the given seed.
func New(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSeeded returns a source seeded from the wall clock.
func NewTimeSeeded() Source {
	return New(uint64(time.Now().UnixNano())) //nolint: gosec // it's ok
}

// Factory derives independent sources from a single root seed, so a whole server run can be replayed.
type Factory struct {
	mu   sync.Mutex
	root *rand.Rand
}

// NewFactory - zero seed means "seed from the clock".
func NewFactory(seed uint64) *Factory {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint: gosec // it's ok
	}

	return &Factory{root: rand.New(rand.NewSource(seed))}
}

func (that *Factory) Source() Source {
	that.mu.Lock()
	defer that.mu.Unlock()

	return New(that.root.Uint64())
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
