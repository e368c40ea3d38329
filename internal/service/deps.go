// Package service implements the portal's access layer. It is the only
// package that reads or writes the store; every write is a load-collection,
// mutate, save-collection sequence with last-write-wins semantics.
package service

import (
	"sync"
	"time"

	"placement/internal/store"

	"github.com/google/uuid"
)

// IDGenerator produces unique opaque IDs for new records.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDs. The default generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Clock supplies timestamps so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Deps bundles what every access-layer service shares: the store, the ID
// generator, the clock, and one mutex serializing read-modify-write
// sequences so concurrent requests in this process cannot interleave a
// load/save pair. Cross-process writers still race (last write wins); that
// matches the storage model and is not defended against.
type Deps struct {
	Store store.Store
	IDs   IDGenerator
	Clock Clock

	mu sync.Mutex
}

// NewDeps returns Deps with the default ID generator and clock. Tests
// overwrite IDs and Clock before handing Deps to a service.
func NewDeps(s store.Store) *Deps {
	return &Deps{
		Store: s,
		IDs:   UUIDGenerator{},
		Clock: SystemClock{},
	}
}

func (d *Deps) lock()   { d.mu.Lock() }
func (d *Deps) unlock() { d.mu.Unlock() }
