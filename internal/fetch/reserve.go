package fetch

import (
	"sync"

	"github.com/git-hub-cc/MediaHub/internal/assets"
)

// Reservations is the shared result store of a fetch run. Workers reserve a
// name before issuing any request, so two workers never fetch the same
// entity, and commit the catalog entry once the image is on disk. All
// operations are safe for concurrent use.
type Reservations struct {
	mu       sync.Mutex
	values   assets.Catalog  // committed entries, seeded from the prior run
	reserved map[string]bool // names claimed by in-flight workers
}

// NewReservations creates a store seeded with the catalog of a previous
// run, so re-runs resume instead of re-fetching.
func NewReservations(initial assets.Catalog) *Reservations {
	values := assets.Catalog{}
	for k, v := range initial {
		values[k] = v
	}
	return &Reservations{
		values:   values,
		reserved: make(map[string]bool),
	}
}

// TryReserve claims name for the caller. It returns false when the name is
// already reserved by another worker.
func (r *Reservations) TryReserve(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reserved[name] {
		return false
	}
	r.reserved[name] = true
	return true
}

// Commit records the catalog entry produced for a reserved name.
func (r *Reservations) Commit(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
}

// Snapshot returns a copy of the committed entries.
func (r *Reservations) Snapshot() assets.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := assets.Catalog{}
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
