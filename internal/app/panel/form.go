package panel

import "sync"

// Form holds the editable values of a panel. It is seeded once from the
// first successful load and is never re-seeded: later loads do not touch
// values the user may already be editing.
//
// Form is safe for concurrent use. Get returns a copy of the stored value;
// slice fields inside F are shared and must not be mutated in place.
type Form[F any] struct {
	mu     sync.RWMutex
	val    F
	seeded bool
}

// Seed stores val if the form has not been seeded yet. It reports whether
// val was stored.
func (f *Form[F]) Seed(val F) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seeded {
		return false
	}
	f.val = val
	f.seeded = true
	return true
}

// Seeded reports whether the form holds values.
func (f *Form[F]) Seeded() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.seeded
}

// Get returns the current values. The second result is false until the
// form has been seeded.
func (f *Form[F]) Get() (F, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.val, f.seeded
}

// Set replaces the values with user edits. A Set before Seed counts as the
// seed, so a late load cannot overwrite what the user entered.
func (f *Form[F]) Set(val F) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.val = val
	f.seeded = true
}
