// Package sequence provides monotonic id generators for the ledger's
// verification and token counters.
package sequence

import "sync/atomic"

// Sequence hands out 1-based, strictly increasing ids. Safe for concurrent
// use, though mutations are expected to run under the shared store
// transaction anyway.
type Sequence struct {
	n atomic.Uint64
}

// New creates a sequence starting at 1.
func New() *Sequence {
	return &Sequence{}
}

// Next returns the next id. Ids are never reused; callers must only invoke
// Next once all validation has passed, so failed operations consume no id.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Current returns the last id handed out, or 0 if none.
func (s *Sequence) Current() uint64 {
	return s.n.Load()
}
