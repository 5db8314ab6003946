// Package storetx provides the transactional boundary shared by every
// state-mutating operation in the ledger.
package storetx

import (
	"context"
	"sync"
	"time"

	dErrors "skillproof/pkg/domain-errors"
)

// Tx provides a transactional boundary for ledger mutations.
// Implementations may wrap a database transaction or an in-memory lock.
// All services that touch the shared id counters and verification records
// must run their mutations through the same Tx instance, so two concurrent
// submissions never see the same id and two terminal transitions on the same
// verification resolve to exactly one winner.
type Tx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultTimeout = 5 * time.Second

// InMemory serializes mutations for in-memory stores.
type InMemory struct {
	mu      sync.Mutex
	timeout time.Duration
}

// NewInMemory creates an in-memory transaction boundary.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// RunInTx executes fn inside the single-writer critical section.
func (t *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}
