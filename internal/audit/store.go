package audit

import (
	"context"

	"skillproof/pkg/domain"
)

// Store persists the append-only event log. The log is rebuild material for
// operators replaying the domain event stream, so implementations must
// preserve insertion order.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
	ListByActor(ctx context.Context, actor domain.Principal) ([]Event, error)
}
