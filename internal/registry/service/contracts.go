package service

import (
	"context"
	"errors"
	"log/slog"

	"skillproof/internal/audit"
	"skillproof/internal/registry/models"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// ActorStore defines the persistence contract for registry records.
type ActorStore interface {
	CreateClient(ctx context.Context, client *models.Client) error
	CreateVerifier(ctx context.Context, verifier *models.Verifier) error
	FindClient(ctx context.Context, address domain.Principal) (*models.Client, error)
	FindVerifier(ctx context.Context, address domain.Principal) (*models.Verifier, error)
	UpdateClient(ctx context.Context, client *models.Client) error
	UpdateVerifier(ctx context.Context, verifier *models.Verifier) error
}

// OwnerPolicy authorizes privileged registry mutations.
type OwnerPolicy interface {
	Owner() domain.Principal
	RequireOwner(caller domain.Principal) error
}

// AuditPublisher records registry events on the domain event stream.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Error wrapping helpers translate sentinel errors to domain errors.

func wrapClientErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeActorNotFound, "client not registered")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapVerifierErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeActorNotFound, "verifier not registered")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

// auditEmitter handles audit logging and event emission. Emission runs after
// the domain write inside the tx; a sink failure never unwinds the committed
// write, it is logged and the operation succeeds.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func newAuditEmitter(logger *slog.Logger, publisher AuditPublisher) *auditEmitter {
	return &auditEmitter{logger: logger, publisher: publisher}
}

func (e *auditEmitter) emitClientRegistered(ctx context.Context, ev models.ClientRegistered) {
	e.log(ctx, audit.ActionClientRegistered, "address", ev.Address.String(), "name", ev.Name)
	e.publish(ctx, audit.Event{
		Action:  audit.ActionClientRegistered,
		Actor:   ev.Address,
		Subject: ev.Address,
		Detail:  map[string]string{"name": ev.Name},
	})
}

func (e *auditEmitter) emitVerifierRegistered(ctx context.Context, owner domain.Principal, ev models.VerifierRegistered) {
	e.log(ctx, audit.ActionVerifierRegistered, "address", ev.Address.String(), "name", ev.Name)
	e.publish(ctx, audit.Event{
		Action:  audit.ActionVerifierRegistered,
		Actor:   owner,
		Subject: ev.Address,
		Detail:  map[string]string{"name": ev.Name},
	})
}

func (e *auditEmitter) emitClientDeactivated(ctx context.Context, owner domain.Principal, ev models.ClientDeactivated) {
	e.log(ctx, audit.ActionClientDeactivated, "address", ev.Address.String())
	e.publish(ctx, audit.Event{
		Action:  audit.ActionClientDeactivated,
		Actor:   owner,
		Subject: ev.Address,
	})
}

func (e *auditEmitter) emitVerifierDeactivated(ctx context.Context, owner domain.Principal, ev models.VerifierDeactivated) {
	e.log(ctx, audit.ActionVerifierDeactivated, "address", ev.Address.String())
	e.publish(ctx, audit.Event{
		Action:  audit.ActionVerifierDeactivated,
		Actor:   owner,
		Subject: ev.Address,
	})
}

func (e *auditEmitter) log(ctx context.Context, action audit.Action, attributes ...any) {
	if e.logger == nil {
		return
	}
	args := append(attributes, "event", string(action), "log_type", "audit")
	e.logger.InfoContext(ctx, string(action), args...)
}

func (e *auditEmitter) publish(ctx context.Context, event audit.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Emit(ctx, event); err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
