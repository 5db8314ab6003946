package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"skillproof/internal/audit"
	"skillproof/internal/ledger/models"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// VerificationStore defines the persistence contract for the claim ledger.
type VerificationStore interface {
	Create(ctx context.Context, v *models.Verification) (domain.VerificationID, error)
	FindByID(ctx context.Context, id domain.VerificationID) (*models.Verification, error)
	Update(ctx context.Context, v *models.Verification) error
}

// ActorDirectory is the registry as seen by the ledger: role checks before
// any mutation, counter updates inside it. Implemented by the registry
// service.
type ActorDirectory interface {
	IsActiveClient(ctx context.Context, address domain.Principal) (bool, error)
	IsActiveVerifier(ctx context.Context, address domain.Principal) (bool, error)
	RecordClientSubmission(ctx context.Context, address domain.Principal) error
	RecordVerifierApproval(ctx context.Context, address domain.Principal) error
}

// AuditPublisher records ledger events on the domain event stream.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

func wrapVerificationErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeVerificationNotFound, "verification not found")
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

func (e *auditEmitter) emitSubmitted(ctx context.Context, ev models.VerificationSubmitted) {
	e.log(ctx, audit.ActionVerificationSubmitted,
		"verification_id", ev.ID.String(),
		"user", ev.User.String(),
		"client", ev.Client.String(),
		"name", ev.Name,
	)
	e.publish(ctx, audit.Event{
		Action:         audit.ActionVerificationSubmitted,
		Actor:          ev.Client,
		Subject:        ev.User,
		VerificationID: ev.ID,
		Detail: map[string]string{
			"name":         ev.Name,
			"description":  ev.Description,
			"completed_at": strconv.FormatInt(ev.CompletedAt.Unix(), 10),
		},
	})
}

func (e *auditEmitter) emitApproved(ctx context.Context, ev models.VerificationApproved) {
	e.log(ctx, audit.ActionVerificationApproved,
		"verification_id", ev.ID.String(),
		"user", ev.User.String(),
		"verifier", ev.Verifier.String(),
	)
	e.publish(ctx, audit.Event{
		Action:         audit.ActionVerificationApproved,
		Actor:          ev.Verifier,
		Subject:        ev.User,
		VerificationID: ev.ID,
		Detail:         map[string]string{"client": ev.Client.String()},
	})
}

func (e *auditEmitter) emitRejected(ctx context.Context, ev models.VerificationRejected) {
	e.log(ctx, audit.ActionVerificationRejected,
		"verification_id", ev.ID.String(),
		"user", ev.User.String(),
		"verifier", ev.Verifier.String(),
		"reason", ev.Reason,
	)
	e.publish(ctx, audit.Event{
		Action:         audit.ActionVerificationRejected,
		Actor:          ev.Verifier,
		Subject:        ev.User,
		VerificationID: ev.ID,
		Detail: map[string]string{
			"client": ev.Client.String(),
			"reason": ev.Reason,
		},
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
