// Package service implements the claim ledger: submission by clients,
// adjudication by verifiers.
package service

import (
	"context"
	"time"

	ledgermetrics "skillproof/internal/ledger/metrics"
	"skillproof/internal/ledger/models"
	"skillproof/internal/platform/tracer"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
	"skillproof/pkg/platform/storetx"
)

// Service orchestrates the verification state machine. All mutations run
// inside the shared transaction boundary, so concurrent submissions get
// distinct ids and concurrent terminal transitions resolve to one winner.
type Service struct {
	verifications VerificationStore
	actors        ActorDirectory
	auditEmitter  *auditEmitter
	metrics       *ledgermetrics.Metrics
	tracer        tracer.Tracer
	tx            storetx.Tx
	now           func() time.Time
}

// New creates the ledger service.
func New(verifications VerificationStore, actors ActorDirectory, tx storetx.Tx, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	now := cfg.clock
	if now == nil {
		now = time.Now
	}
	tr := cfg.tracer
	if tr == nil {
		tr = tracer.NewNoop()
	}
	if tx == nil {
		tx = storetx.NewInMemory()
	}
	return &Service{
		verifications: verifications,
		actors:        actors,
		auditEmitter:  newAuditEmitter(cfg.logger, cfg.auditPublisher),
		metrics:       cfg.metrics,
		tracer:        tr,
		tx:            tx,
		now:           now,
	}
}

// SubmitRequest carries a client's claim that a user completed work
// demonstrating the given skills.
type SubmitRequest struct {
	User        domain.Principal
	Name        string
	Description string
	CompletedAt time.Time
	Skills      []string
}

// Submit records a new pending verification and returns its id. The caller
// must be a registered, active client. Validation runs before the id
// sequence advances, so failed submissions consume no id.
func (s *Service) Submit(ctx context.Context, caller domain.Principal, req SubmitRequest) (domain.VerificationID, error) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanLedgerSubmit,
		tracer.String(tracer.AttrCaller, caller.String()),
		tracer.Int64(tracer.AttrSkillCount, int64(len(req.Skills))),
	)

	var id domain.VerificationID
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		active, err := s.actors.IsActiveClient(txCtx, caller)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check client role")
		}
		if !active {
			return dErrors.New(dErrors.CodeNotAuthorizedClient, "only registered clients can submit verifications")
		}

		v, err := models.NewVerification(req.User, caller, req.Name, req.Description, req.CompletedAt, s.now(), req.Skills)
		if err != nil {
			return err
		}

		newID, err := s.verifications.Create(txCtx, v)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store verification")
		}
		if err := s.actors.RecordClientSubmission(txCtx, caller); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update client counter")
		}
		s.auditEmitter.emitSubmitted(txCtx, models.VerificationSubmitted{
			ID:          newID,
			User:        req.User,
			Client:      caller,
			Name:        req.Name,
			Description: req.Description,
			CompletedAt: req.CompletedAt,
		})
		id = newID
		return nil
	})
	span.End(err)
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementSubmitted()
		s.metrics.ObserveSubmit(start)
	}
	return id, nil
}

// Approve transitions a pending verification to APPROVED. The caller must be
// a registered, active verifier.
func (s *Service) Approve(ctx context.Context, caller domain.Principal, id domain.VerificationID) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanLedgerApprove,
		tracer.String(tracer.AttrCaller, caller.String()),
		tracer.Int64(tracer.AttrVerificationID, int64(id)),
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		v, err := s.requireVerifierAndLoad(txCtx, caller, id)
		if err != nil {
			return err
		}
		if err := v.Approve(); err != nil {
			return err
		}
		if err := s.verifications.Update(txCtx, v); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update verification")
		}
		if err := s.actors.RecordVerifierApproval(txCtx, caller); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update verifier counter")
		}
		s.auditEmitter.emitApproved(txCtx, models.VerificationApproved{
			ID:       v.ID,
			User:     v.User,
			Client:   v.Client,
			Verifier: caller,
		})
		return nil
	})
	if err == nil {
		span.SetAttributes(tracer.String(tracer.AttrStatus, models.StatusApproved.String()))
	}
	span.End(err)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementApproved()
	}
	return nil
}

// Reject transitions a pending verification to REJECTED, a terminal state.
// The reason is advisory and may be empty.
func (s *Service) Reject(ctx context.Context, caller domain.Principal, id domain.VerificationID, reason string) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanLedgerReject,
		tracer.String(tracer.AttrCaller, caller.String()),
		tracer.Int64(tracer.AttrVerificationID, int64(id)),
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		v, err := s.requireVerifierAndLoad(txCtx, caller, id)
		if err != nil {
			return err
		}
		if err := v.Reject(reason); err != nil {
			return err
		}
		if err := s.verifications.Update(txCtx, v); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update verification")
		}
		s.auditEmitter.emitRejected(txCtx, models.VerificationRejected{
			ID:       v.ID,
			User:     v.User,
			Client:   v.Client,
			Verifier: caller,
			Reason:   reason,
		})
		return nil
	})
	if err == nil {
		span.SetAttributes(tracer.String(tracer.AttrStatus, models.StatusRejected.String()))
	}
	span.End(err)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementRejected()
	}
	return nil
}

// requireVerifierAndLoad performs the shared adjudication preconditions:
// active verifier first, then record existence.
func (s *Service) requireVerifierAndLoad(ctx context.Context, caller domain.Principal, id domain.VerificationID) (*models.Verification, error) {
	active, err := s.actors.IsActiveVerifier(ctx, caller)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check verifier role")
	}
	if !active {
		return nil, dErrors.New(dErrors.CodeNotAuthorizedVerifier, "only registered verifiers can adjudicate verifications")
	}
	v, err := s.verifications.FindByID(ctx, id)
	if err != nil {
		return nil, wrapVerificationErr(err, "failed to load verification")
	}
	return v, nil
}
