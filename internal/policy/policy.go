// Package policy holds the administrative owner identity and the fee
// parameters gating the ledger. The owner is fixed at construction; fees are
// owner-settable at runtime.
package policy

import (
	"context"
	"log/slog"
	"sync"

	"skillproof/internal/audit"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// AuditPublisher records fee changes on the domain event stream.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the fee and access policy authority.
type Service struct {
	owner domain.Principal

	mu sync.RWMutex
	// verificationFee is defined but charged by no operation today; it is
	// reserved for future submission-fee enforcement and must not be dropped.
	verificationFee domain.Amount
	mintingFee      domain.Amount

	logger    *slog.Logger
	publisher AuditPublisher
}

// Option configures the policy service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAuditPublisher sets the domain event sink.
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// New creates the policy service. Amounts are unsigned, so the non-negativity
// requirement on fees holds by construction.
func New(owner domain.Principal, verificationFee, mintingFee domain.Amount, opts ...Option) *Service {
	s := &Service{
		owner:           owner,
		verificationFee: verificationFee,
		mintingFee:      mintingFee,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Owner returns the administrative principal.
func (s *Service) Owner() domain.Principal {
	return s.owner
}

// RequireOwner fails with a not_owner error unless caller is the owner.
func (s *Service) RequireOwner(caller domain.Principal) error {
	if caller != s.owner {
		return dErrors.New(dErrors.CodeNotOwner, "caller is not the owner")
	}
	return nil
}

// VerificationFee returns the current (reserved, uncharged) submission fee.
func (s *Service) VerificationFee() domain.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verificationFee
}

// MintingFee returns the fee required to mint a credential token.
func (s *Service) MintingFee() domain.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mintingFee
}

// SetVerificationFee updates the reserved submission fee. Owner only.
func (s *Service) SetVerificationFee(ctx context.Context, caller domain.Principal, amount domain.Amount) error {
	if err := s.RequireOwner(caller); err != nil {
		return err
	}
	s.mu.Lock()
	s.verificationFee = amount
	s.mu.Unlock()

	s.emit(ctx, audit.ActionVerificationFeeUpdated, caller, amount)
	return nil
}

// SetMintingFee updates the minting fee. Owner only.
func (s *Service) SetMintingFee(ctx context.Context, caller domain.Principal, amount domain.Amount) error {
	if err := s.RequireOwner(caller); err != nil {
		return err
	}
	s.mu.Lock()
	s.mintingFee = amount
	s.mu.Unlock()

	s.emit(ctx, audit.ActionMintingFeeUpdated, caller, amount)
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, caller domain.Principal, amount domain.Amount) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"caller", caller.String(),
			"amount", amount.String(),
			"log_type", "audit",
		)
	}
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, audit.Event{
		Action: action,
		Actor:  caller,
		Detail: map[string]string{"amount": amount.String()},
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}
