// Package service orchestrates client and verifier lifecycle management.
package service

import (
	"context"
	"errors"
	"time"

	registrymetrics "skillproof/internal/registry/metrics"
	"skillproof/internal/registry/models"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
	"skillproof/pkg/platform/storetx"
)

// Service is the actor registry. Registration of clients is open; verifier
// registration and all deactivations require the policy owner.
type Service struct {
	actors       ActorStore
	authz        OwnerPolicy
	auditEmitter *auditEmitter
	metrics      *registrymetrics.Metrics
	tx           storetx.Tx
	now          func() time.Time
}

// New creates the registry service. The tx must be the ledger-wide
// transaction boundary so registrations serialize with submissions.
func New(actors ActorStore, authz OwnerPolicy, tx storetx.Tx, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	now := cfg.clock
	if now == nil {
		now = time.Now
	}
	if tx == nil {
		tx = storetx.NewInMemory()
	}
	return &Service{
		actors:       actors,
		authz:        authz,
		auditEmitter: newAuditEmitter(cfg.logger, cfg.auditPublisher),
		metrics:      cfg.metrics,
		tx:           tx,
		now:          now,
	}
}

// Bootstrap registers the policy owner as the first active verifier. It runs
// once at system initialization so the adjudication authority exists before
// any claim is submitted.
func (s *Service) Bootstrap(ctx context.Context, ownerName string) error {
	owner := s.authz.Owner()
	_, err := s.RegisterVerifier(ctx, owner, owner, ownerName)
	return err
}

// RegisterClient registers the caller as an active client.
func (s *Service) RegisterClient(ctx context.Context, caller domain.Principal, name string) (*models.Client, error) {
	var client *models.Client
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.actors.FindClient(txCtx, caller); err == nil {
			return dErrors.New(dErrors.CodeDuplicateActor, "client already registered")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check client registration")
		}

		c, err := models.NewClient(caller, name, s.now())
		if err != nil {
			return err
		}
		if err := s.actors.CreateClient(txCtx, c); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeDuplicateActor, "client already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create client")
		}
		s.auditEmitter.emitClientRegistered(txCtx, models.ClientRegistered{
			Address: c.Address,
			Name:    c.Name,
		})
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementClientsRegistered()
	}
	return client, nil
}

// RegisterVerifier registers a new active verifier. Owner only.
func (s *Service) RegisterVerifier(ctx context.Context, caller, address domain.Principal, name string) (*models.Verifier, error) {
	if err := s.authz.RequireOwner(caller); err != nil {
		return nil, err
	}

	var verifier *models.Verifier
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.actors.FindVerifier(txCtx, address); err == nil {
			return dErrors.New(dErrors.CodeDuplicateActor, "verifier already registered")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check verifier registration")
		}

		v, err := models.NewVerifier(address, name, s.now())
		if err != nil {
			return err
		}
		if err := s.actors.CreateVerifier(txCtx, v); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeDuplicateActor, "verifier already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create verifier")
		}
		s.auditEmitter.emitVerifierRegistered(txCtx, caller, models.VerifierRegistered{
			Address: v.Address,
			Name:    v.Name,
		})
		verifier = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementVerifiersRegistered()
	}
	return verifier, nil
}

// DeactivateClient revokes a client's submission privilege. Owner only.
// Deactivating an already-inactive client succeeds as a no-op.
func (s *Service) DeactivateClient(ctx context.Context, caller, address domain.Principal) error {
	if err := s.authz.RequireOwner(caller); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.actors.FindClient(txCtx, address)
		if err != nil {
			return wrapClientErr(err, "failed to load client")
		}
		c.Deactivate()
		if err := s.actors.UpdateClient(txCtx, c); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update client")
		}
		s.auditEmitter.emitClientDeactivated(txCtx, caller, models.ClientDeactivated{Address: address})
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementDeactivated("client")
	}
	return nil
}

// DeactivateVerifier revokes a verifier's adjudication privilege. Owner only.
func (s *Service) DeactivateVerifier(ctx context.Context, caller, address domain.Principal) error {
	if err := s.authz.RequireOwner(caller); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		v, err := s.actors.FindVerifier(txCtx, address)
		if err != nil {
			return wrapVerifierErr(err, "failed to load verifier")
		}
		v.Deactivate()
		if err := s.actors.UpdateVerifier(txCtx, v); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update verifier")
		}
		s.auditEmitter.emitVerifierDeactivated(txCtx, caller, models.VerifierDeactivated{Address: address})
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementDeactivated("verifier")
	}
	return nil
}

// GetClient retrieves a client record. The second return is false for
// unregistered principals; lookups never fail.
func (s *Service) GetClient(ctx context.Context, address domain.Principal) (*models.Client, bool) {
	c, err := s.actors.FindClient(ctx, address)
	if err != nil {
		return nil, false
	}
	return c, true
}

// GetVerifier retrieves a verifier record. Same not-found semantics as
// GetClient.
func (s *Service) GetVerifier(ctx context.Context, address domain.Principal) (*models.Verifier, bool) {
	v, err := s.actors.FindVerifier(ctx, address)
	if err != nil {
		return nil, false
	}
	return v, true
}
