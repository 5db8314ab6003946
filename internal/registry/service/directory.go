package service

import (
	"context"
	"errors"

	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// The ledger consumes the registry through the methods below rather than the
// store, so role checks and counter updates stay inside this bounded context.

// IsActiveClient reports whether the principal is a registered, active client.
// Unknown principals read as inactive; any other store failure propagates.
func (s *Service) IsActiveClient(ctx context.Context, address domain.Principal) (bool, error) {
	c, err := s.actors.FindClient(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}
	return c.Active, nil
}

// IsActiveVerifier reports whether the principal is a registered, active verifier.
// Same not-found semantics as IsActiveClient.
func (s *Service) IsActiveVerifier(ctx context.Context, address domain.Principal) (bool, error) {
	v, err := s.actors.FindVerifier(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verifier")
	}
	return v.Active, nil
}

// RecordClientSubmission increments the client's submission counter. Called by
// the ledger inside its transaction.
func (s *Service) RecordClientSubmission(ctx context.Context, address domain.Principal) error {
	c, err := s.actors.FindClient(ctx, address)
	if err != nil {
		return wrapClientErr(err, "failed to load client for counter update")
	}
	c.RecordSubmission()
	return s.actors.UpdateClient(ctx, c)
}

// RecordVerifierApproval increments the verifier's approval counter. Called by
// the ledger inside its transaction.
func (s *Service) RecordVerifierApproval(ctx context.Context, address domain.Principal) error {
	v, err := s.actors.FindVerifier(ctx, address)
	if err != nil {
		return wrapVerifierErr(err, "failed to load verifier for counter update")
	}
	v.RecordApproval()
	return s.actors.UpdateVerifier(ctx, v)
}
