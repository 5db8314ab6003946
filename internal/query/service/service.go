// Package service implements the read-only query surface over the ledger,
// the token store, and the fee policy. Queries never mutate state; each
// answer reflects a committed snapshot taken at read time.
package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"skillproof/contracts/credential"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// Service answers read queries. It is safe for concurrent use; all state
// lives behind the injected readers.
type Service struct {
	verifications VerificationReader
	tokens        TokenReader
	fees          FeeReader
}

// New creates the query service.
func New(verifications VerificationReader, tokens TokenReader, fees FeeReader) *Service {
	return &Service{
		verifications: verifications,
		tokens:        tokens,
		fees:          fees,
	}
}

// GetVerification returns the full read view of a verification.
func (s *Service) GetVerification(ctx context.Context, id domain.VerificationID) (credential.Verification, error) {
	v, err := s.verifications.FindByID(ctx, id)
	if err != nil {
		return credential.Verification{}, wrapVerificationErr(err)
	}
	return credential.Verification{
		ID:              v.ID,
		User:            v.User,
		Client:          v.Client,
		Name:            v.Name,
		Description:     v.Description,
		CompletedAt:     v.CompletedAt,
		SubmittedAt:     v.SubmittedAt,
		Skills:          v.Skills,
		Status:          v.Status.String(),
		RejectionReason: v.RejectionReason,
		MetadataURI:     v.MetadataURI,
	}, nil
}

// GetVerificationSkills returns the skill list of a verification.
func (s *Service) GetVerificationSkills(ctx context.Context, id domain.VerificationID) ([]string, error) {
	v, err := s.verifications.FindByID(ctx, id)
	if err != nil {
		return nil, wrapVerificationErr(err)
	}
	return v.Skills, nil
}

// UserVerifications returns the ids of all verifications about a subject
// user, in submission order. Unknown users yield an empty list, not an error.
func (s *Service) UserVerifications(ctx context.Context, user domain.Principal) ([]domain.VerificationID, error) {
	ids, err := s.verifications.IDsByUser(ctx, user)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list user verifications")
	}
	return ids, nil
}

// ClientVerifications returns the ids of all verifications submitted by a
// client, in submission order. Unknown clients yield an empty list.
func (s *Service) ClientVerifications(ctx context.Context, client domain.Principal) ([]domain.VerificationID, error) {
	ids, err := s.verifications.IDsByClient(ctx, client)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list client verifications")
	}
	return ids, nil
}

// TotalVerifications returns the count of all submissions ever accepted,
// regardless of status.
func (s *Service) TotalVerifications(ctx context.Context) (uint64, error) {
	n, err := s.verifications.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count verifications")
	}
	return n, nil
}

// TotalTokens returns the count of minted credential tokens.
func (s *Service) TotalTokens(ctx context.Context) (uint64, error) {
	n, err := s.tokens.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count tokens")
	}
	return n, nil
}

// OwnerOf returns the principal holding a token.
func (s *Service) OwnerOf(ctx context.Context, id domain.TokenID) (domain.Principal, error) {
	t, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		return "", wrapTokenErr(err)
	}
	return t.Owner, nil
}

// TokenURI returns the metadata URI recorded at mint time.
func (s *Service) TokenURI(ctx context.Context, id domain.TokenID) (string, error) {
	t, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		return "", wrapTokenErr(err)
	}
	return t.MetadataURI, nil
}

// GetToken returns the full read view of a minted token.
func (s *Service) GetToken(ctx context.Context, id domain.TokenID) (credential.Token, error) {
	t, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		return credential.Token{}, wrapTokenErr(err)
	}
	return credential.Token{
		ID:             t.ID,
		Owner:          t.Owner,
		VerificationID: t.VerificationID,
		MetadataURI:    t.MetadataURI,
		MintedAt:       t.MintedAt,
	}, nil
}

// Totals gathers the aggregate counters and the current fees. The two counts
// are fetched in parallel; each goroutine writes to its own field, so results
// are assembled race-free after Wait.
func (s *Service) Totals(ctx context.Context) (credential.Totals, error) {
	g, gctx := errgroup.WithContext(ctx)

	var verifications, tokens uint64
	g.Go(func() error {
		n, err := s.verifications.Count(gctx)
		if err != nil {
			return err
		}
		verifications = n
		return nil
	})
	g.Go(func() error {
		n, err := s.tokens.Count(gctx)
		if err != nil {
			return err
		}
		tokens = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return credential.Totals{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to gather totals")
	}

	return credential.Totals{
		Verifications:   verifications,
		Tokens:          tokens,
		VerificationFee: s.fees.VerificationFee(),
		MintingFee:      s.fees.MintingFee(),
	}, nil
}

func wrapVerificationErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeVerificationNotFound, "verification not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification")
}

func wrapTokenErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeTokenNotFound, "token not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load token")
}
