package service

import (
	"context"

	ledgermodels "skillproof/internal/ledger/models"
	mintingmodels "skillproof/internal/minting/models"
	"skillproof/pkg/domain"
)

// VerificationReader is the read slice of the verification store.
type VerificationReader interface {
	FindByID(ctx context.Context, id domain.VerificationID) (*ledgermodels.Verification, error)
	IDsByUser(ctx context.Context, user domain.Principal) ([]domain.VerificationID, error)
	IDsByClient(ctx context.Context, client domain.Principal) ([]domain.VerificationID, error)
	Count(ctx context.Context) (uint64, error)
}

// TokenReader is the read slice of the token store.
type TokenReader interface {
	FindByID(ctx context.Context, id domain.TokenID) (*mintingmodels.Token, error)
	Count(ctx context.Context) (uint64, error)
}

// FeeReader exposes the current fee parameters. Implemented by the policy
// service.
type FeeReader interface {
	VerificationFee() domain.Amount
	MintingFee() domain.Amount
}
