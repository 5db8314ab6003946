package service

import (
	"context"
	"errors"
	"log/slog"

	"skillproof/internal/audit"
	ledgermodels "skillproof/internal/ledger/models"
	"skillproof/internal/minting/models"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// TokenStore defines the persistence contract for minted tokens.
type TokenStore interface {
	Create(ctx context.Context, t *models.Token) (domain.TokenID, error)
	FindByID(ctx context.Context, id domain.TokenID) (*models.Token, error)
}

// VerificationStore is the slice of the ledger the mint path needs: load the
// record, then flip it to NFT_MINTED.
type VerificationStore interface {
	FindByID(ctx context.Context, id domain.VerificationID) (*ledgermodels.Verification, error)
	Update(ctx context.Context, v *ledgermodels.Verification) error
}

// FeePolicy supplies the fee a caller must pay to mint. Implemented by the
// policy service.
type FeePolicy interface {
	MintingFee() domain.Amount
}

// AuditPublisher records mint events on the domain event stream.
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

func (e *auditEmitter) emitMinted(ctx context.Context, ev models.NFTMinted) {
	if e.logger != nil {
		e.logger.InfoContext(ctx, string(audit.ActionNFTMinted),
			"token_id", ev.TokenID.String(),
			"verification_id", ev.VerificationID.String(),
			"owner", ev.Owner.String(),
			"event", string(audit.ActionNFTMinted),
			"log_type", "audit",
		)
	}
	if e.publisher == nil {
		return
	}
	err := e.publisher.Emit(ctx, audit.Event{
		Action:         audit.ActionNFTMinted,
		Actor:          ev.Owner,
		Subject:        ev.Owner,
		VerificationID: ev.VerificationID,
		TokenID:        ev.TokenID,
		Detail: map[string]string{
			"metadata_uri": ev.MetadataURI,
			"paid":         ev.Paid.String(),
		},
	})
	if err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", audit.ActionNFTMinted,
			"error", err,
		)
	}
}
