// Package service implements the fee-gated, one-shot mint of a credential
// token from an approved verification.
package service

import (
	"context"
	"time"

	ledgermodels "skillproof/internal/ledger/models"
	mintingmetrics "skillproof/internal/minting/metrics"
	"skillproof/internal/minting/models"
	"skillproof/internal/platform/tracer"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
	"skillproof/pkg/platform/storetx"
)

// Service mints credential tokens. The status flip and the token write share
// the transaction boundary with the ledger, so concurrent mints of the same
// verification resolve to one winner and one token.
type Service struct {
	tokens        TokenStore
	verifications VerificationStore
	fees          FeePolicy
	auditEmitter  *auditEmitter
	metrics       *mintingmetrics.Metrics
	tracer        tracer.Tracer
	tx            storetx.Tx
	now           func() time.Time
}

// New creates the minting service.
func New(tokens TokenStore, verifications VerificationStore, fees FeePolicy, tx storetx.Tx, opts ...Option) *Service {
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
		tokens:        tokens,
		verifications: verifications,
		fees:          fees,
		auditEmitter:  newAuditEmitter(cfg.logger, cfg.auditPublisher),
		metrics:       cfg.metrics,
		tracer:        tr,
		tx:            tx,
		now:           now,
	}
}

// Mint creates the credential token for an approved verification. Only the
// subject user may mint, exactly once, and must pay at least the minting fee.
// Overpayment is accepted and retained. Preconditions are checked in order:
// record exists, caller is the subject, not already minted, approved, fee
// covered. On success the token write and the NFT_MINTED status flip commit
// together.
func (s *Service) Mint(ctx context.Context, caller domain.Principal, id domain.VerificationID, metadataURI string, paid domain.Amount) (domain.TokenID, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanMintingMint,
		tracer.String(tracer.AttrCaller, caller.String()),
		tracer.Int64(tracer.AttrVerificationID, int64(id)),
		tracer.String(tracer.AttrPaidAmount, paid.String()),
	)

	var tokenID domain.TokenID
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		v, err := s.verifications.FindByID(txCtx, id)
		if err != nil {
			return wrapVerificationErr(err, "failed to load verification")
		}
		if caller != v.User {
			return dErrors.New(dErrors.CodeNotVerificationOwner, "only the subject user can mint this credential")
		}
		if v.Status == ledgermodels.StatusNFTMinted {
			return dErrors.New(dErrors.CodeAlreadyMinted, "nft already minted")
		}
		if v.Status != ledgermodels.StatusApproved {
			return dErrors.New(dErrors.CodeVerificationNotApproved, "verification not approved")
		}
		fee := s.fees.MintingFee()
		if paid < fee {
			return dErrors.New(dErrors.CodeInsufficientFee, "insufficient minting fee")
		}

		if err := v.MarkMinted(metadataURI); err != nil {
			return err
		}
		newID, err := s.tokens.Create(txCtx, &models.Token{
			Owner:          caller,
			VerificationID: id,
			MetadataURI:    metadataURI,
			MintedAt:       s.now(),
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store token")
		}
		if err := s.verifications.Update(txCtx, v); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update verification")
		}
		s.auditEmitter.emitMinted(txCtx, models.NFTMinted{
			TokenID:        newID,
			VerificationID: id,
			Owner:          caller,
			MetadataURI:    metadataURI,
			Paid:           paid,
		})
		tokenID = newID
		return nil
	})
	if err == nil {
		span.SetAttributes(tracer.String(tracer.AttrTokenID, tokenID.String()))
	}
	span.End(err)
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementMinted()
		s.metrics.AddFeesCollected(uint64(paid))
	}
	return tokenID, nil
}
