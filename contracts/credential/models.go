// Package credential hosts the stable, minimal DTOs returned by the query
// surface. Keep these decoupled from the internal ledger and minting models
// so the read API can stay compatible while internals move.
package credential

import (
	"time"

	"skillproof/pkg/domain"
)

// Verification is the read-side view of a claim. Status carries the wire
// names PENDING, APPROVED, REJECTED, NFT_MINTED.
type Verification struct {
	ID              domain.VerificationID `json:"id"`
	User            domain.Principal      `json:"user"`
	Client          domain.Principal      `json:"client"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	CompletedAt     time.Time             `json:"completed_at"`
	SubmittedAt     time.Time             `json:"submitted_at"`
	Skills          []string              `json:"skills"`
	Status          string                `json:"status"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	MetadataURI     string                `json:"metadata_uri,omitempty"`
}

// Token is the read-side view of a minted credential token.
type Token struct {
	ID             domain.TokenID        `json:"id"`
	Owner          domain.Principal      `json:"owner"`
	VerificationID domain.VerificationID `json:"verification_id"`
	MetadataURI    string                `json:"metadata_uri"`
	MintedAt       time.Time             `json:"minted_at"`
}

// Totals is the aggregate counters view.
type Totals struct {
	Verifications   uint64        `json:"verifications"`
	Tokens          uint64        `json:"tokens"`
	VerificationFee domain.Amount `json:"verification_fee"`
	MintingFee      domain.Amount `json:"minting_fee"`
}
