// Package models defines the credential token minted from an approved
// verification.
package models

import (
	"time"

	"skillproof/pkg/domain"
)

// Token is the permanent credential artifact. Exactly one token ever exists
// per verification; tokens are never transferred, burned, or re-minted.
type Token struct {
	ID             domain.TokenID        `json:"id"`
	Owner          domain.Principal      `json:"owner"`
	VerificationID domain.VerificationID `json:"verification_id"`
	MetadataURI    string                `json:"metadata_uri"`
	MintedAt       time.Time             `json:"minted_at"`
}

// Clone returns a copy so store reads never alias live records.
func (t *Token) Clone() *Token {
	clone := *t
	return &clone
}

// NFTMinted is emitted when a subject user mints their credential token.
type NFTMinted struct {
	TokenID        domain.TokenID
	VerificationID domain.VerificationID
	Owner          domain.Principal
	MetadataURI    string
	Paid           domain.Amount
}
