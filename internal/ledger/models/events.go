package models

import (
	"time"

	"skillproof/pkg/domain"
)

// Domain events capture what happened in the claim ledger. Pure data; the
// service layer publishes them to the audit stream.

// VerificationSubmitted is emitted when a client submits a claim.
type VerificationSubmitted struct {
	ID          domain.VerificationID
	User        domain.Principal
	Client      domain.Principal
	Name        string
	Description string
	CompletedAt time.Time
}

// VerificationApproved is emitted when a verifier approves a claim.
type VerificationApproved struct {
	ID       domain.VerificationID
	User     domain.Principal
	Client   domain.Principal
	Verifier domain.Principal
}

// VerificationRejected is emitted when a verifier rejects a claim.
type VerificationRejected struct {
	ID       domain.VerificationID
	User     domain.Principal
	Client   domain.Principal
	Verifier domain.Principal
	Reason   string
}
