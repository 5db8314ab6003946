// Package models defines the verification aggregate and its state machine.
//
// A verification moves PENDING -> APPROVED -> NFT_MINTED, or
// PENDING -> REJECTED (terminal). No other transitions are legal; the
// transition methods below are the only way to change status.
package models

import (
	"strings"
	"time"

	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// Status is the verification lifecycle state. The numeric order matches the
// reference system's encoding and must not change.
type Status uint8

const (
	StatusPending Status = iota
	StatusApproved
	StatusRejected
	StatusNFTMinted
)

// String returns the wire name for the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusApproved:
		return "APPROVED"
	case StatusRejected:
		return "REJECTED"
	case StatusNFTMinted:
		return "NFT_MINTED"
	default:
		return "UNKNOWN"
	}
}

// Verification is a client's claim that a subject user completed work
// demonstrating the given skills.
type Verification struct {
	ID              domain.VerificationID `json:"id"`
	User            domain.Principal      `json:"user"`
	Client          domain.Principal      `json:"client"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	CompletedAt     time.Time             `json:"completed_at"`
	SubmittedAt     time.Time             `json:"submitted_at"`
	Skills          []string              `json:"skills"`
	Status          Status                `json:"status"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	MetadataURI     string                `json:"metadata_uri,omitempty"`
}

// NewVerification validates and creates a pending verification. The id is
// assigned by the store on creation, after validation, so failed submissions
// never consume an id. Validation failures surface in this order: empty name,
// empty description, future completion date, no skills.
func NewVerification(user, client domain.Principal, name, description string, completedAt, now time.Time, skills []string) (*Verification, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeEmptyName, "name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, dErrors.New(dErrors.CodeEmptyDescription, "description cannot be empty")
	}
	if completedAt.After(now) {
		return nil, dErrors.New(dErrors.CodeFutureCompletionDate, "completion date cannot be in the future")
	}
	if len(skills) == 0 {
		return nil, dErrors.New(dErrors.CodeNoSkillsSpecified, "at least one skill must be specified")
	}
	return &Verification{
		User:        user,
		Client:      client,
		Name:        name,
		Description: description,
		CompletedAt: completedAt,
		SubmittedAt: now,
		Skills:      append([]string(nil), skills...),
		Status:      StatusPending,
	}, nil
}

// Approve transitions PENDING -> APPROVED.
func (v *Verification) Approve() error {
	if v.Status != StatusPending {
		return dErrors.New(dErrors.CodeVerificationNotPending, "verification not pending")
	}
	v.Status = StatusApproved
	return nil
}

// Reject transitions PENDING -> REJECTED and records the advisory reason.
// The reason is not validated; an empty reason is allowed.
func (v *Verification) Reject(reason string) error {
	if v.Status != StatusPending {
		return dErrors.New(dErrors.CodeVerificationNotPending, "verification not pending")
	}
	v.Status = StatusRejected
	v.RejectionReason = reason
	return nil
}

// MarkMinted transitions APPROVED -> NFT_MINTED and stores the token's
// metadata URI on the record for convenient lookup.
func (v *Verification) MarkMinted(metadataURI string) error {
	if v.Status == StatusNFTMinted {
		return dErrors.New(dErrors.CodeAlreadyMinted, "nft already minted")
	}
	if v.Status != StatusApproved {
		return dErrors.New(dErrors.CodeVerificationNotApproved, "verification not approved")
	}
	v.Status = StatusNFTMinted
	v.MetadataURI = metadataURI
	return nil
}

// Clone returns a deep copy so store reads never alias live records.
func (v *Verification) Clone() *Verification {
	clone := *v
	clone.Skills = append([]string(nil), v.Skills...)
	return &clone
}
