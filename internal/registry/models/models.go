package models

import (
	"strings"
	"time"

	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

// Client is an actor authorized to submit verification claims.
// Deactivation revokes future privileged actions but never deletes history.
type Client struct {
	Address           domain.Principal `json:"address"`
	Name              string           `json:"name"`
	Active            bool             `json:"active"`
	VerificationCount uint64           `json:"verification_count"`
	RegisteredAt      time.Time        `json:"registered_at"`
}

// NewClient creates an active client with a zero activity count.
func NewClient(address domain.Principal, name string, now time.Time) (*Client, error) {
	if address.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client address is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeEmptyName, "name cannot be empty")
	}
	return &Client{
		Address:      address,
		Name:         name,
		Active:       true,
		RegisteredAt: now,
	}, nil
}

// Deactivate revokes the client's submission privilege. Re-deactivating an
// already-inactive client is a no-op, matching the reference behavior.
func (c *Client) Deactivate() {
	c.Active = false
}

// RecordSubmission increments the client's monotonic activity counter.
func (c *Client) RecordSubmission() {
	c.VerificationCount++
}

// Verifier is an actor authorized to approve or reject claims.
type Verifier struct {
	Address       domain.Principal `json:"address"`
	Name          string           `json:"name"`
	Active        bool             `json:"active"`
	ApprovedCount uint64           `json:"approved_count"`
	RegisteredAt  time.Time        `json:"registered_at"`
}

// NewVerifier creates an active verifier with a zero approval count.
func NewVerifier(address domain.Principal, name string, now time.Time) (*Verifier, error) {
	if address.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "verifier address is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeEmptyName, "name cannot be empty")
	}
	return &Verifier{
		Address:      address,
		Name:         name,
		Active:       true,
		RegisteredAt: now,
	}, nil
}

// Deactivate revokes the verifier's adjudication privilege. Lenient like
// Client.Deactivate.
func (v *Verifier) Deactivate() {
	v.Active = false
}

// RecordApproval increments the verifier's monotonic approval counter.
func (v *Verifier) RecordApproval() {
	v.ApprovedCount++
}
