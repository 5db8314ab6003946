// Package domain defines the identifier and amount types shared across the
// skillproof bounded contexts. Keeping them here lets stores, services, and
// contracts agree on types without importing each other's models.
package domain

import "strconv"

// Principal is an opaque caller identity supplied by the excluded auth layer.
// The core trusts it as-is and never inspects or verifies it.
type Principal string

// IsZero reports whether the principal is unset.
func (p Principal) IsZero() bool {
	return p == ""
}

// String returns the raw principal id.
func (p Principal) String() string {
	return string(p)
}

// VerificationID identifies a verification record. IDs are sequential,
// 1-based, and never reused, even after rejection.
type VerificationID uint64

// IsZero reports whether the id is unset. Zero is never a valid id.
func (v VerificationID) IsZero() bool {
	return v == 0
}

// String formats the id for logs and events.
func (v VerificationID) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// TokenID identifies a minted credential token. Token ids run on their own
// 1-based sequence, distinct from verification ids.
type TokenID uint64

// IsZero reports whether the id is unset.
func (t TokenID) IsZero() bool {
	return t == 0
}

// String formats the id for logs and events.
func (t TokenID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Amount is a quantity of the system's base monetary unit. The type is
// unsigned, so fee parameters are non-negative by construction.
type Amount uint64

// String formats the amount in base units.
func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
