package models

import "skillproof/pkg/domain"

// Domain events capture what happened in the registry. These are pure data
// structures with no behavior; the service layer publishes them to the audit
// stream.

// ClientRegistered is emitted when a new client is registered.
type ClientRegistered struct {
	Address domain.Principal
	Name    string
}

// VerifierRegistered is emitted when the owner registers a verifier.
type VerifierRegistered struct {
	Address domain.Principal
	Name    string
}

// ClientDeactivated is emitted when the owner revokes a client.
type ClientDeactivated struct {
	Address domain.Principal
}

// VerifierDeactivated is emitted when the owner revokes a verifier.
type VerifierDeactivated struct {
	Address domain.Principal
}
