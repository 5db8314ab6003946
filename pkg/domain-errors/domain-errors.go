package domainerrors

import "errors"

// Code represents a domain error category independent of any transport layer.
// These codes describe what went wrong in business terms; the surrounding API
// layer is responsible for translating them into transport responses.
type Code string

const (
	// Registry failures.
	CodeDuplicateActor Code = "duplicate_actor"
	CodeActorNotFound  Code = "actor_not_found"
	CodeEmptyName      Code = "empty_name"

	// Submission validation failures.
	CodeEmptyDescription     Code = "empty_description"
	CodeFutureCompletionDate Code = "future_completion_date"
	CodeNoSkillsSpecified    Code = "no_skills_specified"

	// Authorization failures.
	CodeNotAuthorizedClient   Code = "not_authorized_client"
	CodeNotAuthorizedVerifier Code = "not_authorized_verifier"
	CodeNotOwner              Code = "not_owner"

	// Claim ledger failures.
	CodeVerificationNotFound   Code = "verification_not_found"
	CodeVerificationNotPending Code = "verification_not_pending"

	// Minting failures.
	CodeVerificationNotApproved Code = "verification_not_approved"
	CodeAlreadyMinted           Code = "already_minted"
	CodeNotVerificationOwner    Code = "not_verification_owner"
	CodeInsufficientFee         Code = "insufficient_fee"
	CodeTokenNotFound           Code = "token_not_found"

	// Ambient failures.
	CodeInternal           Code = "internal_error"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service and store layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
