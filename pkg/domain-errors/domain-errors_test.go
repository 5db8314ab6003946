package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: every failure in the ledger must surface as a
// distinguishable kind before any mutation, so the invariants "wrapped domain
// errors preserve original code" and "errors.Is matches by code" carry the
// whole error contract.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeVerificationNotFound, Message: "verification not found"}
		s.Equal("verification not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeInsufficientFee}
		s.Equal("insufficient_fee", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("store failure")
		err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeActorNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeDuplicateActor, Message: "client already registered"}
		err2 := &Error{Code: CodeDuplicateActor, Message: "verifier already registered"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeAlreadyMinted}
		err2 := &Error{Code: CodeVerificationNotApproved}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotOwner}
		err2 := errors.New("not owner")
		s.False(err1.Is(err2))
	})

	s.Run("works with errors.Is through chain", func() {
		inner := &Error{Code: CodeVerificationNotPending, Message: "original"}
		wrapped := &Error{Code: CodeInternal, Message: "wrapped", Err: inner}
		target := &Error{Code: CodeVerificationNotPending}
		s.True(errors.Is(wrapped, target))
	})
}

func (s *DomainErrorsSuite) TestNew() {
	err := New(CodeEmptyName, "name cannot be empty")
	s.Require().NotNil(err)

	var domainErr *Error
	s.Require().True(errors.As(err, &domainErr))
	s.Equal(CodeEmptyName, domainErr.Code)
	s.Equal("name cannot be empty", domainErr.Message)
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("wraps plain errors with the given code", func() {
		inner := errors.New("io failure")
		err := Wrap(inner, CodeInternal, "failed to persist verification")

		var domainErr *Error
		s.Require().True(errors.As(err, &domainErr))
		s.Equal(CodeInternal, domainErr.Code)
		s.Equal(inner, domainErr.Err)
	})

	s.Run("preserves the code of an existing domain error", func() {
		inner := New(CodeNotVerificationOwner, "caller is not the subject")
		err := Wrap(inner, CodeInternal, "mint failed")
		s.True(HasCode(err, CodeNotVerificationOwner))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeFutureCompletionDate, "future date"), CodeFutureCompletionDate))
	s.False(HasCode(New(CodeFutureCompletionDate, "future date"), CodeEmptyDescription))
	s.False(HasCode(errors.New("plain"), CodeInternal))
	s.False(HasCode(nil, CodeInternal))
}
