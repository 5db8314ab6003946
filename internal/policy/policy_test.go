package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillproof/internal/audit"
	"skillproof/pkg/domain"
	dErrors "skillproof/pkg/domain-errors"
)

const owner = domain.Principal("0xowner")

func TestFeesDefaultAndUpdate(t *testing.T) {
	svc := New(owner, 100, 50)

	assert.Equal(t, domain.Amount(100), svc.VerificationFee())
	assert.Equal(t, domain.Amount(50), svc.MintingFee())

	require.NoError(t, svc.SetVerificationFee(context.Background(), owner, 200))
	require.NoError(t, svc.SetMintingFee(context.Background(), owner, 75))

	assert.Equal(t, domain.Amount(200), svc.VerificationFee())
	assert.Equal(t, domain.Amount(75), svc.MintingFee())
}

func TestNonOwnerCannotSetFees(t *testing.T) {
	svc := New(owner, 100, 50)
	intruder := domain.Principal("0xintruder")

	err := svc.SetVerificationFee(context.Background(), intruder, 1)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotOwner))

	err = svc.SetMintingFee(context.Background(), intruder, 1)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotOwner))

	// State unchanged on failure.
	assert.Equal(t, domain.Amount(100), svc.VerificationFee())
	assert.Equal(t, domain.Amount(50), svc.MintingFee())
}

func TestFeeUpdatesEmitEvents(t *testing.T) {
	store := audit.NewInMemoryStore()
	svc := New(owner, 100, 50, WithAuditPublisher(audit.NewPublisher(store)))

	require.NoError(t, svc.SetMintingFee(context.Background(), owner, 75))

	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionMintingFeeUpdated, events[0].Action)
	assert.Equal(t, owner, events[0].Actor)
	assert.Equal(t, "75", events[0].Detail["amount"])
}

func TestRequireOwner(t *testing.T) {
	svc := New(owner, 0, 0)
	assert.NoError(t, svc.RequireOwner(owner))
	assert.True(t, dErrors.HasCode(svc.RequireOwner("0xother"), dErrors.CodeNotOwner))
	assert.Equal(t, owner, svc.Owner())
}
