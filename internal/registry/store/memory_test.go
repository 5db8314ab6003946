package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillproof/internal/registry/models"
	"skillproof/internal/sentinel"
)

func TestCreateAndFindClient(t *testing.T) {
	s := NewInMemory()
	c, err := models.NewClient("0xclient", "Acme", time.Now())
	require.NoError(t, err)

	require.NoError(t, s.CreateClient(context.Background(), c))

	found, err := s.FindClient(context.Background(), "0xclient")
	require.NoError(t, err)
	assert.Equal(t, "Acme", found.Name)
	assert.True(t, found.Active)
}

func TestCreateClientRejectsDuplicates(t *testing.T) {
	s := NewInMemory()
	c, _ := models.NewClient("0xclient", "Acme", time.Now())
	require.NoError(t, s.CreateClient(context.Background(), c))

	dup, _ := models.NewClient("0xclient", "Other", time.Now())
	err := s.CreateClient(context.Background(), dup)
	assert.True(t, errors.Is(err, sentinel.ErrAlreadyUsed))
}

func TestFindClientNotFound(t *testing.T) {
	s := NewInMemory()
	_, err := s.FindClient(context.Background(), "0xunknown")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadsReturnCopies(t *testing.T) {
	s := NewInMemory()
	c, _ := models.NewClient("0xclient", "Acme", time.Now())
	require.NoError(t, s.CreateClient(context.Background(), c))

	first, err := s.FindClient(context.Background(), "0xclient")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := s.FindClient(context.Background(), "0xclient")
	require.NoError(t, err)
	assert.Equal(t, "Acme", second.Name)
}

func TestUpdateVerifierPersistsCounter(t *testing.T) {
	s := NewInMemory()
	v, _ := models.NewVerifier("0xverifier", "Adjudicator", time.Now())
	require.NoError(t, s.CreateVerifier(context.Background(), v))

	v.RecordApproval()
	require.NoError(t, s.UpdateVerifier(context.Background(), v))

	found, err := s.FindVerifier(context.Background(), "0xverifier")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), found.ApprovedCount)
}

func TestUpdateUnknownActorFails(t *testing.T) {
	s := NewInMemory()
	c, _ := models.NewClient("0xclient", "Acme", time.Now())
	assert.True(t, errors.Is(s.UpdateClient(context.Background(), c), ErrNotFound))

	v, _ := models.NewVerifier("0xverifier", "Adjudicator", time.Now())
	assert.True(t, errors.Is(s.UpdateVerifier(context.Background(), v), ErrNotFound))
}
