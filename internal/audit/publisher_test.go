package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillproof/pkg/domain"
)

func TestPublisherSyncEmit(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	err := pub.Emit(context.Background(), Event{
		Action:  ActionClientRegistered,
		Actor:   domain.Principal("0xclient"),
		Subject: domain.Principal("0xclient"),
	})
	require.NoError(t, err)

	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionClientRegistered, events[0].Action)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisherAsyncEmitDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(16))

	for i := 0; i < 5; i++ {
		require.NoError(t, pub.Emit(context.Background(), Event{
			Action: ActionVerificationSubmitted,
			Actor:  domain.Principal("0xclient"),
		}))
	}
	pub.Close()

	events, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestStorePreservesInsertionOrder(t *testing.T) {
	store := NewInMemoryStore()
	actions := []Action{
		ActionClientRegistered,
		ActionVerificationSubmitted,
		ActionVerificationApproved,
		ActionNFTMinted,
	}
	for _, a := range actions {
		require.NoError(t, store.Append(context.Background(), Event{
			Action:    a,
			Timestamp: time.Now(),
		}))
	}

	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, len(actions))
	for i, a := range actions {
		assert.Equal(t, a, events[i].Action)
	}
}

func TestStoreClearResetsStream(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionClientRegistered, Actor: "a"}))
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionNFTMinted, Actor: "a"}))

	store.Clear()

	events, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestListByActorFilters(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionClientRegistered, Actor: "a"}))
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionVerifierRegistered, Actor: "b"}))
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionVerificationSubmitted, Actor: "a"}))

	events, err := store.ListByActor(context.Background(), domain.Principal("a"))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionClientRegistered, events[0].Action)
	assert.Equal(t, ActionVerificationSubmitted, events[1].Action)
}
