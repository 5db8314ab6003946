package store

import (
	"context"
	"sync"

	"skillproof/internal/minting/models"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	"skillproof/pkg/platform/sequence"
)

// ErrNotFound is returned when a token is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory holds minted credential tokens. Token ids run on their own
// sequence, independent of verification ids. Reads return copies so callers
// only ever observe committed state.
type InMemory struct {
	mu     sync.RWMutex
	ids    *sequence.Sequence
	tokens map[domain.TokenID]*models.Token
}

// NewInMemory creates an in-memory token store around the injected id
// sequence.
func NewInMemory(ids *sequence.Sequence) *InMemory {
	return &InMemory{
		ids:    ids,
		tokens: make(map[domain.TokenID]*models.Token),
	}
}

// Create assigns the next token id and stores the record. The mint service
// runs all preconditions first: the id sequence only advances on success.
func (s *InMemory) Create(_ context.Context, t *models.Token) (domain.TokenID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.TokenID(s.ids.Next())
	clone := t.Clone()
	clone.ID = id
	s.tokens[id] = clone
	return id, nil
}

// FindByID retrieves a token by id.
func (s *InMemory) FindByID(_ context.Context, id domain.TokenID) (*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tokens[id]; ok {
		return t.Clone(), nil
	}
	return nil, ErrNotFound
}

// Count returns the total number of minted tokens.
func (s *InMemory) Count(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.tokens)), nil
}
