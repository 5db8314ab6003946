package store

import (
	"context"
	"sync"

	"skillproof/internal/ledger/models"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
	"skillproof/pkg/platform/sequence"
)

// ErrNotFound is returned when a verification is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory is the authoritative verification ledger plus its derived
// per-user and per-client indices. The indices are append-only and
// rebuildable from the records; they are maintained inline so reads stay
// cheap. Reads return deep copies so callers only ever observe committed
// state.
type InMemory struct {
	mu            sync.RWMutex
	ids           *sequence.Sequence
	verifications map[domain.VerificationID]*models.Verification
	userIdx       map[domain.Principal][]domain.VerificationID
	clientIdx     map[domain.Principal][]domain.VerificationID
}

// NewInMemory creates an in-memory verification store around the injected id
// sequence.
func NewInMemory(ids *sequence.Sequence) *InMemory {
	return &InMemory{
		ids:           ids,
		verifications: make(map[domain.VerificationID]*models.Verification),
		userIdx:       make(map[domain.Principal][]domain.VerificationID),
		clientIdx:     make(map[domain.Principal][]domain.VerificationID),
	}
}

// Create assigns the next verification id, stores the record, and appends it
// to both indices. Callers must have fully validated the record: the id
// sequence only advances on success.
func (s *InMemory) Create(_ context.Context, v *models.Verification) (domain.VerificationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.VerificationID(s.ids.Next())
	clone := v.Clone()
	clone.ID = id
	s.verifications[id] = clone
	s.userIdx[v.User] = append(s.userIdx[v.User], id)
	s.clientIdx[v.Client] = append(s.clientIdx[v.Client], id)
	return id, nil
}

// FindByID retrieves a verification by id.
func (s *InMemory) FindByID(_ context.Context, id domain.VerificationID) (*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.verifications[id]; ok {
		return v.Clone(), nil
	}
	return nil, ErrNotFound
}

// Update replaces the stored record. The record's id must already exist;
// updates never touch the indices because user and client are immutable.
func (s *InMemory) Update(_ context.Context, v *models.Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.verifications[v.ID]; !ok {
		return ErrNotFound
	}
	s.verifications[v.ID] = v.Clone()
	return nil
}

// IDsByUser returns the verification ids for a subject user in insertion order.
func (s *InMemory) IDsByUser(_ context.Context, user domain.Principal) ([]domain.VerificationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.VerificationID{}, s.userIdx[user]...), nil
}

// IDsByClient returns the verification ids submitted by a client in insertion order.
func (s *InMemory) IDsByClient(_ context.Context, client domain.Principal) ([]domain.VerificationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.VerificationID{}, s.clientIdx[client]...), nil
}

// Count returns the total number of submitted verifications, regardless of
// status.
func (s *InMemory) Count(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.verifications)), nil
}
