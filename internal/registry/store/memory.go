package store

import (
	"context"
	"fmt"
	"sync"

	"skillproof/internal/registry/models"
	"skillproof/internal/sentinel"
	"skillproof/pkg/domain"
)

// ErrNotFound is returned when an actor is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores clients and verifiers in memory. Reads return copies so
// callers always observe committed state.
type InMemory struct {
	mu        sync.RWMutex
	clients   map[domain.Principal]*models.Client
	verifiers map[domain.Principal]*models.Verifier
}

// NewInMemory creates an in-memory actor store.
func NewInMemory() *InMemory {
	return &InMemory{
		clients:   make(map[domain.Principal]*models.Client),
		verifiers: make(map[domain.Principal]*models.Verifier),
	}
}

// CreateClient stores the client if the address is not already registered,
// active or not.
func (s *InMemory) CreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.clients[c.Address]; exists {
		return fmt.Errorf("client already registered: %w", sentinel.ErrAlreadyUsed)
	}
	clone := *c
	s.clients[c.Address] = &clone
	return nil
}

// CreateVerifier stores the verifier if the address is not already registered.
func (s *InMemory) CreateVerifier(_ context.Context, v *models.Verifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.verifiers[v.Address]; exists {
		return fmt.Errorf("verifier already registered: %w", sentinel.ErrAlreadyUsed)
	}
	clone := *v
	s.verifiers[v.Address] = &clone
	return nil
}

// FindClient retrieves a client by principal.
func (s *InMemory) FindClient(_ context.Context, address domain.Principal) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.clients[address]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, ErrNotFound
}

// FindVerifier retrieves a verifier by principal.
func (s *InMemory) FindVerifier(_ context.Context, address domain.Principal) (*models.Verifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.verifiers[address]; ok {
		clone := *v
		return &clone, nil
	}
	return nil, ErrNotFound
}

// UpdateClient replaces the stored client record.
func (s *InMemory) UpdateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.Address]; !ok {
		return ErrNotFound
	}
	clone := *c
	s.clients[c.Address] = &clone
	return nil
}

// UpdateVerifier replaces the stored verifier record.
func (s *InMemory) UpdateVerifier(_ context.Context, v *models.Verifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.verifiers[v.Address]; !ok {
		return ErrNotFound
	}
	clone := *v
	s.verifiers[v.Address] = &clone
	return nil
}
