package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/addrconv/internal/address"
)

// MemoryStore keeps addresses in a map. Values are deep-copied on the way
// in and out.
type MemoryStore struct {
	mu        sync.RWMutex
	addresses map[uuid.UUID]address.Address
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{addresses: make(map[uuid.UUID]address.Address)}
}

func (s *MemoryStore) Save(_ context.Context, addr address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.addresses[addr.ID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, addr.ID)
	}
	s.addresses[addr.ID] = addr.Clone()
	return nil
}

func (s *MemoryStore) Fetch(_ context.Context, id uuid.UUID) (address.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if addr, ok := s.addresses[id]; ok {
		return addr.Clone(), nil
	}
	return address.Address{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *MemoryStore) Update(_ context.Context, addr address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.addresses[addr.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, addr.ID)
	}
	s.addresses[addr.ID] = addr.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.addresses[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.addresses, id)
	return nil
}
