package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/addrconv/internal/address"
)

// FileStore writes one <id>.json file per address under a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

func (s *FileStore) Save(_ context.Context, addr address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(addr.ID)); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, addr.ID)
	}
	return s.write(addr)
}

func (s *FileStore) Fetch(_ context.Context, id uuid.UUID) (address.Address, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return address.Address{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return address.Address{}, fmt.Errorf("failed to read address %s: %w", id, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return address.Address{}, fmt.Errorf("failed to decode address %s: %w", id, err)
	}
	return record.Address()
}

func (s *FileStore) Update(_ context.Context, addr address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(addr.ID)); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, addr.ID)
	}
	return s.write(addr)
}

func (s *FileStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete address %s: %w", id, err)
	}
	return nil
}

// write replaces the address file atomically through a temp file.
func (s *FileStore) write(addr address.Address) error {
	record, err := NewRecord(addr)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode address %s: %w", addr.ID, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write address %s: %w", addr.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write address %s: %w", addr.ID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(addr.ID)); err != nil {
		return fmt.Errorf("failed to store address %s: %w", addr.ID, err)
	}
	return nil
}
