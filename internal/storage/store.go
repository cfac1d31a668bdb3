// Package storage persists canonical addresses.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/addrconv/internal/address"
)

var (
	// ErrNotFound is returned when no address has the requested id.
	ErrNotFound = errors.New("address not found")
	// ErrAlreadyExists is returned when saving an id that is already stored.
	ErrAlreadyExists = errors.New("resource already exists")
)

// Repository stores canonical addresses by id. Implementations never
// retain references to the values they are given or return.
type Repository interface {
	Save(ctx context.Context, addr address.Address) error
	Fetch(ctx context.Context, id uuid.UUID) (address.Address, error)
	Update(ctx context.Context, addr address.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}
