package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/addrconv/internal/address"
)

// RedisStore keeps each address as a JSON record under prefix+id.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps client. The client lifecycle is managed by the caller.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

func (s *RedisStore) Save(ctx context.Context, addr address.Address) error {
	data, err := s.encode(addr)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, s.key(addr.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store address %s: %w", addr.ID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, addr.ID)
	}
	return nil
}

func (s *RedisStore) Fetch(ctx context.Context, id uuid.UUID) (address.Address, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (s *RedisStore) Update(ctx context.Context, addr address.Address) error {
	data, err := s.encode(addr)
	if err != nil {
		return err
	}
	ok, err := s.client.SetXX(ctx, s.key(addr.ID), data, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to update address %s: %w", addr.ID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, addr.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete address %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *RedisStore) encode(addr address.Address) ([]byte, error) {
	record, err := NewRecord(addr)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode address %s: %w", addr.ID, err)
	}
	return data, nil
}
