package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/tacto/internal/store"
)

// Store keeps blobs in Redis, one string key per blob plus an index set.
type Store struct {
	client *redis.Client
}

var _ store.Blob = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Load retrieves a blob. A missing key is reported as store.ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, BlobKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blob %s: %w", name, err)
	}
	return data, nil
}

// Save writes the blob and records its name, in one round trip.
// Blobs never expire: they are the only copy of the data.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, BlobKey(name), data, 0)
	pipe.SAdd(ctx, AllBlobsKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save blob %s: %w", name, err)
	}
	return nil
}

// Delete removes a blob and its index entry
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, BlobKey(name))
	pipe.SRem(ctx, AllBlobsKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", name, err)
	}
	return nil
}

// Names lists every stored blob, sorted.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, AllBlobsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Ping checks the connection, for readiness reporting.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
