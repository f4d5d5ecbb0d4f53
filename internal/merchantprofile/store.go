// internal/merchantprofile/store.go
package merchantprofile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
)

// CacheKey is the single slot profile blobs live under across every backend.
const CacheKey = "paypal.messages.merchantProfileData"

// ErrNotCached is returned by a Store when no profile blob has been persisted.
var ErrNotCached = errors.New("merchant profile not cached")

// Store persists the raw profile blob. Implementations must be safe for
// concurrent use; the provider may read while a background refresh writes.
type Store interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
}

// MemoryStore keeps the blob in process memory. Suitable for hosts that can
// afford a cold profile fetch on every start.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrNotCached
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// FileStore persists the blob to a single file so the cache survives process
// restarts. Writes go through a temp file and rename to stay atomic.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("read profile cache: %w", err)
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write profile cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit profile cache: %w", err)
	}
	return nil
}

// RedisStore persists the blob in redis so a fleet of hosts shares one
// profile cache. Entry expiry is carried inside the blob, not by redis,
// because the hard TTL must be visible to the provider after expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, CacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("redis get profile cache: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, CacheKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set profile cache: %w", err)
	}
	return nil
}
