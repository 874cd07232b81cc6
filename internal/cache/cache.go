package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Backend is the raw key-value storage underneath the cache store.
// Implementations store opaque bytes; the store owns the expiry envelope.
// The ttl passed to Set is a storage hygiene hint (native Redis expiry,
// cleanup horizon); freshness is always decided against the envelope.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Entry is the stored envelope: the payload plus an absolute expiry instant
// in unix milliseconds. An entry is fresh iff now < Expiry.
type Entry struct {
	Data   json.RawMessage `json:"data"`
	Expiry int64           `json:"expiry"`
}

// Store is a TTL cache over a pluggable key-value backend.
// The store itself is TTL-agnostic: callers supply the ttl per resource
// class at write time and the expiry is baked into the envelope.
type Store struct {
	backend Backend
	now     func() time.Time
}

// New creates a cache store over the given backend.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		now:     time.Now,
	}
}

// SetClockForTest replaces the store's clock.
func (s *Store) SetClockForTest(now func() time.Time) {
	s.now = now
}

// GetFresh returns the cached payload for key if a fresh entry exists.
// A missing key, an unparsable envelope, or an expired entry all report
// a miss; unparsable and expired entries are deleted as a side effect.
func (s *Store) GetFresh(ctx context.Context, key string) (json.RawMessage, bool) {
	raw, found, err := s.backend.Get(ctx, key)
	if err != nil {
		log.Printf("[cache] read %s: %v", key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Data == nil {
		s.purge(ctx, key)
		return nil, false
	}

	if s.now().UnixMilli() >= entry.Expiry {
		s.purge(ctx, key)
		return nil, false
	}

	return entry.Data, true
}

// Put writes data under key with expiry now+ttl, overwriting any prior value.
func (s *Store) Put(ctx context.Context, key string, data json.RawMessage, ttl time.Duration) error {
	entry := Entry{
		Data:   data,
		Expiry: s.now().Add(ttl).UnixMilli(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, key, raw, ttl)
}

func (s *Store) purge(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		log.Printf("[cache] purge %s: %v", key, err)
	}
}
