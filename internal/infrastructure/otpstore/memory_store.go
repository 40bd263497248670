package otpstore

import (
	"context"
	"sync"
	"time"

	"github.com/you/phoneauthsvc/domain"
)

// MemoryStore implements domain.OTPStore with a process-local map. It backs
// single-node deployments without Redis and the test suites. Expiry is
// evaluated lazily on Get; Sweep removes everything already past its TTL.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]domain.OTPEntry
}

// NewMemoryStore creates an in-memory OTP store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]domain.OTPEntry)}
}

// Put implements domain.OTPStore
func (s *MemoryStore) Put(ctx context.Context, key string, entry *domain.OTPEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = *entry
	return nil
}

// Get implements domain.OTPStore
func (s *MemoryStore) Get(ctx context.Context, key string) (*domain.OTPEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	if entry.Expired(time.Now()) {
		delete(s.entries, key)
		return nil, domain.ErrOTPNotFound
	}
	out := entry
	return &out, nil
}

// Delete implements domain.OTPStore
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Sweep implements domain.OTPStore
func (s *MemoryStore) Sweep(ctx context.Context) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
		}
	}
	return nil
}

// Len reports the number of live and expired entries currently held. Test
// helper.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
