package otpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/phoneauthsvc/domain"
)

// RedisStore implements domain.OTPStore on Redis. Entries carry their own
// expiry and additionally get a matching Redis TTL so the backend evicts
// them on its own.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed OTP store
func NewRedisStore(client *redis.Client) domain.OTPStore {
	return &RedisStore{
		client: client,
		prefix: "otp:",
	}
}

// Put implements domain.OTPStore. Writing a key that already holds an entry
// replaces it; re-sending an OTP always invalidates the previous one.
func (s *RedisStore) Put(ctx context.Context, key string, entry *domain.OTPEntry) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, key)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal otp entry: %w", err)
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

// Get implements domain.OTPStore
func (s *RedisStore) Get(ctx context.Context, key string) (*domain.OTPEntry, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}

	var entry domain.OTPEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp entry: %w", err)
	}

	if entry.Expired(time.Now()) {
		s.client.Del(ctx, s.prefix+key)
		return nil, domain.ErrOTPNotFound
	}

	return &entry, nil
}

// Delete implements domain.OTPStore
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Sweep implements domain.OTPStore. Redis evicts keys via TTL, so this is a
// no-op; a scan-and-delete only exists in backends without native expiry.
func (s *RedisStore) Sweep(ctx context.Context) error {
	return nil
}
