package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/you/phoneauthsvc/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// OTPServiceImpl implements domain.OTPService over an injectable store.
type OTPServiceImpl struct {
	store  domain.OTPStore
	config OTPConfig
	logger *zap.Logger
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(store domain.OTPStore, config OTPConfig, logger *zap.Logger) domain.OTPService {
	if config.Length <= 0 {
		config.Length = 4
	}
	return &OTPServiceImpl{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Generate implements domain.OTPService. Codes are short numeric strings a
// human can read aloud, drawn from crypto/rand.
func (s *OTPServiceImpl) Generate() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

// Store implements domain.OTPService. The entry for key is overwritten
// unconditionally: re-sending an OTP invalidates the previous one. Only the
// bcrypt hash of the code reaches the store.
func (s *OTPServiceImpl) Store(ctx context.Context, key, code string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash otp code: %w", err)
	}

	now := time.Now()
	entry := &domain.OTPEntry{
		CodeHash:  hash,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TTL),
	}
	return s.store.Put(ctx, key, entry)
}

// Verify implements domain.OTPService. The candidate is trimmed and compared
// exactly, case sensitive. A match consumes the entry: the code is single
// use. Absent, expired and mismatched codes all report (false, nil) so the
// caller cannot distinguish the cause.
func (s *OTPServiceImpl) Verify(ctx context.Context, key, candidate string) (bool, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false, nil
	}

	entry, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return false, nil
		}
		return false, err
	}
	if entry.Expired(time.Now()) {
		return false, nil
	}

	if bcrypt.CompareHashAndPassword(entry.CodeHash, []byte(candidate)) != nil {
		return false, nil
	}

	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to consume verified otp", zap.String("key", key), zap.Error(err))
	}
	return true, nil
}

// SweepExpired implements domain.OTPService. Called opportunistically before
// each new issuance, never from a timer.
func (s *OTPServiceImpl) SweepExpired(ctx context.Context) error {
	return s.store.Sweep(ctx)
}
