package mocks

import (
	"context"

	"github.com/you/phoneauthsvc/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc     func() (string, error)
	StoreFunc        func(ctx context.Context, key, code string) error
	VerifyFunc       func(ctx context.Context, key, candidate string) (bool, error)
	SweepExpiredFunc func(ctx context.Context) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate produces a code
func (m *MockOTPService) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "0000", nil
}

// Store records a code for a key
func (m *MockOTPService) Store(ctx context.Context, key, code string) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, key, code)
	}
	return nil
}

// Verify checks a candidate code
func (m *MockOTPService) Verify(ctx context.Context, key, candidate string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, key, candidate)
	}
	return false, nil
}

// SweepExpired removes expired entries
func (m *MockOTPService) SweepExpired(ctx context.Context) error {
	if m.SweepExpiredFunc != nil {
		return m.SweepExpiredFunc(ctx)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
