package mocks

import (
	"context"

	"github.com/you/phoneauthsvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SendOTPFunc       func(ctx context.Context, phoneNumber string) (*domain.OTPDispatch, error)
	VerifyOTPFunc     func(ctx context.Context, phoneNumber, code string) (*domain.AuthResult, error)
	VerifySessionFunc func(ctx context.Context, token string) (*domain.Session, error)
	LogoutFunc        func(ctx context.Context, token string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// SendOTP issues and dispatches a code
func (m *MockAuthService) SendOTP(ctx context.Context, phoneNumber string) (*domain.OTPDispatch, error) {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phoneNumber)
	}
	return &domain.OTPDispatch{Delivered: true}, nil
}

// VerifyOTP checks a code and establishes a session
func (m *MockAuthService) VerifyOTP(ctx context.Context, phoneNumber, code string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, phoneNumber, code)
	}
	return nil, domain.ErrOTPInvalid
}

// VerifySession resolves a token to its live session
func (m *MockAuthService) VerifySession(ctx context.Context, token string) (*domain.Session, error) {
	if m.VerifySessionFunc != nil {
		return m.VerifySessionFunc(ctx, token)
	}
	return nil, domain.ErrSessionNotFound
}

// Logout revokes a session
func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
