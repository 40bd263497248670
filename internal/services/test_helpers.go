package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/phoneauthsvc/domain"
	"github.com/you/phoneauthsvc/internal/mocks"
	"go.uber.org/zap"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for
// testing. Nil arguments fall back to default mocks; the session TTL matches
// the production 30-day default.
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	otpSvc domain.OTPService,
	notifier domain.NotificationService) domain.AuthService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if sessionRepo == nil {
		sessionRepo = mocks.NewMockSessionRepository()
	}
	if otpSvc == nil {
		otpSvc = mocks.NewMockOTPService()
	}
	if notifier == nil {
		notifier = mocks.NewMockNotificationService()
	}

	return NewAuthService(userRepo, sessionRepo, otpSvc, notifier, 720*time.Hour, zap.NewNop())
}

// createValidUser creates a user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	lang := "mr"
	return &domain.User{
		ID:          "user-123",
		PhoneNumber: "9167767684",
		Language:    &lang,
		CreatedAt:   time.Now().Add(-24 * time.Hour),
		UpdatedAt:   time.Now().Add(-1 * time.Hour),
	}
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
