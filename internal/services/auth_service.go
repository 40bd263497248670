package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/you/phoneauthsvc/domain"
	"go.uber.org/zap"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	otpSvc      domain.OTPService
	notifier    domain.NotificationService
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	otpSvc domain.OTPService,
	notifier domain.NotificationService,
	sessionTTL time.Duration,
	logger *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		otpSvc:      otpSvc,
		notifier:    notifier,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// SendOTP implements domain.AuthService. Allowlisted test numbers get their
// fixed code stored and echoed back without touching the delivery channel.
// For everyone else a fresh code is generated, stored and dispatched; a
// delivery failure is logged and reported as a warning, but it neither fails
// the request nor blocks the account from being created.
func (s *AuthServiceImpl) SendOTP(ctx context.Context, phoneNumber string) (*domain.OTPDispatch, error) {
	normalized := domain.NormalizePhone(phoneNumber)
	if phoneNumber == "" || normalized == "" {
		return nil, domain.ErrPhoneRequired
	}

	if err := s.otpSvc.SweepExpired(ctx); err != nil {
		s.logger.Warn("otp sweep failed", zap.Error(err))
	}

	if code, ok := testCodeFor(normalized, phoneNumber); ok {
		if err := s.otpSvc.Store(ctx, normalized, code); err != nil {
			return nil, fmt.Errorf("failed to store otp: %w", err)
		}
		s.logger.Info("test otp issued", zap.String("phone", normalized))
		return &domain.OTPDispatch{TestMode: true, Code: code, Delivered: true}, nil
	}

	code, err := s.otpSvc.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := s.otpSvc.Store(ctx, normalized, code); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	delivered := true
	if err := s.notifier.Send(phoneNumber, code); err != nil {
		delivered = false
		s.logger.Warn("otp delivery failed", zap.String("phone", normalized), zap.Error(err))
	}

	// Account creation is a side effect of requesting an OTP and must not
	// depend on the delivery outcome.
	if _, err := s.userRepo.GetOrCreateByPhone(ctx, normalized, phoneNumber); err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return &domain.OTPDispatch{Delivered: delivered}, nil
}

// VerifyOTP implements domain.AuthService. The allowlist is consulted before
// the store, and the store is queried under the normalized key with a raw
// fallback. Any failure maps to the uniform ErrOTPInvalid with nothing
// mutated; success resolves or creates the user and mints a fresh session.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, phoneNumber, code string) (*domain.AuthResult, error) {
	normalized := domain.NormalizePhone(phoneNumber)
	code = strings.TrimSpace(code)
	if phoneNumber == "" || normalized == "" || code == "" {
		return nil, domain.ErrOTPRequired
	}

	verified := false
	if want, ok := testCodeFor(normalized, phoneNumber); ok && code == want {
		verified = true
	}
	if !verified {
		ok, err := s.otpSvc.Verify(ctx, normalized, code)
		if err != nil {
			return nil, fmt.Errorf("failed to verify otp: %w", err)
		}
		if !ok && normalized != phoneNumber {
			ok, err = s.otpSvc.Verify(ctx, phoneNumber, code)
			if err != nil {
				return nil, fmt.Errorf("failed to verify otp: %w", err)
			}
		}
		verified = ok
	}
	if !verified {
		return nil, domain.ErrOTPInvalid
	}

	user, err := s.userRepo.GetOrCreateByPhone(ctx, normalized, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("otp verified", zap.String("user_id", user.ID))
	return &domain.AuthResult{User: user, Token: token, Session: session}, nil
}

// VerifySession implements domain.AuthService
func (s *AuthServiceImpl) VerifySession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrTokenRequired
	}
	return s.sessionRepo.FindByToken(ctx, token)
}

// Logout implements domain.AuthService. Deleting an unknown token is a
// successful no-op.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// generateToken mints an opaque bearer token: 32 bytes from crypto/rand plus
// a base36 timestamp component.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + strconv.FormatInt(time.Now().UnixNano(), 36), nil
}
