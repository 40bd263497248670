package mocks

import (
	"context"

	"github.com/you/phoneauthsvc/domain"
)

// MockProfileService implements domain.ProfileService interface for testing
type MockProfileService struct {
	GetProfileFunc     func(ctx context.Context, userID string) (*domain.User, *domain.Profile, error)
	UpdateProfileFunc  func(ctx context.Context, userID string, fields map[string]any) (*domain.User, *domain.Profile, error)
	UpdateLanguageFunc func(ctx context.Context, userID, language string) error
}

// NewMockProfileService creates a new MockProfileService with default behaviors
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{}
}

// GetProfile loads a user and the profile view of it
func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, nil, domain.ErrUserNotFound
}

// UpdateProfile applies a sparse field update
func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*domain.User, *domain.Profile, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, fields)
	}
	return nil, nil, domain.ErrUserNotFound
}

// UpdateLanguage stores the user's language preference
func (m *MockProfileService) UpdateLanguage(ctx context.Context, userID, language string) error {
	if m.UpdateLanguageFunc != nil {
		return m.UpdateLanguageFunc(ctx, userID, language)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProfileService = (*MockProfileService)(nil)
