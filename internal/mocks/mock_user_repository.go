package mocks

import (
	"context"

	"github.com/you/phoneauthsvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc             func(ctx context.Context, user *domain.User) error
	FindByIDFunc           func(ctx context.Context, id string) (*domain.User, error)
	FindByPhoneFormsFunc   func(ctx context.Context, normalized, raw string) (*domain.User, error)
	GetOrCreateByPhoneFunc func(ctx context.Context, normalized, raw string) (*domain.User, error)
	UpdateFieldsFunc       func(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	UpdateLanguageFunc     func(ctx context.Context, id, language string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// FindByPhoneForms finds a user by normalized or raw phone
func (m *MockUserRepository) FindByPhoneForms(ctx context.Context, normalized, raw string) (*domain.User, error) {
	if m.FindByPhoneFormsFunc != nil {
		return m.FindByPhoneFormsFunc(ctx, normalized, raw)
	}
	return nil, domain.ErrUserNotFound
}

// GetOrCreateByPhone resolves or creates a user for a phone number
func (m *MockUserRepository) GetOrCreateByPhone(ctx context.Context, normalized, raw string) (*domain.User, error) {
	if m.GetOrCreateByPhoneFunc != nil {
		return m.GetOrCreateByPhoneFunc(ctx, normalized, raw)
	}
	return &domain.User{ID: "mock-user", PhoneNumber: normalized}, nil
}

// UpdateFields applies a sparse column update
func (m *MockUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil, domain.ErrUserNotFound
}

// UpdateLanguage updates the language preference
func (m *MockUserRepository) UpdateLanguage(ctx context.Context, id, language string) error {
	if m.UpdateLanguageFunc != nil {
		return m.UpdateLanguageFunc(ctx, id, language)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
