package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/phoneauthsvc/domain"
	"github.com/you/phoneauthsvc/internal/mocks"
	"go.uber.org/zap"
)

func createProfileServiceForTest(t *testing.T, userRepo domain.UserRepository) domain.ProfileService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	return NewProfileService(userRepo, zap.NewNop())
}

func TestProfileServiceImpl_GetProfile(t *testing.T) {
	user := createValidUser(t)
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		if id == user.ID {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}

	svc := createProfileServiceForTest(t, userRepo)
	ctx := createTestContext(t)

	got, profile, err := svc.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}
	if profile == nil {
		t.Fatal("expected a profile projection")
	}
	if profile.Complete() {
		t.Error("a bare phone-and-language user is not complete")
	}

	if _, _, err := svc.GetProfile(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileServiceImpl_UpdateProfile(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]any
		expectedFields map[string]any
		expectedError  error
	}{
		{
			name: "whitelisted string fields pass through",
			fields: map[string]any{
				"first_name": "Asha",
				"last_name":  "Patil",
			},
			expectedFields: map[string]any{
				"first_name": "Asha",
				"last_name":  "Patil",
			},
		},
		{
			name: "null clears a column",
			fields: map[string]any{
				"email": nil,
			},
			expectedFields: map[string]any{
				"email": nil,
			},
		},
		{
			name: "unknown keys are dropped",
			fields: map[string]any{
				"first_name":   "Asha",
				"id":           "evil-id",
				"phone_number": "0000000000",
				"is_admin":     true,
			},
			expectedFields: map[string]any{
				"first_name": "Asha",
			},
		},
		{
			name: "non-string value rejected",
			fields: map[string]any{
				"first_name": 42,
			},
			expectedError: domain.ErrInvalidField,
		},
		{
			name:           "empty payload is a read",
			fields:         map[string]any{},
			expectedFields: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := createValidUser(t)
			var gotFields map[string]any
			userRepo := mocks.NewMockUserRepository()
			userRepo.UpdateFieldsFunc = func(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
				gotFields = fields
				return user, nil
			}

			svc := createProfileServiceForTest(t, userRepo)

			_, profile, err := svc.UpdateProfile(createTestContext(t), user.ID, tt.fields)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				if gotFields != nil {
					t.Error("rejected payloads must not reach the repository")
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateProfile failed: %v", err)
			}
			if profile == nil {
				t.Fatal("expected a profile projection")
			}
			if len(gotFields) != len(tt.expectedFields) {
				t.Fatalf("expected %d fields, got %v", len(tt.expectedFields), gotFields)
			}
			for key, want := range tt.expectedFields {
				got, ok := gotFields[key]
				if !ok {
					t.Errorf("expected field %s to be forwarded", key)
					continue
				}
				if got != want {
					t.Errorf("field %s: expected %v, got %v", key, want, got)
				}
			}
		})
	}
}

func TestProfileServiceImpl_UpdateProfile_UnknownUser(t *testing.T) {
	svc := createProfileServiceForTest(t, nil)

	_, _, err := svc.UpdateProfile(createTestContext(t), "missing", map[string]any{"first_name": "Asha"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileServiceImpl_UpdateLanguage(t *testing.T) {
	var gotID, gotLang string
	userRepo := mocks.NewMockUserRepository()
	userRepo.UpdateLanguageFunc = func(ctx context.Context, id, language string) error {
		gotID, gotLang = id, language
		return nil
	}

	svc := createProfileServiceForTest(t, userRepo)
	ctx := createTestContext(t)

	if err := svc.UpdateLanguage(ctx, "user-123", ""); !errors.Is(err, domain.ErrLanguageRequired) {
		t.Errorf("expected ErrLanguageRequired, got %v", err)
	}
	if err := svc.UpdateLanguage(ctx, "user-123", "mr"); err != nil {
		t.Fatalf("UpdateLanguage failed: %v", err)
	}
	if gotID != "user-123" || gotLang != "mr" {
		t.Errorf("expected user-123/mr, got %s/%s", gotID, gotLang)
	}
}
