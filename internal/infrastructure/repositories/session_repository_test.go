package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/phoneauthsvc/domain"
)

func TestSessionRepositoryImpl_CreateDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := &domain.Session{
		UserID:    "user-1",
		Token:     "token-abc",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.ID == "" {
		t.Error("expected an ID to be assigned on create")
	}
	if session.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be assigned on create")
	}
}

func TestSessionRepositoryImpl_FindByToken(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		expiresAt     time.Time
		lookupToken   string
		expectedError error
	}{
		{
			name:        "live session resolves",
			token:       "live-token",
			expiresAt:   time.Now().Add(720 * time.Hour),
			lookupToken: "live-token",
		},
		{
			name:          "expired session is treated as absent",
			token:         "expired-token",
			expiresAt:     time.Now().Add(-time.Minute),
			lookupToken:   "expired-token",
			expectedError: domain.ErrSessionNotFound,
		},
		{
			name:          "unknown token",
			token:         "some-token",
			expiresAt:     time.Now().Add(time.Hour),
			lookupToken:   "other-token",
			expectedError: domain.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewSessionRepository(db)
			ctx := context.Background()

			seed := &domain.Session{UserID: "user-1", Token: tt.token, ExpiresAt: tt.expiresAt}
			if err := repo.Create(ctx, seed); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			session, err := repo.FindByToken(ctx, tt.lookupToken)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindByToken failed: %v", err)
			}
			if session.UserID != "user-1" {
				t.Errorf("expected user user-1, got %s", session.UserID)
			}
			if session.Token != tt.token {
				t.Errorf("expected token %s, got %s", tt.token, session.Token)
			}
		})
	}
}

func TestSessionRepositoryImpl_DeleteByToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := &domain.Session{UserID: "user-1", Token: "token-abc", ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.DeleteByToken(ctx, "token-abc"); err != nil {
		t.Fatalf("DeleteByToken failed: %v", err)
	}
	if _, err := repo.FindByToken(ctx, "token-abc"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}

	// Deleting an unknown token is a successful no-op.
	if err := repo.DeleteByToken(ctx, "never-existed"); err != nil {
		t.Fatalf("DeleteByToken of unknown token failed: %v", err)
	}
}
