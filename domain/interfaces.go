package domain

import "context"

// UserRepository defines user data access operations. Phone lookups take
// both the normalized and the raw form of the number: accounts created under
// slightly different formats must keep resolving, so every phone-gated
// lookup tries the canonical key first and falls back to the raw one.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByPhoneForms(ctx context.Context, normalized, raw string) (*User, error)
	GetOrCreateByPhone(ctx context.Context, normalized, raw string) (*User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*User, error)
	UpdateLanguage(ctx context.Context, id, language string) error
}

// SessionRepository defines session data access operations. FindByToken only
// returns sessions whose expiry is in the future.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// OTPStore is the key-value backing for OTP entries, keyed by the canonical
// phone number. Put overwrites any prior entry for the key. Get reports
// ErrOTPNotFound for both absent and expired entries. Sweep removes expired
// entries where the backend does not evict them itself.
type OTPStore interface {
	Put(ctx context.Context, key string, entry *OTPEntry) error
	Get(ctx context.Context, key string) (*OTPEntry, error)
	Delete(ctx context.Context, key string) error
	Sweep(ctx context.Context) error
}

// OTPService owns the OTP lifecycle over an OTPStore.
type OTPService interface {
	Generate() (string, error)
	Store(ctx context.Context, key, code string) error
	Verify(ctx context.Context, key, candidate string) (bool, error)
	SweepExpired(ctx context.Context) error
}

// AuthService orchestrates the phone-OTP authentication flow.
type AuthService interface {
	SendOTP(ctx context.Context, phoneNumber string) (*OTPDispatch, error)
	VerifyOTP(ctx context.Context, phoneNumber, code string) (*AuthResult, error)
	VerifySession(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, token string) error
}

// ProfileService computes profile projections and applies sparse updates.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*User, *Profile, error)
	UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*User, *Profile, error)
	UpdateLanguage(ctx context.Context, userID, language string) error
}

// NotificationService is the out-of-scope delivery collaborator. Send
// delivers a code to a phone number and fails with a delivery error; its
// internal protocol is not this module's concern.
type NotificationService interface {
	Send(to, code string) error
}
