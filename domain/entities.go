package domain

import "time"

// User is the identity record keyed by canonical phone number. All profile
// attributes are nullable; a user starts out as nothing but a phone number
// and fills the rest in during onboarding.
type User struct {
	ID             string    `json:"id"`
	PhoneNumber    string    `json:"phone_number"`
	Language       *string   `json:"language"`
	Prefix         *string   `json:"prefix"`
	FirstName      *string   `json:"first_name"`
	MiddleName     *string   `json:"middle_name"`
	LastName       *string   `json:"last_name"`
	DateOfBirth    *string   `json:"date_of_birth"`
	Email          *string   `json:"email"`
	AddressLine    *string   `json:"address_line"`
	State          *string   `json:"state"`
	District       *string   `json:"district"`
	Taluka         *string   `json:"taluka"`
	Role           *string   `json:"role"`
	PoliticalParty *string   `json:"political_party"`
	InstagramURL   *string   `json:"instagram_url"`
	FacebookURL    *string   `json:"facebook_url"`
	TwitterURL     *string   `json:"twitter_url"`
	AvatarURL      *string   `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Session is a bearer grant. A token is valid iff a session row with that
// token exists and ExpiresAt is in the future; expired sessions are treated
// exactly like absent ones.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// OTPEntry is the ephemeral verification credential stored per phone key.
// The code itself is never stored; only its bcrypt hash.
type OTPEntry struct {
	CodeHash  []byte    `json:"code_hash"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry's TTL has elapsed at the given instant.
func (e *OTPEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// AuthResult is the outcome of a successful OTP verification.
type AuthResult struct {
	User    *User    `json:"user"`
	Token   string   `json:"token"`
	Session *Session `json:"session"`
}

// OTPDispatch describes how a send-otp request was satisfied. Delivered is
// false when the delivery channel failed; the request still succeeds in that
// case and the caller may surface a warning.
type OTPDispatch struct {
	TestMode  bool
	Code      string
	Delivered bool
}
