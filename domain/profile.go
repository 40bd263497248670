package domain

import (
	"strings"
	"time"
)

// Profile is the caller-facing projection over a user's nullable profile
// attributes. It is recomputed from the user record on every fetch and never
// persisted separately.
type Profile struct {
	Prefix         *string `json:"prefix"`
	FirstName      *string `json:"first_name"`
	MiddleName     *string `json:"middle_name"`
	LastName       *string `json:"last_name"`
	DateOfBirth    *string `json:"date_of_birth"`
	Email          *string `json:"email"`
	AddressLine    *string `json:"address_line"`
	State          *string `json:"state"`
	District       *string `json:"district"`
	Taluka         *string `json:"taluka"`
	Role           *string `json:"role"`
	PoliticalParty *string `json:"political_party"`
	InstagramURL   *string `json:"instagram_url"`
	FacebookURL    *string `json:"facebook_url"`
	TwitterURL     *string `json:"twitter_url"`
	AvatarURL      *string `json:"avatar_url"`
}

// NewProfile projects a user record into its profile view, field by field.
func NewProfile(u *User) *Profile {
	if u == nil {
		return nil
	}
	return &Profile{
		Prefix:         u.Prefix,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		DateOfBirth:    u.DateOfBirth,
		Email:          u.Email,
		AddressLine:    u.AddressLine,
		State:          u.State,
		District:       u.District,
		Taluka:         u.Taluka,
		Role:           u.Role,
		PoliticalParty: u.PoliticalParty,
		InstagramURL:   u.InstagramURL,
		FacebookURL:    u.FacebookURL,
		TwitterURL:     u.TwitterURL,
		AvatarURL:      u.AvatarURL,
	}
}

// Complete reports whether onboarding has finished: first name, last name,
// date of birth, email, state, district, taluka and role must all be set.
// It only drives client routing; partial profiles are always persisted.
func (p *Profile) Complete() bool {
	if p == nil {
		return false
	}
	required := []*string{
		p.FirstName,
		p.LastName,
		p.DateOfBirth,
		p.Email,
		p.State,
		p.District,
		p.Taluka,
		p.Role,
	}
	for _, f := range required {
		if f == nil || strings.TrimSpace(*f) == "" {
			return false
		}
	}
	return true
}

// CanonicalDate reduces a date input to its YYYY-MM-DD calendar form. Any
// trailing time-of-day component ("T..." or " ...") is cut off before
// validation so that timestamps coming from richer temporal representations
// never shift the day.
func CanonicalDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}
