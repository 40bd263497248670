package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/you/phoneauthsvc/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID             string     `gorm:"primaryKey;size:36"`
	PhoneNumber    string     `gorm:"uniqueIndex;size:15;not null"`
	Language       *string    `gorm:"size:10"`
	Prefix         *string    `gorm:"size:10"`
	FirstName      *string    `gorm:"size:120"`
	MiddleName     *string    `gorm:"size:120"`
	LastName       *string    `gorm:"size:120"`
	DateOfBirth    *time.Time `gorm:"type:date"`
	Email          *string    `gorm:"size:255"`
	AddressLine    *string
	State          *string `gorm:"size:120"`
	District       *string `gorm:"size:120"`
	Taluka         *string `gorm:"size:120"`
	Role           *string `gorm:"size:60"`
	PoliticalParty *string `gorm:"size:120"`
	InstagramURL   *string
	FacebookURL    *string
	TwitterURL     *string
	AvatarURL      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if dbUser.ID == "" {
		dbUser.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	*user = *r.dbToDomain(dbUser)
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByPhoneForms implements domain.UserRepository. The canonical form is
// tried first; the raw input is a compatibility fallback for rows created
// under a different formatting of the same number.
func (r *UserRepositoryImpl) FindByPhoneForms(ctx context.Context, normalized, raw string) (*domain.User, error) {
	user, err := r.findOne(ctx, "phone_number = ?", normalized)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if raw == "" || raw == normalized {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, "phone_number = ?", raw)
}

// GetOrCreateByPhone implements domain.UserRepository. New accounts are
// stored under the canonical number. A concurrent create losing the race on
// the unique index falls back to re-fetching the winner's row.
func (r *UserRepositoryImpl) GetOrCreateByPhone(ctx context.Context, normalized, raw string) (*domain.User, error) {
	user, err := r.FindByPhoneForms(ctx, normalized, raw)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user = &domain.User{PhoneNumber: normalized}
	if err := r.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByPhoneForms(ctx, normalized, raw)
		}
		return nil, err
	}
	return user, nil
}

// UpdateFields implements domain.UserRepository. fields maps column names to
// new values; a nil value clears the column. The refreshed record is
// returned so callers always see the post-update projection.
func (r *UserRepositoryImpl) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	if len(fields) > 0 {
		updates := make(map[string]any, len(fields)+1)
		for col, val := range fields {
			if col == "date_of_birth" {
				converted, err := toDBDate(val)
				if err != nil {
					return nil, err
				}
				val = converted
			}
			updates[col] = val
		}
		updates["updated_at"] = time.Now()

		res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrUserNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// UpdateLanguage implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateLanguage(ctx context.Context, id, language string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Updates(map[string]any{"language": language, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// toDBDate converts an incoming date_of_birth value to the database
// representation. Accepts nil (clear) or a YYYY-MM-DD string.
func toDBDate(val any) (*time.Time, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case string:
		canonical, err := domain.CanonicalDate(v)
		if err != nil {
			return nil, err
		}
		t, err := time.ParseInLocation("2006-01-02", canonical, time.UTC)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		return &t, nil
	default:
		return nil, domain.ErrInvalidField
	}
}

// formatDBDate renders a stored date using its own calendar fields. No UTC
// conversion happens here: whatever day the database handed back is the day
// the caller sees, so the value can never shift across timezones.
func formatDBDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	var dob *time.Time
	if user.DateOfBirth != nil {
		if converted, err := toDBDate(*user.DateOfBirth); err == nil {
			dob = converted
		}
	}
	return &DBUser{
		ID:             user.ID,
		PhoneNumber:    user.PhoneNumber,
		Language:       user.Language,
		Prefix:         user.Prefix,
		FirstName:      user.FirstName,
		MiddleName:     user.MiddleName,
		LastName:       user.LastName,
		DateOfBirth:    dob,
		Email:          user.Email,
		AddressLine:    user.AddressLine,
		State:          user.State,
		District:       user.District,
		Taluka:         user.Taluka,
		Role:           user.Role,
		PoliticalParty: user.PoliticalParty,
		InstagramURL:   user.InstagramURL,
		FacebookURL:    user.FacebookURL,
		TwitterURL:     user.TwitterURL,
		AvatarURL:      user.AvatarURL,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:             dbUser.ID,
		PhoneNumber:    dbUser.PhoneNumber,
		Language:       dbUser.Language,
		Prefix:         dbUser.Prefix,
		FirstName:      dbUser.FirstName,
		MiddleName:     dbUser.MiddleName,
		LastName:       dbUser.LastName,
		DateOfBirth:    formatDBDate(dbUser.DateOfBirth),
		Email:          dbUser.Email,
		AddressLine:    dbUser.AddressLine,
		State:          dbUser.State,
		District:       dbUser.District,
		Taluka:         dbUser.Taluka,
		Role:           dbUser.Role,
		PoliticalParty: dbUser.PoliticalParty,
		InstagramURL:   dbUser.InstagramURL,
		FacebookURL:    dbUser.FacebookURL,
		TwitterURL:     dbUser.TwitterURL,
		AvatarURL:      dbUser.AvatarURL,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}
