package services

import (
	"context"

	"github.com/you/phoneauthsvc/domain"
	"go.uber.org/zap"
)

// profileColumns is the set of columns a sparse profile update may touch.
// Keys the caller sends outside this set are ignored.
var profileColumns = map[string]bool{
	"prefix":          true,
	"first_name":      true,
	"middle_name":     true,
	"last_name":       true,
	"date_of_birth":   true,
	"email":           true,
	"address_line":    true,
	"state":           true,
	"district":        true,
	"taluka":          true,
	"role":            true,
	"political_party": true,
	"instagram_url":   true,
	"facebook_url":    true,
	"twitter_url":     true,
	"avatar_url":      true,
}

// ProfileServiceImpl implements domain.ProfileService
type ProfileServiceImpl struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo domain.UserRepository, logger *zap.Logger) domain.ProfileService {
	return &ProfileServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile implements domain.ProfileService
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, domain.NewProfile(user), nil
}

// UpdateProfile implements domain.ProfileService. fields is the sparse
// payload: absent keys leave columns untouched, explicit nulls clear them.
// Completeness never gates the write; partial profiles persist as-is.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*domain.User, *domain.Profile, error) {
	updates := make(map[string]any, len(fields))
	for key, val := range fields {
		if !profileColumns[key] {
			continue
		}
		switch val.(type) {
		case nil, string:
			updates[key] = val
		default:
			return nil, nil, domain.ErrInvalidField
		}
	}

	user, err := s.userRepo.UpdateFields(ctx, userID, updates)
	if err != nil {
		return nil, nil, err
	}

	profile := domain.NewProfile(user)
	s.logger.Info("profile updated",
		zap.String("user_id", userID),
		zap.Int("fields", len(updates)),
		zap.Bool("complete", profile.Complete()))
	return user, profile, nil
}

// UpdateLanguage implements domain.ProfileService
func (s *ProfileServiceImpl) UpdateLanguage(ctx context.Context, userID, language string) error {
	if language == "" {
		return domain.ErrLanguageRequired
	}
	return s.userRepo.UpdateLanguage(ctx, userID, language)
}
