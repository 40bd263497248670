package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/phoneauthsvc/domain"
	"go.uber.org/zap"
)

// UserHandlers handles profile HTTP requests for the authenticated user
type UserHandlers struct {
	profileSvc domain.ProfileService
	logger     *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(profileSvc domain.ProfileService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		profileSvc: profileSvc,
		logger:     logger,
	}
}

// UpdateLanguageRequest represents a language preference change
type UpdateLanguageRequest struct {
	Language string `json:"language"`
}

// Profile handles GET /users/profile
func (h *UserHandlers) Profile(c *gin.Context) {
	user, profile, err := h.profileSvc.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"user":             user,
		"profile_complete": profile.Complete(),
	})
}

// UpdateProfile handles PUT /users/profile. The body is a sparse field set:
// keys that are absent stay untouched, keys sent as null clear the column.
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, profile, err := h.profileSvc.UpdateProfile(c.Request.Context(), c.GetString("user_id"), fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data"})
		default:
			h.logger.Error("update profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"user":             user,
		"profile_complete": profile.Complete(),
	})
}

// UpdateLanguage handles PUT /users/language
func (h *UserHandlers) UpdateLanguage(c *gin.Context) {
	var req UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Language) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Language is required"})
		return
	}

	if err := h.profileSvc.UpdateLanguage(c.Request.Context(), c.GetString("user_id"), req.Language); err != nil {
		switch {
		case errors.Is(err, domain.ErrLanguageRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Language is required"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("update language failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update language"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Language updated successfully"})
}
