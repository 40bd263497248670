package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/phoneauthsvc/domain"
	"github.com/you/phoneauthsvc/internal/http/middleware"
	"go.uber.org/zap"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	logger  *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		logger:  logger,
	}
}

// SendOTPRequest represents an OTP issuance request
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// VerifyOTPRequest represents an OTP verification request
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// SendOTP handles POST /auth/send-otp
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PhoneNumber) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	dispatch, err := h.authSvc.SendOTP(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrPhoneRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
			return
		}
		h.logger.Error("send otp failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	resp := gin.H{
		"success":        true,
		"message":        "OTP sent successfully via WhatsApp",
		"deliveryMethod": "whatsapp",
	}
	if dispatch.TestMode {
		resp["testMode"] = true
		resp["otp"] = dispatch.Code
	}
	if !dispatch.Delivered {
		resp["warning"] = "WhatsApp delivery may be delayed"
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP handles POST /auth/verify-otp
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.PhoneNumber) == "" || strings.TrimSpace(req.OTP) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number and OTP are required"})
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number and OTP are required"})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		default:
			h.logger.Error("verify otp failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    result.User,
		"token":   result.Token,
		"session": result.Session,
	})
}

// VerifySession handles GET /auth/verify-session
func (h *AuthHandlers) VerifySession(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	session, err := h.authSvc.VerifySession(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrTokenRequired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		h.logger.Error("verify session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// Logout handles POST /auth/logout. Always succeeds, with or without a
// token, known or not.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		h.logger.Warn("logout cleanup failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
