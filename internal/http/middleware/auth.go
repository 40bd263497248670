package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/phoneauthsvc/domain"
)

// AuthMW resolves bearer tokens against the session store for protected
// routes.
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// RequireSession returns middleware that rejects requests without a live
// session. Expired and unknown tokens get the same response.
func (mw *AuthMW) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			c.Abort()
			return
		}

		session, err := mw.authSvc.VerifySession(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("session_token", token)
		c.Next()
	}
}

// BearerToken extracts the bearer credential from the Authorization header.
// A header without the "Bearer " prefix is treated as the bare token.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
