package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/you/phoneauthsvc/internal/http/handlers"
	"github.com/you/phoneauthsvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, authmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/send-otp", ah.SendOTP)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.GET("/verify-session", ah.VerifySession)
	auth.POST("/logout", ah.Logout)

	users := r.Group("/users").Use(authmw.RequireSession())
	users.GET("/profile", uh.Profile)
	users.PUT("/profile", uh.UpdateProfile)
	users.PUT("/language", uh.UpdateLanguage)

	return r
}
