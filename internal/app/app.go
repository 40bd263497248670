package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/phoneauthsvc/domain"
	"github.com/you/phoneauthsvc/internal/config"
	httpx "github.com/you/phoneauthsvc/internal/http"
	"github.com/you/phoneauthsvc/internal/http/handlers"
	"github.com/you/phoneauthsvc/internal/http/middleware"
	"github.com/you/phoneauthsvc/internal/infrastructure/database"
	"github.com/you/phoneauthsvc/internal/infrastructure/notifications"
	"github.com/you/phoneauthsvc/internal/infrastructure/otpstore"
	"github.com/you/phoneauthsvc/internal/infrastructure/repositories"
	"github.com/you/phoneauthsvc/internal/services"
	"go.uber.org/zap"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	// OTP entries live in Redis when one is configured; a single-node
	// deployment without Redis falls back to the in-process store.
	var store domain.OTPStore
	if cfg.RedisAddr != "" {
		rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(context.Background()); err != nil {
			return err
		}
		store = otpstore.NewRedisStore(rdb.Client)
	} else {
		logger.Warn("redis not configured, using in-memory otp store")
		store = otpstore.NewMemoryStore()
	}

	notifier := notifications.NewTwilioService(
		cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, cfg.TwilioCountryCode, logger)

	userRepo := repositories.NewUserRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(gdb)

	otpSvc := services.NewOTPService(store, services.OTPConfig{
		Length: cfg.OTPLength,
		TTL:    cfg.OTPTTL,
	}, logger)
	authSvc := services.NewAuthService(userRepo, sessionRepo, otpSvc, notifier, cfg.SessionTTL, logger)
	profileSvc := services.NewProfileService(userRepo, logger)

	ah := handlers.NewAuthHandlers(authSvc, logger)
	uh := handlers.NewUserHandlers(profileSvc, logger)
	authmw := middleware.NewAuthMW(authSvc)

	r := httpx.BuildRouter(ah, uh, authmw)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
