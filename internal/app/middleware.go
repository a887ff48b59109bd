package app

import (
	"github.com/ycode/builder-backend/internal/middleware"
	"github.com/ycode/builder-backend/internal/pkg/logger"
)

type Middleware struct {
	Session *middleware.SessionMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Session: middleware.NewSessionMiddleware(log, cfg.JWTSecretKey),
	}
}
