package config

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/pkg/logger"
)

// SetupMiddleware installs the global middleware: zap request logging,
// panic recovery and CORS.
func SetupMiddleware(e *echo.Echo, log *zap.Logger) {
	e.Use(logger.EchoLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
}
