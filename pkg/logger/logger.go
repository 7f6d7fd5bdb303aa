// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much the service logs.
type Options struct {
	Level      string // debug, info, warn, error
	FileName   string // rotated JSON log file; empty disables the file core
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Env        string // "development" adds a console core
}

// Init builds the logger, installs it as the zap global and returns it.
func Init(opts Options) (*zap.Logger, error) {
	if opts.Level == "" {
		opts.Level = "info"
	}
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = 100
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = 5
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = 30
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
	}

	var cores []zapcore.Core
	if opts.FileName != "" {
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.FileName,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		})
		cores = append(cores, zapcore.NewCore(jsonEncoder(), writer, level))
	}
	if opts.Env == "development" || opts.FileName == "" {
		console := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(console, zapcore.Lock(os.Stdout), level))
	}

	lg := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(lg)
	return lg, nil
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// EchoLogger logs every request through zap.
func EchoLogger(lg *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			fields := []zap.Field{
				zap.Int("status", c.Response().Status),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("query", req.URL.RawQuery),
				zap.String("ip", c.RealIP()),
				zap.Duration("cost", time.Since(start)),
			}
			if err != nil {
				lg.Warn("http request", append(fields, zap.Error(err))...)
				return nil
			}
			lg.Info("http request", fields...)
			return nil
		}
	}
}
