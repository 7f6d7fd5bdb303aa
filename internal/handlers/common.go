package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-midea/socialnet/internal/middleware"
	"github.com/anonto42/nano-midea/socialnet/internal/notify"
	"github.com/anonto42/nano-midea/socialnet/pkg/errorx"
)

// EventPublisher hands a domain event to the event bus
type EventPublisher interface {
	Publish(ctx context.Context, authorID uuid.UUID, ev notify.Event) error
}

func accountIDFromContext(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(middleware.AccountIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// httpError maps an engine or repository error to an HTTP error without
// leaking storage details.
func httpError(err error) error {
	var codeErr *errorx.CodeError
	if !errors.As(err, &codeErr) {
		return echo.NewHTTPError(http.StatusInternalServerError, errorx.ErrServerBusy.Msg)
	}
	switch codeErr.Code {
	case errorx.CodeInvalidParam:
		return echo.NewHTTPError(http.StatusBadRequest, codeErr.Msg)
	case errorx.CodeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, codeErr.Msg)
	case errorx.CodeUnauthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, codeErr.Msg)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, errorx.ErrServerBusy.Msg)
	}
}
