package http

import (
	"errors"
	"log/slog"
	"net/http"

	"printshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

// Identity trusts the gateway headers and stores the caller as a kernel.Actor.
// A missing or malformed identity ends the request with 401.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := parseActor(c.Request().Header)
			if err != nil {
				return writeError(c, http.StatusUnauthorized, kindUnauthenticated, err.Error())
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func parseActor(h http.Header) (kernel.Actor, error) {
	rawID, rawRole := h.Get(HeaderUserID), h.Get(HeaderUserRole)
	if rawID == "" || rawRole == "" {
		return kernel.Actor{}, errors.New("missing " + HeaderUserID + " or " + HeaderUserRole + " header")
	}

	id, idErr := kernel.ParseID(HeaderUserID, rawID)
	role, roleErr := kernel.ParseRole(rawRole)
	if err := errors.Join(idErr, roleErr); err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(id, role)
}

func actorFrom(c echo.Context) (kernel.Actor, bool) {
	actor, ok := c.Get(actorKey).(kernel.Actor)
	return actor, ok
}

// RequestID tags each request with a random id unless the caller sent one.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "http request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "http request", attrs...)
			return nil
		},
	})
}
