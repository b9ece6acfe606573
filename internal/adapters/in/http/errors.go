package http

import (
	"net/http"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// kindUnauthenticated marks a request without a usable gateway identity.
const kindUnauthenticated = "unauthenticated"

// Error is the body of every failed API response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindUnauthorized:
		return http.StatusForbidden
	case errs.KindInvalidTransition, errs.KindConflictDetected:
		return http.StatusConflict
	case errs.KindValidationFailed:
		return http.StatusUnprocessableEntity
	case errs.KindAllocationFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides storage and driver details from everyone but admins.
func publicMessage(kind errs.Kind, err error, actor kernel.Actor) string {
	if actor.IsAdmin() {
		return err.Error()
	}
	switch kind {
	case errs.KindInternal:
		return "internal server error"
	case errs.KindAllocationFailed:
		return "document number could not be allocated, retry later"
	case errs.KindConflictDetected:
		return "the record was changed by another request, reload and retry"
	default:
		return err.Error()
	}
}

func writeError(c echo.Context, status int, kind, message string) error {
	return c.JSON(status, Error{Code: status, Kind: kind, Message: message})
}

// fail maps err to its response. Internal failures are logged with the
// request id.
func (s *Server) fail(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)
	actor, _ := actorFrom(c)

	if kind == errs.KindInternal || kind == errs.KindAllocationFailed {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"kind", kind.String(),
			"error", err,
		)
	}

	return writeError(c, status, kind.String(), publicMessage(kind, err, actor))
}
