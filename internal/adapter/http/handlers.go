package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/snehaa0-0/Loan-portfolio-management/pkg/apperr"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// writeErr maps the error taxonomy to HTTP responses: business-rule
// violations → 422 with field details, missing entities → 404, anything
// else → 500 (storage errors are logged, never exposed).
func writeErr(c echo.Context, err error) error {
	if ve, ok := apperr.AsValidation(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	}
	if apperr.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
