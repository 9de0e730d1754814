package handler

import (
	"errors"
	"net/http"

	"github.com/chorok-lab/carbon-exchange/internal/identity"
	"github.com/chorok-lab/carbon-exchange/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeErr maps lifecycle and identity errors onto HTTP statuses. Anything
// unrecognized is a 500 with the message withheld.
func writeErr(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_error", ve.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "resource not found"))
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "listing is no longer available"))
	case errors.Is(err, service.ErrUpstream), errors.Is(err, identity.ErrUnavailable):
		return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "upstream unavailable"))
	case errors.Is(err, identity.ErrEmailTaken):
		return c.JSON(http.StatusConflict, NewErrorResponse("email_taken", "email already registered"))
	case errors.Is(err, identity.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("invalid_credentials", "invalid email or password"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal error"))
	}
}
