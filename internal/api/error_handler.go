package api

import (
	"errors"
	"net/http"

	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/gin-gonic/gin"
)

// APIError is an error the handler layer can map directly to a response.
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware turns errors attached to the gin context into the
// uniform error envelope.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// WrapError wraps an error as an APIError.
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}

// ServiceError maps a service layer error onto an HTTP status and writes the
// envelope. Validation failures are 400, missing records 404, role mismatch
// 403, state and capacity conflicts 409, anything else 500.
func ServiceError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		Error(c, http.StatusBadRequest, "invalid "+operation, err.Error())
	case errors.Is(err, workflow.ErrNotFound):
		Error(c, http.StatusNotFound, operation+" not found", err.Error())
	case errors.Is(err, workflow.ErrForbidden):
		Error(c, http.StatusForbidden, operation+" forbidden", err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		Error(c, http.StatusConflict, operation+" conflict", err.Error())
	case errors.Is(err, workflow.ErrCapacityExceeded):
		Error(c, http.StatusConflict, "capacity exceeded", err.Error())
	default:
		Error(c, http.StatusInternalServerError, "failed to "+operation, err.Error())
	}
}
