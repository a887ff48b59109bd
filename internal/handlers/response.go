package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ycode/builder-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps the service sentinels onto HTTP statuses; the
// default is a 400 because the editor frontend treats unexpected write
// failures as retryable.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEntityNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrNothingToUndo), errors.Is(err, services.ErrNothingToRedo):
		RespondError(c, http.StatusConflict, "history_exhausted", err)
	case errors.Is(err, services.ErrMissingRequirement):
		RespondError(c, http.StatusConflict, "missing_requirement", err)
	case errors.Is(err, services.ErrHashMismatch):
		RespondError(c, http.StatusConflict, "hash_mismatch", err)
	case errors.Is(err, services.ErrEntityNotRecordable):
		RespondError(c, http.StatusBadRequest, "not_recordable", err)
	default:
		RespondError(c, http.StatusBadRequest, "request_failed", err)
	}
}
