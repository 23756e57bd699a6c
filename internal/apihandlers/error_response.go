package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"niche/internal/models"
	"niche/internal/store"
	"niche/pkg/categorizer"
)

// APIError defines standard error response
// Example: { "error": { "code": "bad_request", "message": "Invalid ID" } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, "not_found", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

func Conflict(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusConflict, "conflict", msg)
}

func Unavailable(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusServiceUnavailable, "unavailable", msg)
}

// ServiceError maps a service or store error onto the matching response.
// Unrecognized errors are logged and reported as internal errors.
func ServiceError(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		BadRequest(ctx, err.Error())
	case errors.Is(err, store.ErrNotFound):
		NotFound(ctx, err.Error())
	case errors.Is(err, store.ErrDuplicate), errors.Is(err, store.ErrConflict):
		Conflict(ctx, err.Error())
	case errors.Is(err, models.ErrFeatureDisabled):
		Unavailable(ctx, err.Error())
	case errors.Is(err, categorizer.ErrMalformedCatalog):
		Internal(ctx, err.Error())
	default:
		log.WithError(err).Errorf("%s failed", op)
		Internal(ctx, op+": "+err.Error())
	}
}
