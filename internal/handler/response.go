package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"imgtext/internal/domain"
	"imgtext/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusBadRequest, "MISSING_API_KEY", "api key is required"
	case errors.Is(err, domain.ErrMissingTarget):
		return http.StatusBadRequest, "MISSING_WEBSITE_URL", "website url is required"
	case errors.Is(err, domain.ErrInvalidTarget):
		return http.StatusBadRequest, "INVALID_WEBSITE_URL", "website url must be an absolute http or https url"
	case errors.Is(err, domain.ErrMissingImageData):
		return http.StatusBadRequest, "MISSING_IMAGE_DATA", "image data is required"
	case errors.Is(err, domain.ErrInvalidImageData):
		return http.StatusBadRequest, "INVALID_IMAGE_DATA", "image data must be base64 or a base64 data uri"
	case errors.Is(err, domain.ErrUnsupportedExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrEmptyExport):
		return http.StatusBadRequest, "EMPTY_EXPORT", "no results to export"
	case errors.Is(err, domain.ErrNoImagesFound):
		return http.StatusUnprocessableEntity, "NO_IMAGES_FOUND", "no images found on the page"
	case errors.Is(err, domain.ErrPageFetchFailed):
		return http.StatusBadGateway, "PAGE_FETCH_FAILED", "failed to fetch the website"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED", "recognition provider rate limit exceeded; retry later"
	case errors.Is(err, domain.ErrRecognitionFailed):
		return http.StatusBadGateway, "RECOGNITION_FAILED", "an error occurred while analyzing the image"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	requestID, _ := c.Get(middleware.ContextKeyRequestID)
	entry := log.WithFields(log.Fields{"request_id": requestID, "code": code})
	if status >= 500 {
		entry.Errorf("internal error: %v", err)
	} else if status >= 429 {
		entry.Warnf("upstream error: %v", err)
	}
	RespondError(c, status, code, msg)
}
