// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/datashift/internal/convert"
	"github.com/pdiddy/datashift/pkg/types"
)

// APIResponse is the envelope for every API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, apiErr APIError) {
	c.AbortWithStatusJSON(status, APIResponse{Success: false, Error: &apiErr})
}

// MapError translates conversion errors to HTTP status codes and error codes.
func MapError(err error) (status int, apiErr APIError) {
	var ce *convert.Error
	if errors.As(err, &ce) {
		apiErr.Stage = string(ce.Stage)
	}
	apiErr.Message = err.Error()

	switch {
	case errors.Is(err, types.ErrUnsupportedFormat):
		apiErr.Code = "UNSUPPORTED_FORMAT"
		return http.StatusBadRequest, apiErr
	case errors.Is(err, types.ErrUnsupportedVersion):
		apiErr.Code = "UNSUPPORTED_VERSION"
		return http.StatusBadRequest, apiErr
	case errors.Is(err, types.ErrParse):
		apiErr.Code = "PARSE_ERROR"
		return http.StatusUnprocessableEntity, apiErr
	case errors.Is(err, types.ErrInvalidInputShape):
		apiErr.Code = "INVALID_INPUT_SHAPE"
		return http.StatusUnprocessableEntity, apiErr
	default:
		apiErr.Code = "INTERNAL_ERROR"
		apiErr.Message = "an internal error occurred"
		return http.StatusInternalServerError, apiErr
	}
}

// handleError maps err and sends the matching error response. Internal
// errors are logged with the request id.
func handleError(c *gin.Context, log logrus.FieldLogger, err error) {
	status, apiErr := MapError(err)
	if status >= http.StatusInternalServerError {
		requestLogger(c, log).WithError(err).Error("internal error")
	}
	RespondError(c, status, apiErr)
}
