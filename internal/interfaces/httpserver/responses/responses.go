// Package responses maps domain errors onto the HTTP error envelope.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-server/internal/infrastructure/logger"
	"crm-server/internal/utils/platformerrors"
)

// ErrorDetail is the error payload returned to clients.
type ErrorDetail struct {
	Code    string   `json:"code,omitempty"`
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// ErrorResponse wraps an ErrorDetail.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// HandleError logs the error and writes the mapped HTTP response. Internal
// detail never reaches the client; 5xx responses carry only the fallback
// message.
func HandleError(c *gin.Context, err error, fallback string) {
	log := logger.GetLogger()

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: &ErrorDetail{Type: errorTypeToString(platformerrors.ErrorTypeInternal), Message: fallback},
		})
		return
	}

	platformerrors.LogError(log, platformErr)

	status := platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
	message := platformErr.Message
	if status >= http.StatusInternalServerError {
		message = fallback
	}

	detail := &ErrorDetail{
		Code:    platformErr.UUID,
		Type:    errorTypeToString(platformErr.Type),
		Message: message,
	}
	if fields, ok := platformErr.Context["fields"].([]string); ok {
		detail.Fields = fields
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: detail})
}

// HandleNewError creates and writes a new typed error response.
// Use this for route-level errors like validation or authorization failures.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, code string) {
	status := platformerrors.ErrorTypeToHTTPStatus(errorType)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: &ErrorDetail{
			Code:    code,
			Type:    errorTypeToString(errorType),
			Message: message,
		},
	})
}

// errorTypeToString converts an ErrorType to a snake_case string for API responses.
func errorTypeToString(t platformerrors.ErrorType) string {
	switch t {
	case platformerrors.ErrorTypeNotFound:
		return "not_found_error"
	case platformerrors.ErrorTypeValidation:
		return "validation_error"
	case platformerrors.ErrorTypeConflict:
		return "conflict_error"
	case platformerrors.ErrorTypeUnauthorized:
		return "unauthorized_error"
	case platformerrors.ErrorTypeForbidden:
		return "forbidden_error"
	case platformerrors.ErrorTypeExternal:
		return "external_error"
	case platformerrors.ErrorTypeDatabaseError, platformerrors.ErrorTypeInternal:
		fallthrough
	default:
		return "internal_error"
	}
}
