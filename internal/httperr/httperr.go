package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// StatusOf maps a business error kind to its HTTP status.
func StatusOf(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindNoSubscription, KindSubscriptionExpired, KindQuotaExceeded, KindForbidden:
		return http.StatusForbidden
	case KindValidation, KindOutOfHours, KindConflict, KindInvalidState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteBusiness writes be with its mapped status. message may be empty,
// in which case the code is used.
func WriteBusiness(c *gin.Context, be BusinessError, message string) {
	if message == "" {
		message = be.Code
	}
	c.JSON(StatusOf(be.Kind), HTTPError{
		Code:    be.Code,
		Message: message,
		Details: be.Details,
	})
}
