package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service error kinds. Every component operation surfaces exactly one of these;
// handlers translate them into a stable kind-to-status mapping.
const (
	KindNotFound    = "not_found"
	KindBadRequest  = "bad_request"
	KindForbidden   = "forbidden"
	KindConflict    = "conflict"
	KindUnavailable = "unavailable"
)

// ServiceError carries an error kind and a human-readable message. No internal
// detail or provider secret ever rides along.
type ServiceError struct {
	Kind    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Kind + ": " + e.Message
}

func NewNotFound(msg string) error    { return &ServiceError{Kind: KindNotFound, Message: msg} }
func NewBadRequest(msg string) error  { return &ServiceError{Kind: KindBadRequest, Message: msg} }
func NewForbidden(msg string) error   { return &ServiceError{Kind: KindForbidden, Message: msg} }
func NewConflict(msg string) error    { return &ServiceError{Kind: KindConflict, Message: msg} }
func NewUnavailable(msg string) error { return &ServiceError{Kind: KindUnavailable, Message: msg} }

// AsServiceError unwraps err into a ServiceError if one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func statusForKind(kind string) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the uniform error envelope for a service error. Unknown
// errors are logged and masked as a generic internal failure.
func RespondError(c *gin.Context, err error) {
	if se, ok := AsServiceError(err); ok {
		c.JSON(statusForKind(se.Kind), gin.H{"success": false, "message": se.Message})
		return
	}
	GetLogger().Error("unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong. Please try again later."})
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
