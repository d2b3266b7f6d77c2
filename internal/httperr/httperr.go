package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Status maps an error kind to its HTTP status.
func Status(kind domain.ErrorKind) int {
	switch {
	case kind.IsValidation():
		return http.StatusBadRequest
	case kind == domain.NotFound:
		return http.StatusNotFound
	case kind == domain.Unauthorized:
		return http.StatusUnauthorized
	case kind == domain.SlotTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as JSON. Storage details never reach the caller.
func FromError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := Status(kind)

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Internal(c, string(domain.StorageFailure), "internal error, please retry")
		return
	}

	Write(c, status, string(kind), message(err))
}

// Abort writes err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}

func message(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
