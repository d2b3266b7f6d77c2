package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httperr"
)

// bindJSON decodes the request body into dst. A mistyped duration is a
// duration error; any other undecodable body is invalid_request.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "duration" {
		httperr.FromError(c, domain.WrapError(domain.InvalidDuration, "duration must be one of the allowed lengths", err))
		return false
	}

	httperr.BadRequest(c, "invalid_request", "request body must be a JSON object")
	return false
}
