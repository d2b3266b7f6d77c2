package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/showroom-scheduler/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GET /api/me echoes the verified caller.
func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.FromError(c, domain.NewError(domain.Unauthorized, "authentication required"))
		return
	}

	httpresp.OK(c, gin.H{"user": id})
}
