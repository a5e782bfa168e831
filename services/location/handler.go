package location

import (
	"net/http"

	"hotncold-server/pkg/errutil"
	"hotncold-server/services/identity"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func RegisterRoutes(r *gin.Engine, h *Handler, m *identity.Middleware) {
	mapGroup := r.Group("/map", m.RequireUser())
	mapGroup.GET("/locations", h.ListNearby)
}

// ListNearby returns active locations near the given coordinate, sorted by
// distance ascending.
func (h *Handler) ListNearby(c *gin.Context) {
	var q NearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(errutil.ValidationFailed(err.Error()))
		return
	}

	nearby, err := h.svc.Nearby(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, nearby)
}
