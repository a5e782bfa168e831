package claim

import (
	"net/http"

	"hotncold-server/pkg/db/pagination"
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
	r.POST("/locations/:location_id/claim", m.RequireUser(), h.Claim)

	me := r.Group("/users/me", m.RequireUser())
	me.GET("/rewards", h.Wallet)
	me.GET("/stats", h.Stats)
}

// Claim validates GPS proximity, the once-only rule, and rate limits, and
// grants the location's configured reward on success.
func (h *Handler) Claim(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errutil.ValidationFailed(err.Error()))
		return
	}

	result, err := h.svc.Claim(c.Request.Context(), identity.CurrentUser(c), c.Param("location_id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Wallet returns the authenticated user's reward wallet.
func (h *Handler) Wallet(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		_ = c.Error(errutil.ValidationFailed(err.Error()))
		return
	}

	summary, err := h.svc.Wallet(c.Request.Context(), identity.CurrentUser(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Stats returns claim statistics for the current user.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), identity.CurrentUser(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
