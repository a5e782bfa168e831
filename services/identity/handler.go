package identity

import (
	"net/http"

	"hotncold-server/pkg/errutil"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func RegisterRoutes(r *gin.Engine, h *Handler, m *Middleware) {
	users := r.Group("/users", m.RequireUser())
	users.GET("/me", h.GetMe)
	users.PATCH("/me", h.UpdateMe)
}

// GetMe returns the current authenticated user's profile.
func (h *Handler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

// UpdateMe updates the current user's editable profile fields.
func (h *Handler) UpdateMe(c *gin.Context) {
	var update UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		_ = c.Error(errutil.ValidationFailed(err.Error()))
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), CurrentUser(c).ID, update)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}
