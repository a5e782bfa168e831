package identity

import (
	"strings"

	"hotncold-server/pkg/errutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

const contextUserKey = "identity.user"

// Middleware authenticates requests: bearer token to external identity to a
// provisioned, active User stashed in the gin context.
type Middleware struct {
	verifier TokenVerifier
	svc      *Service
}

type MiddlewareParams struct {
	fx.In
	Verifier TokenVerifier
	Service  *Service
}

func NewMiddleware(p MiddlewareParams) *Middleware {
	return &Middleware{verifier: p.Verifier, svc: p.Service}
}

func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			_ = c.Error(errutil.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}

		ext, err := m.verifier.VerifyToken(raw)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		user, err := m.svc.ResolveOrProvision(c.Request.Context(), ext)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if !user.IsActive {
			_ = c.Error(errutil.Forbidden("user account is deactivated"))
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by RequireUser.
func CurrentUser(c *gin.Context) *User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
