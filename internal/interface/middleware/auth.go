package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devtrail/bootcamp-api/internal/application"
	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
	"github.com/devtrail/bootcamp-api/pkg/response"
)

const CtxPrincipalKey = "principal"

// tokenFromRequest reads the session token from the Authorization
// header, falling back to the token cookie set at login.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if t, err := c.Cookie("token"); err == nil && t != "" {
		return t
	}
	return ""
}

// Protect validates the session token, loads the user, and stores a
// Principal in the Gin context for handlers and Authorize.
func Protect(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		c.Set(CtxPrincipalKey, application.Principal{ID: u.ID, Role: u.Role})
		c.Next()
	}
}

// Authorize allows only the listed roles past. Must run after Protect.
func Authorize(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		response.AbortFail(c, http.StatusForbidden,
			"user role "+string(p.Role)+" is not authorized to access this route", nil)
	}
}

// PrincipalFrom returns the authenticated principal set by Protect.
func PrincipalFrom(c *gin.Context) (application.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return application.Principal{}, false
	}
	p, ok := v.(application.Principal)
	return p, ok
}
