package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
)

const CtxUserIDKey = "user_id"
const CtxRoleKey = "role"

func AuthMiddleware(jwtMgr *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			httpx.Error(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(h, "Bearer ")
		claims, err := jwtMgr.ParseAccess(token)
		if err != nil {
			httpx.Error(c, http.StatusUnauthorized, "invalid or expired access token")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuth populates the user context when a valid token is present
// but lets anonymous requests through. Guest checkout depends on it.
func OptionalAuth(jwtMgr *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			if claims, err := jwtMgr.ParseAccess(strings.TrimPrefix(h, "Bearer ")); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxRoleKey, claims.Role)
			}
		}
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, _ := c.Get(CtxRoleKey)
		if rStr, ok := r.(string); !ok || rStr != role {
			httpx.Error(c, http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, or (0, false) for guests.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
