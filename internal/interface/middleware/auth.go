package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adisetya/recipe-api/internal/application"
	"github.com/adisetya/recipe-api/pkg/response"
)

const CtxUserIDKey = "userID"

// tokenFromHeader extracts the opaque bearer token from the Authorization
// header. Both "Token <key>" and "Bearer <key>" schemes are accepted.
func tokenFromHeader(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		return ""
	}
	parts := strings.Fields(h)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return ""
	}
	return parts[1]
}

// Auth resolves the opaque bearer token through the token store and injects
// the owning user id into the Gin context. Expired and revoked tokens fail
// with the same generic message as missing ones.
func Auth(tokens application.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		uid, err := tokens.Resolve(c.Request.Context(), token)
		if err != nil || uid == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}
