package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/jwt"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. On failure it writes
// a 401 and returns ok=false; callers should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}

// MustGetClaims extracts the full JWT claims from the Gin context.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "unauthenticated")
		return nil, false
	}
	return claims, true
}
