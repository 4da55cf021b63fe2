package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/jwt"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/redis"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/response"
)

// JWTAuth validates the Authorization: Bearer <token> header and injects the
// caller identity into the context. When rdb is non-nil, blacklisted tokens
// (logged-out sessions) are refused.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
			// Redis errors degrade to allowing the request.
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("team_id", claims.TeamID)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth allows only callers holding one of the given roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "unauthenticated")
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		for _, allowed := range allowedRoles {
			if roleStr == allowed {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient privileges")
		c.Abort()
	}
}
