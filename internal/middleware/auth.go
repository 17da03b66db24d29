package middleware

import (
	"net/http"
	"strings"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
)

func AuthMiddleware(tokens *pkg.TokenIssuer, sessions *redis.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			return
		}

		tokenStr := parts[1]
		claims, err := tokens.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}

		// redis校验是否是当前有效的token
		ctx := c.Request.Context()
		origin, err := sessions.GetUserToken(ctx, claims.UserID)
		if err != nil || origin != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "session expired or logged in elsewhere"})
			return
		}

		// 校验通过后更新过期时间
		if err = sessions.ExtendUserToken(ctx, claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin 必须挂在 AuthMiddleware 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role := c.GetInt(ContextRoleKey); role < model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "admin only"})
			return
		}
		c.Next()
	}
}

// UserID 取出 AuthMiddleware 注入的用户 id，未登录返回 0
func UserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
