package middleware

import (
	"net/http"
	"strings"

	"inspyre/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserIDKey   = "userID"
	ctxUsernameKey = "username"
)

// AuthMiddleware JWT认证中间件，未登录直接拒绝
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided or are invalid"})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUsernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证：读接口对匿名开放，但登录用户
// 需要身份信息来计算 is_owner / like_id 等与观察者相关的字段
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c); ok {
			c.Set(ctxUserIDKey, claims.UserID)
			c.Set(ctxUsernameKey, claims.Username)
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// 检查格式 "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CurrentUserID 从上下文取当前登录用户ID，匿名请求返回 (0, false)
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// CurrentUsername 从上下文取当前登录用户名
func CurrentUsername(c *gin.Context) string {
	return c.GetString(ctxUsernameKey)
}
