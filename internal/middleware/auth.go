package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"llmboard/internal/identity"
	"llmboard/internal/pkg"
	"llmboard/internal/repository/redis"
)

const ContextIdentityKey = "identity"

// OptionalAuth 身份解析：带合法令牌注入登录身份，其余一律降级为匿名继续处理
// 缺身份是退化但合法的状态，不是错误
func OptionalAuth() gin.HandlerFunc {
	sessions := &redis.SessionRepository{}
	return func(c *gin.Context) {
		ident := identity.Anonymous()

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenStr := parts[1]
				if claims, err := pkg.ParseAccess(tokenStr); err == nil {
					// redis校验是否是当前有效的token
					originToken, err := sessions.GetUserToken(claims.UserID)
					if err == nil && originToken == tokenStr {
						// 校验通过后更新过期时间
						_ = sessions.ExtendUserToken(claims.UserID)
						ident = identity.Authenticated(claims.UserID)
					}
				}
			}
		}

		c.Set(ContextIdentityKey, ident)
		c.Next()
	}
}

// RequireAuth 在 OptionalAuth 之后使用，匿名直接 401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if !ident.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 1, "msg": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity 从 gin 上下文取身份，没经过中间件时视为匿名
func CurrentIdentity(c *gin.Context) identity.Identity {
	v, ok := c.Get(ContextIdentityKey)
	if !ok {
		return identity.Anonymous()
	}
	ident, ok := v.(identity.Identity)
	if !ok {
		return identity.Anonymous()
	}
	return ident
}
