package middleware

import (
	"net/http"
	"strings"

	"Nebula_Tube/internal/repository"
	"Nebula_Tube/pkg/token"

	"github.com/gin-gonic/gin"
)

// context里存当前用户的key
const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "currentUser"
)

// extractAccessToken 先看cookie再看Authorization头，两个入口都支持
func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Auth 强制认证：没有有效的访问令牌直接401。
// 校验通过后把用户行查出来放进context，注销过的账号在这里被拦下
func Auth(tokenMgr *token.Manager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "请先登录")
			return
		}
		userID, err := tokenMgr.ParseAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "无效或过期的访问令牌")
			return
		}
		user, err := userRepo.FindByID(userID)
		if err != nil {
			abortUnauthorized(c, "账号不存在或已注销")
			return
		}
		c.Set(CtxUserIDKey, user.ID)
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// OptionalAuth 可选认证：匿名和登录用户都能访问的接口用它。
// 令牌无效时不报错，只是不往context里放用户
func OptionalAuth(tokenMgr *token.Manager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		userID, err := tokenMgr.ParseAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}
		user, err := userRepo.FindByID(userID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(CtxUserIDKey, user.ID)
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// CurrentUserID 从context取当前用户ID；0表示匿名
func CurrentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(CtxUserIDKey); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"message":    message,
		"success":    false,
	})
}
