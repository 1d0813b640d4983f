package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hadirida46/house-hub-api/services"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(service services.InterfaceJWTService) {
	jwtService = service
}

// abortUnauthorized 以401终止请求
func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": message,
		"data":    nil,
	})
	c.Abort()
}

// Authentication 通用的认证中间件
// 验证Bearer令牌签名并确认令牌ID仍登记在册（未被退出登录注销），
// 将调用者身份写入上下文，后续处理显式读取，不依赖任何环境态
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		// 检查是否是Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		tokenString := parts[1]
		if tokenString == "" {
			abortUnauthorized(c, "Invalid token format")
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		active, err := jwtService.IsTokenActive(claims.ID)
		if err != nil || !active {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// CallerID 从上下文中读取认证后的调用者ID
func CallerID(c *gin.Context) uint {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
