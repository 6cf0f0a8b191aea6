package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialgraph/internal/service"
	"github.com/d60-Lab/socialgraph/pkg/response"
)

const actorKey = "actorID"

// RequireAuth 校验 Bearer token 并把账号 ID 放进请求上下文
func RequireAuth(accounts service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "missing or invalid token")
			return
		}
		actorID, err := accounts.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "missing or invalid token")
			return
		}
		c.Set(actorKey, actorID)
		c.Next()
	}
}

// ActorID 取出认证后的账号 ID；未认证路由返回空串
func ActorID(c *gin.Context) string {
	return c.GetString(actorKey)
}
