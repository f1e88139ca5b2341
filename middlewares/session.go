package middlewares

import (
	"log"

	"storefront-service/config"
	"storefront-service/session"
	"storefront-service/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionHeader     = "X-Session-Token"
	SessionContextKey = "orderSession"
)

// SessionMiddleware 解析会话令牌并把对应的 OrderSession 放进上下文。
// 没有令牌（或令牌无效）时创建新会话并在响应头返回新令牌。
func SessionMiddleware(store *session.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s *session.OrderSession

		if tokenString := c.GetHeader(SessionHeader); tokenString != "" {
			if sessionID, err := utils.ParseSessionToken(tokenString, cfg.SessionSecret); err == nil {
				s = store.GetOrCreate(sessionID)
			}
		}

		if s == nil {
			s = store.Create()
			token, err := utils.GenerateSessionToken(s.ID(), cfg.SessionSecret)
			if err != nil {
				log.Printf("Failed to generate session token: %v", err)
			} else {
				c.Header(SessionHeader, token)
			}
		}

		c.Set(SessionContextKey, s)
		c.Next()
	}
}

// GetOrderSession 从上下文取出当前会话
func GetOrderSession(c *gin.Context) (*session.OrderSession, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}
	s, ok := value.(*session.OrderSession)
	return s, ok
}
