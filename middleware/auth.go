package middleware

import (
	"plants/jwt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const claimsKey = "Claims"

// AuthMiddleware 驗證Bearer Token，合法時將Claims存入context，不合法則繼續處理交由後續中間件判斷
func AuthMiddleware(verifier *jwt.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" || token == authHeader {
			c.Next()
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("無法驗證Token")
			c.Next()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext 取得AuthMiddleware存入的Claims
func ClaimsFromContext(c *gin.Context) (*jwt.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*jwt.Claims)
	return claims, ok
}
