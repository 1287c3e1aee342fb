package middleware

import (
	"net/http"
	"plants/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// 檢查是否有admin權限，沒有則中止請求
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			log.Error().Str("path", c.Request.URL.Path).Msg("無法取得Claims")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "missing token claims",
			})
			return
		}
		if claims.Role != jwt.AdminRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "admin role required",
			})
			return
		}

		c.Next()
	}
}
