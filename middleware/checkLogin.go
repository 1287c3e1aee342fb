package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 檢查是否帶有合法Token，沒有則中止請求
func CheckLoginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ClaimsFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "missing or invalid bearer token",
			})
			return
		}

		c.Next()
	}
}
