package routers

import (
	"net/http"
	"plants/handlers"
	"plants/jwt"
	"plants/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SetupRouters 建立Gin路由器，verifier為nil時寫入路由不需要Token
func SetupRouters(plantHandler *handlers.PlantHandler, verifier *jwt.Verifier, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.RequestLogger(log),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}),
	)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		//預檢請求不進入handler
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("無法設定信任代理")
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method Not Allowed"})
	})

	router.GET("/healthz", plantHandler.Health)

	//查詢植物列表
	router.GET("/plants", plantHandler.List)
	//查詢植物資料
	router.GET("/plants/:id", plantHandler.Get)

	////新增、修改、刪除，啟用驗證時需要admin身分
	writes := router.Group("/plants")
	if verifier != nil {
		writes.Use(
			middleware.AuthMiddleware(verifier),
			middleware.CheckLoginMiddleware(),
			middleware.CheckAdminPermissionMiddleware(),
		)
	}
	{
		//新增植物
		writes.POST("", plantHandler.Create)
		//修改植物庫存狀態
		writes.PATCH("/:id", plantHandler.Update)
		//刪除植物
		writes.DELETE("/:id", plantHandler.Delete)
	}

	return router
}
