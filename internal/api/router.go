package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/config"
	"github.com/safespot/safespot-backend/internal/handler"
	"github.com/safespot/safespot-backend/internal/middleware"
)

// Handlers bundles every route handler the router mounts.
type Handlers struct {
	History   *handler.HistoryHandler
	Analytics *handler.AnalyticsHandler
	Journey   *handler.JourneyHandler
	Protector *handler.ProtectorHandler
	User      *handler.UserHandler
	SOS       *handler.SOSHandler
	Upload    *handler.UploadHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "SafeSpot backend is running",
		})
	})

	ingestLimit := middleware.RateLimit(cfg.IngestRatePerMin, time.Minute)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 运动采样接口
		history := api.Group("/history")
		{
			history.POST("", ingestLimit, h.History.Ingest)
			history.GET("/:userId/latest", h.History.Latest)
			history.GET("/:userId/summary/day", h.History.DaySummary)
			history.GET("/:userId/summary/week", h.History.WeekSummary)
			history.GET("/:userId/summary/month", h.History.MonthSummary)
		}

		// 今日分析接口
		api.GET("/analytics/:userId", h.Analytics.Today)

		// 行程接口
		journeyGroup := api.Group("/journey")
		{
			journeyGroup.POST("/point", ingestLimit, h.Journey.AddPoint)
			journeyGroup.GET("/:userId/today", h.Journey.Today)
		}

		// 实时位置接口
		api.GET("/live/:userId", h.History.Live)

		// 紧急联系人接口
		protectors := api.Group("/protectors")
		{
			protectors.GET("/:userId", h.Protector.List)
			protectors.POST("", h.Protector.Add)
			protectors.DELETE("/:id", h.Protector.Delete)
		}

		// 用户资料接口
		user := api.Group("/user")
		{
			user.GET("/:userId", h.User.Get)
			user.PUT("/:userId", h.User.Update)
		}

		// SOS 接口
		api.POST("/sos/trigger", h.SOS.Trigger)

		// 头像上传接口
		api.POST("/upload/avatar", h.Upload.Avatar)
	}

	return r
}
