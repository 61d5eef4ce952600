package router

import (
	"context"
	"net/http"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由，ctx 结束时停止中间件的后台任务
func SetupRouter(ctx context.Context, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(CORSMiddleware(cfg.Server.CORSOrigin))

	// 健康检查
	r.GET("/health", health)
	r.GET("/api/health", health)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := api.NewAuthHandler(cfg)
	transactionHandler := api.NewTransactionHandler(cfg)
	analyticsHandler := api.NewAnalyticsHandler(cfg)
	exportHandler := api.NewExportHandler(cfg)
	budgetHandler := api.NewBudgetHandler(cfg)

	apiGroup := r.Group("/api")

	// 注册与登录（无需登录）
	users := apiGroup.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login",
			middleware.LoginRateLimit(ctx, cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow),
			authHandler.Login)
	}

	// 需要 JWT 认证的路由
	authorized := apiGroup.Group("")
	authorized.Use(middleware.JWTAuth())
	{
		authorized.GET("/users/me", authHandler.Me)
		authorized.DELETE("/users/me", authHandler.DeleteAccount)
		authorized.PUT("/users/me/password", authHandler.ChangePassword)

		transactions := authorized.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("", transactionHandler.Create)
			transactions.GET("/summary", analyticsHandler.Summary)
			transactions.GET("/analytics", analyticsHandler.Analytics)
			transactions.GET("/categories", transactionHandler.Categories)
			transactions.GET("/export", exportHandler.ExportCSV)
			transactions.GET("/export/excel", exportHandler.ExportExcel)
			transactions.POST("/report", analyticsHandler.Report)
			transactions.GET("/:id", transactionHandler.Get)
			transactions.PUT("/:id", transactionHandler.Update)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		budgets := authorized.Group("/budgets")
		{
			budgets.GET("", budgetHandler.List)
			budgets.POST("", budgetHandler.Upsert)
			budgets.DELETE("/:id", budgetHandler.Delete)
		}
	}

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// CORSMiddleware CORS 跨域中间件，origin 为 "*" 时允许任意来源
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
