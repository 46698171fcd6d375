package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(stockHandler *handlers.StockHandler, advisorHandler *handlers.AdvisorHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	api.GET("/inventory", stockHandler.ListInventory)
	api.POST("/inventory", stockHandler.CreateItem)
	api.PUT("/inventory/:id", stockHandler.UpdateItem)
	api.DELETE("/inventory/:id", stockHandler.DeleteItem)
	api.POST("/inventory/sell", stockHandler.Sell)
	api.POST("/inventory/clear/request", stockHandler.RequestClearInventory)
	api.POST("/inventory/clear/proceed", stockHandler.ProceedClearInventory)
	api.POST("/inventory/clear", stockHandler.ConfirmClearInventory)
	api.POST("/inventory/import", advisorHandler.ImportRecords)

	api.GET("/sales", stockHandler.ListSales)
	api.POST("/sales/clear/request", stockHandler.RequestClearSales)
	api.POST("/sales/clear/proceed", stockHandler.ProceedClearSales)
	api.POST("/sales/clear", stockHandler.ConfirmClearSales)

	api.GET("/reports/summary", stockHandler.Summary)

	api.GET("/ai/status", advisorHandler.Status)
	api.POST("/ai/connection", advisorHandler.SetConnection)
	api.POST("/ai/analysis", advisorHandler.Analyze)
	api.POST("/ai/catalog", advisorHandler.AnalyzeCatalog)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
