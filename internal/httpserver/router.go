package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"projectboard/internal/handler"
	"projectboard/pkg/metrics"
)

func NewRouter(
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	authHandler *handler.AuthHandler,
	logger *zap.Logger,
	db *pgxpool.Pool,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())

	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		role, _ := c.Get("role")
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Any("role", role),
		)
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			latency,
		)
	})

	// Health endpoints first.
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(500, gin.H{"status": "db_not_ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/login", authHandler.Login)

	resources := r.Group("/")
	resources.Use(SessionFromCookie())
	{
		resources.GET("/projects", projectHandler.List)
		resources.POST("/projects", projectHandler.Create)
		resources.GET("/projects/:id", projectHandler.Get)
		resources.PUT("/projects/:id", projectHandler.Update)
		resources.DELETE("/projects/:id", projectHandler.Delete)

		resources.POST("/tasks", taskHandler.Create)
		resources.PUT("/tasks", taskHandler.Update)
		resources.DELETE("/tasks", taskHandler.Delete)
	}

	return r
}
