package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/server/handlers"
)

// New wires the Gin engine with the webhook, the herd API and the metrics
// endpoint. A nil gatherer serves the default Prometheus registry.
func New(webhook *handlers.WebhookHandler, herd *handlers.HerdHandler, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/webhook", webhook.Verify)
	r.POST("/webhook", webhook.Receive)
	r.POST("/send-message", webhook.SendMessage)

	api := r.Group("/api")
	api.GET("/herd/report", herd.Report)
	api.GET("/herd/growth-curve", herd.GrowthCurve)
	animals := api.Group("/animals/:id")
	animals.GET("/growth", herd.Growth)
	animals.GET("/lactations", herd.Lactations)
	animals.GET("/lactations/compare", herd.Compare)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Info("router initialized")
	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Scrapes would drown the request log.
		if c.Request.URL.Path == "/metrics" {
			return
		}
		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
