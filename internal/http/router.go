package httpapi

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sentiment_dashboard/backend/internal/config"
	"github.com/sentiment_dashboard/backend/internal/http/handlers"
	"github.com/sentiment_dashboard/backend/internal/http/middleware"
	"github.com/sentiment_dashboard/backend/internal/service"

	_ "github.com/sentiment_dashboard/backend/docs"
)

func Router(cfg config.Config, svc *service.Service, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" || cfg.CORSAllowed == "" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = splitOrigins(cfg.CORSAllowed)
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Service: svc,
		Logger:  logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/regional-sentiment", h.RegionalSentimentList)
		api.PUT("/regional-sentiment", h.RegionalSentimentUpsert)

		api.GET("/feedback", h.FeedbackList)
		api.POST("/feedback", h.FeedbackCreate)

		api.GET("/sentiment-trends", h.SentimentTrendsList)

		api.GET("/priority-items", h.PriorityItemsList)
		api.GET("/priority-items/matrix", h.PriorityMatrix)
		api.POST("/priority-items", h.PriorityItemCreate)

		api.GET("/ai-insights", h.InsightsList)
		api.POST("/ai-insights", h.InsightCreate)
		api.POST("/ai-insights/generate", h.InsightsGenerate)

		api.GET("/impact-metrics", h.ImpactMetricsList)
		api.GET("/usage-metrics", h.UsageMetricsList)

		api.GET("/channels", h.ChannelsList)
		api.POST("/channels", h.ChannelCreate)

		api.GET("/dashboard/summary", h.DashboardSummary)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
