package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/mw"
	"equipment-tracker-backend/internal/service"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(svc *service.Service, cfg config.ServerConfig, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestID())
	r.Use(mw.Logger(logger.Named("http")))
	r.Use(mw.Metrics())
	r.Use(mw.CORS(cfg.AllowedOrigin))

	handler := NewHandler(svc, logger.Named("api"))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API group
	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	if ttl := cfg.CacheTTL(); ttl > 0 {
		api.Use(mw.Cache(cache.New(ttl, 2*ttl), ttl))
	}
	{
		api.GET("/equipment", handler.ListEquipment)
		api.POST("/equipment", handler.CreateEquipment)
		api.PUT("/equipment/:id", handler.UpdateEquipment)
		api.DELETE("/equipment/:id", handler.DeleteEquipment)
	}

	logger.Info("router initialized")
	return r
}
