package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ikkim/bizdir-backend/config"
	"github.com/ikkim/bizdir-backend/internal/app/controller"
	"github.com/ikkim/bizdir-backend/internal/middleware"
)

type Router struct {
	businessController *controller.BusinessController
	reviewController   *controller.ReviewController
	catalogController  *controller.CatalogController
	healthController   *controller.HealthController
	metrics            *middleware.Metrics
	config             *config.Config
}

func NewRouter(
	businessController *controller.BusinessController,
	reviewController *controller.ReviewController,
	catalogController *controller.CatalogController,
	healthController *controller.HealthController,
	metrics *middleware.Metrics,
	cfg *config.Config,
) *Router {
	return &Router{
		businessController: businessController,
		reviewController:   reviewController,
		catalogController:  catalogController,
		healthController:   healthController,
		metrics:            metrics,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware())
	router.Use(r.metrics.Middleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", r.healthController.Health)
	router.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/business", r.businessController.GetBusinesses)
		api.POST("/business", r.businessController.CreateBusiness)

		api.GET("/reviews", r.reviewController.GetReviews)
		api.POST("/reviews", r.reviewController.CreateReview)

		api.GET("/categories", r.catalogController.GetCategories)
		api.GET("/cities", r.catalogController.GetCities)
		api.GET("/provinces", r.catalogController.GetProvinces)
		api.GET("/areas", r.catalogController.GetAreas)
		api.GET("/search", r.catalogController.Search)
		api.GET("/sitemap.xml", r.catalogController.Sitemap)

		api.GET("/db-health", r.healthController.DBHealth)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			// credentials cannot be combined with a wildcard origin
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cors.New(cfg)
		}
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cors.New(cfg)
	}

	cfg.AllowOrigins = allowedOrigins
	return cors.New(cfg)
}
