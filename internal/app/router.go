package app

import (
	"interview_prep_backend/docs"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/middleware"
	"interview_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Chat-transport surface: no auth, identity is the opaque external id the
	// upstream channel vouches for.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/admin/login", c.auth.Login)

		public.GET("/languages", c.catalog.ListLanguages)
		public.GET("/categories", c.catalog.ListCategories)

		public.POST("/session", c.session.Start)
		public.POST("/session/language", c.session.SelectLanguage)

		diagnostics := public.Group("/diagnostics")
		{
			diagnostics.POST("/start", c.diagnostics.Start)
			diagnostics.GET("/current", c.diagnostics.Current)
			diagnostics.POST("/score", c.diagnostics.Score)
		}

		practice := public.Group("/practice")
		{
			practice.GET("/current", c.practice.Current)
			practice.POST("/answer", c.practice.Answer)
			practice.POST("/next", c.practice.Next)
			practice.GET("/plan", c.practice.Plan)
			practice.POST("/generate", c.practice.Generate)
		}
	}

	// Catalog ingestion is operator-only.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.POST("/languages", c.catalog.CreateLanguage)
		admin.POST("/categories", c.catalog.CreateCategory)
		admin.POST("/questions", c.catalog.CreateQuestion)
	}
}
