package main

import (
	"github.com/docgen/backend/internal/config"
	"github.com/docgen/backend/internal/handlers"
	"github.com/docgen/backend/internal/middleware"
	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.CORS.Origins))

	// Rate limiter for credential routes
	authLimiter := middleware.NewRateLimiter(5, 10)

	db := models.GetDB()
	authHandler := handlers.NewAuthHandler(db, &cfg.JWT)
	memberHandler := handlers.NewMemberHandler(db)
	projectHandler := handlers.NewProjectHandler(db)
	timelineHandler := handlers.NewTimelineHandler(db)
	noticeHandler := handlers.NewNoticeHandler(db)
	documentHandler := handlers.NewDocumentHandler(&cfg.FastAPI)
	healthHandler := handlers.NewHealthHandler()

	// Health check
	r.GET("/health", healthHandler.CheckHealth)

	// Authentication
	auth := r.Group("/authentication")
	{
		auth.POST("/signup", authLimiter.Middleware(), authHandler.SignUp)
		auth.POST("/signin", authLimiter.Middleware(), authHandler.SignIn)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/signout", middleware.AuthRequired(), authHandler.SignOut)
	}

	// Members
	member := r.Group("/member")
	{
		member.GET("/list", memberHandler.List)
		member.GET("/:id", memberHandler.GetByID)
		member.PATCH("/:id", middleware.AuthRequired(), memberHandler.Update)
		member.POST("/access", middleware.AuthRequired(), memberHandler.GrantAccess)
		member.PATCH("/password/update", middleware.AuthRequired(), memberHandler.UpdatePassword)
		member.DELETE("", middleware.AuthRequired(), memberHandler.Delete)
	}

	// Projects: ORM routes plus the raw SQL variants
	projects := r.Group("/projects")
	{
		projects.GET("", projectHandler.List)
		projects.POST("", projectHandler.Create)
		projects.GET("/:id", projectHandler.GetByID)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)

		raw := projects.Group("/raw")
		{
			raw.GET("/:memberId", projectHandler.RawList)
			raw.GET("/project/:id", projectHandler.RawGetByID)
			raw.POST("", projectHandler.RawCreate)
			raw.PUT("/:id", projectHandler.RawUpdate)
			raw.DELETE("/:id", projectHandler.RawDelete)
		}
	}

	// Timelines
	timelines := r.Group("/timelines")
	{
		timelines.GET("/projects", timelineHandler.ListByProject)
		timelines.POST("", timelineHandler.Create)
		timelines.PUT("/:id", timelineHandler.Update)
		timelines.DELETE("/:id", timelineHandler.Delete)
	}

	// Notices
	notices := r.Group("/notices")
	{
		notices.GET("", noticeHandler.List)
		notices.POST("", noticeHandler.Create)
		notices.GET("/:noticeId", noticeHandler.GetByID)
		notices.PUT("/:noticeId", noticeHandler.Update)
		notices.DELETE("/:noticeId", noticeHandler.Delete)
	}

	// Documents (proxied to the external generation service)
	document := r.Group("/document")
	{
		document.POST("/requirement", documentHandler.CreateRequirement)
		document.POST("/requirement/questions", documentHandler.GenerateQuestions)
		document.POST("/functional", documentHandler.CreateFunctional)
		document.POST("/policy", documentHandler.CreatePolicy)
		document.GET("/:kind/user/:userId", documentHandler.ListByUser)
		document.GET("/:kind/project/:projectId", documentHandler.ListByProject)
		document.GET("/:kind/file/:id", documentHandler.DownloadExcel)
		document.GET("/:kind/:id", documentHandler.GetByID)
		document.DELETE("/:kind/:id", documentHandler.Delete)
	}
}
