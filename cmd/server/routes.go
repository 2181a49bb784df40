package main

import (
	"github.com/gin-gonic/gin"
	"github.com/inexss/crm-backend/internal/handlers"
	"github.com/inexss/crm-backend/internal/middleware"
	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.Metrics())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Login and refresh get a tighter limit than the rest of the API
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check and Prometheus scrape endpoint
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	db := models.GetDB()

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.POST("/register", svc.authHandler.Register)
			auth.GET("/info", svc.authHandler.Info)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(db), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/profile", svc.authHandler.Profile)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.PUT("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard", dashboardHandler.GetStats)

			// Clients
			clientHandler := handlers.NewClientHandler(db)
			protected.GET("/clients", clientHandler.List)
			protected.GET("/clients/:id", clientHandler.GetByID)
			protected.POST("/clients", clientHandler.Create)
			protected.PUT("/clients/:id", clientHandler.Update)
			protected.DELETE("/clients/:id", clientHandler.Delete)

			// Brands
			brandHandler := handlers.NewBrandHandler(db)
			protected.GET("/brands", brandHandler.List)
			protected.GET("/brands/:id", brandHandler.GetByID)
			protected.POST("/brands", brandHandler.Create)
			protected.PUT("/brands/:id", brandHandler.Update)
			protected.DELETE("/brands/:id", brandHandler.Delete)

			// Projects
			projectHandler := handlers.NewProjectHandler(db)
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.POST("/projects", projectHandler.Create)
			protected.PUT("/projects/:id", projectHandler.Update)
			protected.DELETE("/projects/:id", projectHandler.Delete)

			// Meetings and reporting. Report routes are registered before
			// the :id routes so "report" is not captured as a meeting id.
			meetingHandler := handlers.NewMeetingHandler(db)
			reportHandler := handlers.NewReportHandler(db, svc.taskQueue)
			protected.GET("/meetings/report", reportHandler.Summary)
			protected.GET("/meetings/report/monthly", reportHandler.Monthly)
			protected.GET("/meetings/report/csv", reportHandler.CSV)
			protected.GET("/meetings", meetingHandler.List)
			protected.GET("/meetings/:id", meetingHandler.GetByID)
			protected.POST("/meetings", meetingHandler.Create)
			protected.PUT("/meetings/:id", meetingHandler.Update)
			protected.DELETE("/meetings/:id", meetingHandler.Delete)
			protected.PATCH("/meetings/:id/action-items/:item_id", meetingHandler.CompleteActionItem)

			// Async report exports
			protected.POST("/reports/export", reportHandler.RequestExport)
			protected.GET("/reports/export/:token", reportHandler.ExportStatus)
			protected.GET("/reports/export/:token/download", reportHandler.DownloadExport)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(db), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Users
			userHandler := handlers.NewUserHandler(db)
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.GetByID)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Deactivate)

			// System Logs
			systemLogHandler := handlers.NewSystemLogHandler(db)
			admin.GET("/system-logs", systemLogHandler.List)
			admin.GET("/system-logs/modules", systemLogHandler.Modules)
		}
	}
}
