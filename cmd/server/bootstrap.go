package main

import (
	"github.com/inexss/crm-backend/internal/config"
	"github.com/inexss/crm-backend/internal/handlers"
	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/internal/services"
	"github.com/inexss/crm-backend/internal/utils"
	"github.com/inexss/crm-backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg             *config.Config
	taskQueue       services.TaskQueue
	worker          *services.Worker
	exportService   *services.ExportService
	reminderService *services.ReminderService
	authHandler     *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize system logger and its retention cleanup
	services.InitSystemLogger(models.GetDB())
	services.StartLogCleanupScheduler(models.GetDB(), cfg.Log.RetentionDays)

	// Export queue (Redis-backed if enabled, otherwise in-process)
	taskQueue := services.InitTaskQueue(cfg)
	exportService := services.NewExportService(models.GetDB(), taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(exportService.Process)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(exportService.Process)
			worker.Start()
		}
	}

	// Action item reminders
	reminderService := services.NewReminderService(models.GetDB(), &cfg.SMTP)
	reminderService.StartScheduler()

	// Seed the default admin account
	authHandler := handlers.NewAuthHandler(models.GetDB(), &cfg.JWT, &cfg.LDAP)
	authService := services.NewAuthService(models.GetDB(), &cfg.JWT, &cfg.LDAP)
	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warnf("Failed to create admin user: %v", err)
	}

	return &appServices{
		cfg:             cfg,
		taskQueue:       taskQueue,
		worker:          worker,
		exportService:   exportService,
		reminderService: reminderService,
		authHandler:     authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.StopScheduler()

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Infof("All services stopped")
}
