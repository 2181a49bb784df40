package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inexss/crm-backend/internal/metrics"
	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/logger"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

// ExportService queues CSV report exports and serves completed downloads.
type ExportService struct {
	db      *gorm.DB
	reports *ReportService
	queue   TaskQueue
}

func NewExportService(db *gorm.DB, queue TaskQueue) *ExportService {
	return &ExportService{
		db:      db,
		reports: NewReportService(db),
		queue:   queue,
	}
}

type ExportRequest struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`
	BrandID   *uint  `json:"brand_id"`
}

// Request validates the range, records a pending export and hands it to the
// queue. The caller polls by token until the export completes.
func (s *ExportService) Request(actor *Actor, req *ExportRequest) (*models.ReportExport, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(*start) {
		return nil, response.NewBadRequest("end_date is before start_date")
	}

	export := models.ReportExport{
		Token:       uuid.NewString(),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		BrandID:     req.BrandID,
		Status:      models.ExportStatusPending,
		RequestedBy: actor.ID,
	}
	if err := s.db.Create(&export).Error; err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(&ExportTask{ExportID: export.ID}); err != nil {
		// The row stays pending; a retry endpoint or requeue could pick it up
		logger.Errorf("[Export] enqueue failed for export %d: %v", export.ID, err)
		return nil, response.NewServerError("failed to queue export")
	}

	return &export, nil
}

// GetByToken returns the export job status. Only the requester (or an admin)
// may see it.
func (s *ExportService) GetByToken(actor *Actor, token string) (*models.ReportExport, error) {
	var export models.ReportExport
	if err := s.db.Where("token = ?", token).First(&export).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("export not found")
		}
		return nil, err
	}

	if export.RequestedBy != actor.ID && actor.Role != models.RoleAdmin {
		return nil, response.NewAccessDenied()
	}

	return &export, nil
}

// Download returns the CSV body of a completed export.
func (s *ExportService) Download(actor *Actor, token string) (string, *models.ReportExport, error) {
	export, err := s.GetByToken(actor, token)
	if err != nil {
		return "", nil, err
	}
	if export.Status != models.ExportStatusCompleted {
		return "", nil, response.NewConflict("export is not ready")
	}
	return export.Content, export, nil
}

// Process generates the CSV for one queued export. It runs on the worker (or
// inline in sync mode) and records failure on the row instead of retrying
// forever.
func (s *ExportService) Process(ctx context.Context, task *ExportTask) error {
	var export models.ReportExport
	if err := s.db.First(&export, task.ExportID).Error; err != nil {
		return err
	}
	if export.Status == models.ExportStatusCompleted {
		return nil
	}

	// Rebuild the requester's visibility at processing time
	var user models.User
	if err := s.db.Preload("BrandAccess").First(&user, export.RequestedBy).Error; err != nil {
		return s.fail(&export, "requesting user no longer exists")
	}
	actor := ActorFromUser(&user)

	req := &ReportRequest{
		StartDate: export.StartDate,
		EndDate:   export.EndDate,
		BrandID:   export.BrandID,
	}

	summary, err := s.reports.Summary(actor, req)
	if err != nil {
		return s.fail(&export, err.Error())
	}
	meetings, err := s.reports.FetchMeetings(actor, req)
	if err != nil {
		return s.fail(&export, err.Error())
	}

	csvBody, err := BuildCSV(summary, meetings)
	if err != nil {
		return s.fail(&export, err.Error())
	}

	now := time.Now()
	if err := s.db.Model(&export).Updates(map[string]interface{}{
		"status":       models.ExportStatusCompleted,
		"content":      string(csvBody),
		"error":        "",
		"completed_at": now,
	}).Error; err != nil {
		return err
	}

	metrics.RecordExportJob(models.ExportStatusCompleted)
	logger.Infof("[Export] export %d completed (%d meetings)", export.ID, len(meetings))
	return nil
}

func (s *ExportService) fail(export *models.ReportExport, msg string) error {
	metrics.RecordExportJob(models.ExportStatusFailed)
	logger.Errorf("[Export] export %d failed: %s", export.ID, msg)
	return s.db.Model(export).Updates(map[string]interface{}{
		"status": models.ExportStatusFailed,
		"error":  msg,
	}).Error
}
