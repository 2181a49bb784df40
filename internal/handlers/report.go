package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inexss/crm-backend/internal/middleware"
	"github.com/inexss/crm-backend/internal/services"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(db *gorm.DB, queue services.TaskQueue) *ReportHandler {
	return &ReportHandler{
		reportService: services.NewReportService(db),
		exportService: services.NewExportService(db, queue),
	}
}

// Summary returns the activity report for a date range
// GET /api/meetings/report
func (h *ReportHandler) Summary(c *gin.Context) {
	var req services.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	summary, err := h.reportService.Summary(actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, summary)
}

// Monthly returns the report for one calendar month, defaulting to the
// current month
// GET /api/meetings/report/monthly
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		response.BadRequest(c, "invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		response.BadRequest(c, "invalid month")
		return
	}

	var brandID *uint
	if raw := c.Query("brand_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid brand_id")
			return
		}
		parsed := uint(id)
		brandID = &parsed
	}

	actor := middleware.GetActor(c)
	report, err := h.reportService.Monthly(actor, year, month, brandID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, report)
}

// CSV streams the report as a CSV attachment
// GET /api/meetings/report/csv
func (h *ReportHandler) CSV(c *gin.Context) {
	var req services.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	summary, err := h.reportService.Summary(actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	meetings, err := h.reportService.FetchMeetings(actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	body, err := services.BuildCSV(summary, meetings)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("meeting-report-%s-%s.csv", req.StartDate, req.EndDate)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", body)
}

// RequestExport queues an async CSV export
// POST /api/reports/export
func (h *ReportHandler) RequestExport(c *gin.Context) {
	var req services.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	export, err := h.exportService.Request(actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, export)
}

// ExportStatus returns the status of a queued export
// GET /api/reports/export/:token
func (h *ReportHandler) ExportStatus(c *gin.Context) {
	actor := middleware.GetActor(c)
	export, err := h.exportService.GetByToken(actor, c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, export)
}

// DownloadExport streams the CSV body of a completed export
// GET /api/reports/export/:token/download
func (h *ReportHandler) DownloadExport(c *gin.Context) {
	actor := middleware.GetActor(c)
	content, export, err := h.exportService.Download(actor, c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("meeting-report-%s-%s.csv", export.StartDate, export.EndDate)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", []byte(content))
}
