package models

import "time"

// Report export job statuses.
const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ReportExport is a queued CSV report export. The generated CSV is stored on
// the row so a completed export can be downloaded later.
type ReportExport struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Token       string     `gorm:"uniqueIndex;size:36;not null" json:"token"` // download token
	StartDate   string     `gorm:"size:10;not null" json:"start_date"`        // YYYY-MM-DD
	EndDate     string     `gorm:"size:10;not null" json:"end_date"`
	BrandID     *uint      `json:"brand_id"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"`
	Content     string     `gorm:"type:text" json:"-"` // the CSV body
	Error       string     `gorm:"size:1000" json:"error,omitempty"`
	RequestedBy uint       `gorm:"index" json:"requested_by"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (ReportExport) TableName() string { return "report_exports" }
