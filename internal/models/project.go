package models

import "time"

// Project statuses. The lifecycle is informational only: any status may
// follow any other.
const (
	ProjectStatusLead       = "Lead"
	ProjectStatusQuoted     = "Quoted"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusOnHold     = "On Hold"
	ProjectStatusCompleted  = "Completed"
	ProjectStatusCancelled  = "Cancelled"
)

// Project represents a construction project a client is running.
type Project struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:200;not null" json:"name"`
	ProjectNumber  string     `gorm:"size:100" json:"project_number"`
	ClientID       uint       `gorm:"not null;index" json:"client_id"`
	Client         *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Location       string     `gorm:"size:255" json:"location"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         string     `gorm:"size:50;default:Lead" json:"status"`
	EstimatedValue float64    `gorm:"default:0" json:"estimated_value"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Brands         []Brand    `gorm:"many2many:project_brands" json:"brands"`
	Notes          string     `gorm:"type:text" json:"notes"`
	CreatedBy      uint       `gorm:"index" json:"created_by"`
	Creator        *User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusLead, ProjectStatusQuoted, ProjectStatusInProgress,
		ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// BrandIDs returns the ids of the brands linked to this project.
func (p *Project) BrandIDs() []uint {
	ids := make([]uint, 0, len(p.Brands))
	for _, b := range p.Brands {
		ids = append(ids, b.ID)
	}
	return ids
}
