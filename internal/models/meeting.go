package models

import "time"

// Meeting statuses.
const (
	MeetingStatusScheduled = "Scheduled"
	MeetingStatusCompleted = "Completed"
	MeetingStatusCancelled = "Cancelled"
)

// Meeting is the aggregate root for a client meeting. Its child collections
// (brand discussions and action items) are owned rows: updates replace them
// wholesale and deletes cascade to them.
type Meeting struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	ClientID         uint              `gorm:"not null;index" json:"client_id"`
	Client           *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ProjectID        *uint             `gorm:"index" json:"project_id"`
	Project          *Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	MeetingDate      time.Time         `gorm:"not null;index" json:"meeting_date"`
	Location         string            `gorm:"size:255" json:"location"`
	Attendees        string            `gorm:"size:1000" json:"attendees"` // comma-separated names
	Summary          string            `gorm:"type:text" json:"summary"`
	Status           string            `gorm:"size:50;default:Scheduled" json:"status"`
	FollowUpDate     *time.Time        `json:"follow_up_date"`
	BrandDiscussions []BrandDiscussion `gorm:"foreignKey:MeetingID" json:"brand_discussions"`
	ActionItems      []ActionItem      `gorm:"foreignKey:MeetingID" json:"action_items"`
	CreatedBy        uint              `gorm:"index" json:"created_by"`
	Creator          *User             `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (Meeting) TableName() string { return "meetings" }

// BrandDiscussion records that a brand was discussed in a meeting, whether it
// was specified ("required") and the value attached to the opportunity.
type BrandDiscussion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MeetingID      uint      `gorm:"not null;index" json:"meeting_id"`
	BrandID        uint      `gorm:"not null;index" json:"brand_id"`
	Brand          *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	IsRequired     bool      `gorm:"default:false" json:"is_required"`
	Notes          string    `gorm:"type:text" json:"notes"`
	EstimatedValue float64   `gorm:"default:0" json:"estimated_value"`
	CreatedAt      time.Time `json:"created_at"`
}

func (BrandDiscussion) TableName() string { return "brand_discussions" }

// ActionItem is a follow-up task agreed in a meeting.
type ActionItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	MeetingID   uint       `gorm:"not null;index" json:"meeting_id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	DueDate     *time.Time `gorm:"index" json:"due_date"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (ActionItem) TableName() string { return "action_items" }

// ValidMeetingStatus reports whether s is a known meeting status.
func ValidMeetingStatus(s string) bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusCompleted, MeetingStatusCancelled:
		return true
	}
	return false
}

// DiscussedBrandIDs returns the ids of the brands discussed in this meeting.
func (m *Meeting) DiscussedBrandIDs() []uint {
	ids := make([]uint, 0, len(m.BrandDiscussions))
	for _, bd := range m.BrandDiscussions {
		ids = append(ids, bd.BrandID)
	}
	return ids
}
