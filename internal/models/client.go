package models

import "time"

// Client types.
const (
	ClientTypeArchitect  = "Architect"
	ClientTypeDeveloper  = "Developer"
	ClientTypeContractor = "Contractor"
	ClientTypeOther      = "Other"
)

// Client represents an architect/developer/contractor firm the team sells to.
type Client struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	Company    string    `gorm:"size:200" json:"company"`
	Type       string    `gorm:"size:50;default:Other" json:"type"`
	Email      string    `gorm:"size:255" json:"email"`
	Phone      string    `gorm:"size:50" json:"phone"`
	Street     string    `gorm:"size:255" json:"street"`
	City       string    `gorm:"size:100" json:"city"`
	Province   string    `gorm:"size:100" json:"province"`
	PostalCode string    `gorm:"size:20" json:"postal_code"`
	Notes      string    `gorm:"type:text" json:"notes"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedBy  uint      `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// ValidClientType reports whether t is a known client type.
func ValidClientType(t string) bool {
	switch t {
	case ClientTypeArchitect, ClientTypeDeveloper, ClientTypeContractor, ClientTypeOther:
		return true
	}
	return false
}
