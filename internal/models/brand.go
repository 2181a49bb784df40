package models

import "time"

// Brand represents a principal/brand the organization sells.
type Brand struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Category     string    `gorm:"size:100" json:"category"`
	Description  string    `gorm:"type:text" json:"description"`
	ContactName  string    `gorm:"size:100" json:"contact_name"`
	ContactEmail string    `gorm:"size:255" json:"contact_email"`
	ContactPhone string    `gorm:"size:50" json:"contact_phone"`
	Website      string    `gorm:"size:500" json:"website"`
	ImageURL     string    `gorm:"size:500" json:"image_url"`
	LogoURL      string    `gorm:"size:500" json:"logo_url"`
	Notes        string    `gorm:"type:text" json:"notes"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedBy    uint      `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Brand) TableName() string { return "brands" }
