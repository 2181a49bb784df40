package models

import "time"

// User roles. Brand representatives and suppliers are scoped to the brands
// listed in their BrandAccess; contractors may only touch rows they created.
const (
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleBrandRep   = "brand_representative"
	RoleContractor = "contractor"
	RoleSupplier   = "supplier"
)

// Office locations of the sales organization.
const (
	LocationJHB      = "JHB"
	LocationCapeTown = "Cape Town"
	LocationDurban   = "Durban"
	LocationOther    = "Other"
)

// User represents a CRM user. Users are never hard-deleted; they are
// deactivated via IsActive.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string     `gorm:"size:255" json:"-"` // bcrypt hash, empty for LDAP users
	Role        string     `gorm:"size:50;default:staff" json:"role"`
	Location    string     `gorm:"size:50;default:Other" json:"location"`
	AuthType    string     `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	BrandAccess []Brand    `gorm:"many2many:user_brand_access" json:"brand_access"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleBrandRep, RoleContractor, RoleSupplier:
		return true
	}
	return false
}

// ValidLocation reports whether location is one of the known offices.
func ValidLocation(location string) bool {
	switch location {
	case LocationJHB, LocationCapeTown, LocationDurban, LocationOther:
		return true
	}
	return false
}

// BrandAccessIDs returns the ids of the brands this user is scoped to.
func (u *User) BrandAccessIDs() []uint {
	ids := make([]uint, 0, len(u.BrandAccess))
	for _, b := range u.BrandAccess {
		ids = append(ids, b.ID)
	}
	return ids
}
