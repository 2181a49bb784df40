package services

import (
	"errors"

	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/internal/utils"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

// UserService is the admin-facing account management surface.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Role     string `form:"role"`
	Location string `form:"location"`
}

type UserListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.User `json:"items"`
}

type CreateUserRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required"`
	Location       string `json:"location"`
	BrandAccessIDs []uint `json:"brand_access_ids"`
}

type UpdateUserRequest struct {
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Location       string  `json:"location"`
	Password       string  `json:"password" binding:"omitempty,min=8"`
	IsActive       *bool   `json:"is_active"`
	BrandAccessIDs *[]uint `json:"brand_access_ids"` // absent: untouched, present: replaced
}

func (s *UserService) List(req *UserListRequest) (*UserListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Location != "" {
		query = query.Where("location = ?", req.Location)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("BrandAccess").
		Offset(offset).Limit(req.PageSize).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    users,
	}, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("BrandAccess").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Create adds a local account with an optional brand access grant.
func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, response.NewBadRequest("invalid role")
	}
	if req.Location == "" {
		req.Location = models.LocationOther
	}
	if !models.ValidLocation(req.Location) {
		return nil, response.NewBadRequest("invalid location")
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     req.Role,
		Location: req.Location,
		AuthType: "local",
		IsActive: true,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return s.replaceBrandAccess(tx, &user, req.BrandAccessIDs)
	}); err != nil {
		return nil, err
	}

	return s.GetByID(user.ID)
}

// Update applies a partial update. brand_access_ids, when present, replaces
// the full grant set.
func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != "" {
		if !models.ValidRole(req.Role) {
			return nil, response.NewBadRequest("invalid role")
		}
		updates["role"] = req.Role
	}
	if req.Location != "" {
		if !models.ValidLocation(req.Location) {
			return nil, response.NewBadRequest("invalid location")
		}
		updates["location"] = req.Location
	}
	if req.Password != "" {
		if user.AuthType != "local" {
			return nil, response.NewBadRequest("cannot set a password for LDAP users")
		}
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.BrandAccessIDs != nil {
			return s.replaceBrandAccess(tx, &user, *req.BrandAccessIDs)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// Deactivate disables a user's account. Accounts are never hard-deleted so
// created_by references stay intact.
func (s *UserService) Deactivate(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	return s.db.Model(&user).Update("is_active", false).Error
}

func (s *UserService) replaceBrandAccess(tx *gorm.DB, user *models.User, ids []uint) error {
	if ids == nil {
		ids = []uint{}
	}

	var brands []models.Brand
	if len(ids) > 0 {
		if err := tx.Find(&brands, ids).Error; err != nil {
			return err
		}
		if len(brands) != len(dedupe(ids)) {
			return response.NewBadRequest("one or more brands do not exist")
		}
	}

	return tx.Model(user).Association("BrandAccess").Replace(brands)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
