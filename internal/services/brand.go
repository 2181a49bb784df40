package services

import (
	"errors"

	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type BrandService struct {
	db *gorm.DB
}

func NewBrandService(db *gorm.DB) *BrandService {
	return &BrandService{db: db}
}

type BrandListRequest struct {
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search          string `form:"search"`
	Category        string `form:"category"`
	IncludeInactive bool   `form:"include_inactive"`
}

type BrandListResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []models.Brand `json:"items"`
}

type CreateBrandRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Website      string `json:"website"`
	ImageURL     string `json:"image_url"`
	LogoURL      string `json:"logo_url"`
	Notes        string `json:"notes"`
}

type UpdateBrandRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Website      string `json:"website"`
	ImageURL     string `json:"image_url"`
	LogoURL      string `json:"logo_url"`
	Notes        string `json:"notes"`
	IsActive     *bool  `json:"is_active"`
}

// List returns paginated brands. Deactivated brands only appear when the
// actor manages brands and asks for them; brand-scoped actors see only the
// brands in their access set.
func (s *BrandService) List(actor *Actor, req *BrandListRequest) (*BrandListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var brands []models.Brand
	var total int64

	query := s.db.Model(&models.Brand{})

	if !(req.IncludeInactive && actor.CanManageBrands()) {
		query = query.Where("is_active = ?", true)
	}
	if actor.BrandScoped() {
		if len(actor.BrandAccess) == 0 {
			return &BrandListResponse{Page: req.Page, PageSize: req.PageSize, Items: []models.Brand{}}, nil
		}
		query = query.Where("id IN ?", actor.BrandAccess)
	}
	if req.Search != "" {
		query = query.Where("name LIKE ?", "%"+req.Search+"%")
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}

	return &BrandListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    brands,
	}, nil
}

// GetByID returns a brand by ID, honoring brand scoping and the inactive
// filter for non-managers.
func (s *BrandService) GetByID(actor *Actor, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("brand not found")
		}
		return nil, err
	}

	if !actor.CanSeeBrandRow([]uint{brand.ID}) {
		return nil, response.NewAccessDenied()
	}
	if !brand.IsActive && !actor.CanManageBrands() {
		return nil, response.NewNotFound("brand not found")
	}

	return &brand, nil
}

// Create creates a new brand.
func (s *BrandService) Create(actor *Actor, req *CreateBrandRequest) (*models.Brand, error) {
	if !actor.CanManageBrands() {
		return nil, response.NewAccessDenied()
	}

	var count int64
	s.db.Model(&models.Brand{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("brand name already exists")
	}

	brand := models.Brand{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Website:      req.Website,
		ImageURL:     req.ImageURL,
		LogoURL:      req.LogoURL,
		Notes:        req.Notes,
		IsActive:     true,
		CreatedBy:    actor.ID,
	}

	if err := s.db.Create(&brand).Error; err != nil {
		return nil, err
	}

	return &brand, nil
}

// Update applies a partial update to a brand. Setting is_active=false
// deactivates it: historical rows keep referencing it but it disappears
// from reads and cannot be attached to new work.
func (s *BrandService) Update(actor *Actor, id uint, req *UpdateBrandRequest) (*models.Brand, error) {
	if !actor.CanManageBrands() {
		return nil, response.NewAccessDenied()
	}

	var brand models.Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("brand not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" && req.Name != brand.Name {
		var count int64
		s.db.Model(&models.Brand{}).Where("name = ? AND id <> ?", req.Name, id).Count(&count)
		if count > 0 {
			return nil, response.NewConflict("brand name already exists")
		}
		updates["name"] = req.Name
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ContactName != "" {
		updates["contact_name"] = req.ContactName
	}
	if req.ContactEmail != "" {
		updates["contact_email"] = req.ContactEmail
	}
	if req.ContactPhone != "" {
		updates["contact_phone"] = req.ContactPhone
	}
	if req.Website != "" {
		updates["website"] = req.Website
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.LogoURL != "" {
		updates["logo_url"] = req.LogoURL
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&brand).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &brand, nil
}

// Delete removes a brand outright. A brand that has been discussed in
// meetings cannot be deleted; deactivate it instead. Project links and user
// access grants are cleaned up in the same transaction.
func (s *BrandService) Delete(actor *Actor, id uint) error {
	if !actor.CanManageBrands() {
		return response.NewAccessDenied()
	}

	var brand models.Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("brand not found")
		}
		return err
	}

	var discussions int64
	s.db.Model(&models.BrandDiscussion{}).Where("brand_id = ?", id).Count(&discussions)
	if discussions > 0 {
		return response.NewConflict("brand has meeting history; deactivate it instead")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_brands WHERE brand_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_brand_access WHERE brand_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Brand{}, id).Error
	})
}

// ActiveBrandIDs validates that every id refers to an existing active brand
// and returns the deduplicated set.
func (s *BrandService) ActiveBrandIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	var count int64
	if err := s.db.Model(&models.Brand{}).
		Where("id IN ? AND is_active = ?", unique, true).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != int64(len(unique)) {
		return nil, response.NewBadRequest("one or more brands do not exist or are inactive")
	}

	return unique, nil
}
