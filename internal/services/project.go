package services

import (
	"errors"
	"time"

	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db     *gorm.DB
	brands *BrandService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, brands: NewBrandService(db)}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	ClientID uint   `form:"client_id"`
	BrandID  uint   `form:"brand_id"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name           string  `json:"name" binding:"required"`
	ProjectNumber  string  `json:"project_number"`
	ClientID       uint    `json:"client_id" binding:"required"`
	Location       string  `json:"location"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	EstimatedValue float64 `json:"estimated_value"`
	StartDate      string  `json:"start_date"` // YYYY-MM-DD
	EndDate        string  `json:"end_date"`
	BrandIDs       []uint  `json:"brand_ids"`
	Notes          string  `json:"notes"`
}

type UpdateProjectRequest struct {
	Name           string   `json:"name"`
	ProjectNumber  string   `json:"project_number"`
	ClientID       *uint    `json:"client_id"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	EstimatedValue *float64 `json:"estimated_value"`
	StartDate      *string  `json:"start_date"` // YYYY-MM-DD, empty string clears
	EndDate        *string  `json:"end_date"`
	BrandIDs       *[]uint  `json:"brand_ids"` // absent: untouched, present: replaced
	Notes          string   `json:"notes"`
}

// parseDate accepts YYYY-MM-DD dates.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, response.NewBadRequest("invalid date, expected YYYY-MM-DD")
	}
	return &t, nil
}

// List returns paginated projects. Contractors only see projects they
// created; brand-scoped actors only see projects linked to a brand in their
// access set.
func (s *ProjectService) List(actor *Actor, req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var projects []models.Project
	var total int64

	query := s.db.Model(&models.Project{})

	if actor.OwnRowsOnly(EntityProject) {
		query = query.Where("created_by = ?", actor.ID)
	}
	if actor.BrandScoped() {
		if len(actor.BrandAccess) == 0 {
			return &ProjectListResponse{Page: req.Page, PageSize: req.PageSize, Items: []models.Project{}}, nil
		}
		query = query.Where("id IN (SELECT project_id FROM project_brands WHERE brand_id IN ?)", actor.BrandAccess)
	}

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR project_number LIKE ?", like, like)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.ClientID != 0 {
		query = query.Where("client_id = ?", req.ClientID)
	}
	if req.BrandID != 0 {
		query = query.Where("id IN (SELECT project_id FROM project_brands WHERE brand_id = ?)", req.BrandID)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Client").
		Preload("Brands", "is_active = ?", true).
		Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// GetByID returns a project with its client and active brands loaded.
func (s *ProjectService) GetByID(actor *Actor, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Client").
		Preload("Brands").
		Preload("Creator").
		First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !actor.CanSeeBrandRow(project.BrandIDs()) {
		return nil, response.NewAccessDenied()
	}

	// Deactivated brands stay in the row but are hidden from reads
	active := project.Brands[:0]
	for _, b := range project.Brands {
		if b.IsActive {
			active = append(active, b)
		}
	}
	project.Brands = active

	return &project, nil
}

// Create creates a new project linked to a client and a set of active brands.
func (s *ProjectService) Create(actor *Actor, req *CreateProjectRequest) (*models.Project, error) {
	if !actor.CanCreate(EntityProject) {
		return nil, response.NewAccessDenied()
	}

	if req.Status == "" {
		req.Status = models.ProjectStatusLead
	}
	if !models.ValidProjectStatus(req.Status) {
		return nil, response.NewBadRequest("invalid project status")
	}

	var clientCount int64
	s.db.Model(&models.Client{}).Where("id = ?", req.ClientID).Count(&clientCount)
	if clientCount == 0 {
		return nil, response.NewBadRequest("client does not exist")
	}

	brandIDs, err := s.brands.ActiveBrandIDs(req.BrandIDs)
	if err != nil {
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		Name:           req.Name,
		ProjectNumber:  req.ProjectNumber,
		ClientID:       req.ClientID,
		Location:       req.Location,
		Description:    req.Description,
		Status:         req.Status,
		EstimatedValue: req.EstimatedValue,
		StartDate:      startDate,
		EndDate:        endDate,
		Notes:          req.Notes,
		CreatedBy:      actor.ID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if len(brandIDs) > 0 {
			var brands []models.Brand
			if err := tx.Find(&brands, brandIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&project).Association("Brands").Append(brands); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetByID(actor, project.ID)
}

// Update applies a partial update. brand_ids, when present, replaces the
// full brand link set; when absent the links are untouched.
func (s *ProjectService) Update(actor *Actor, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !actor.CanMutate(EntityProject, project.CreatedBy) {
		return nil, response.NewAccessDenied()
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ProjectNumber != "" {
		updates["project_number"] = req.ProjectNumber
	}
	if req.ClientID != nil {
		var clientCount int64
		s.db.Model(&models.Client{}).Where("id = ?", *req.ClientID).Count(&clientCount)
		if clientCount == 0 {
			return nil, response.NewBadRequest("client does not exist")
		}
		updates["client_id"] = *req.ClientID
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Status != "" {
		if !models.ValidProjectStatus(req.Status) {
			return nil, response.NewBadRequest("invalid project status")
		}
		updates["status"] = req.Status
	}
	if req.EstimatedValue != nil {
		updates["estimated_value"] = *req.EstimatedValue
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		updates["start_date"] = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		updates["end_date"] = endDate
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	var brandIDs []uint
	replaceBrands := req.BrandIDs != nil
	if replaceBrands {
		ids, err := s.brands.ActiveBrandIDs(*req.BrandIDs)
		if err != nil {
			return nil, err
		}
		brandIDs = ids
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&project).Updates(updates).Error; err != nil {
				return err
			}
		}
		if replaceBrands {
			var brands []models.Brand
			if len(brandIDs) > 0 {
				if err := tx.Find(&brands, brandIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&project).Association("Brands").Replace(brands); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetByID(actor, id)
}

// Delete removes a project. Meetings that referenced it are detached, not
// deleted.
func (s *ProjectService) Delete(actor *Actor, id uint) error {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found")
		}
		return err
	}

	if !actor.CanMutate(EntityProject, project.CreatedBy) {
		return response.NewAccessDenied()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Meeting{}).
			Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_brands WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
