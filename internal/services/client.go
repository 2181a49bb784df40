package services

import (
	"errors"

	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

type ClientListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Type     string `form:"type"`
	City     string `form:"city"`
}

type ClientListResponse struct {
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Items    []models.Client `json:"items"`
}

type CreateClientRequest struct {
	Name       string `json:"name" binding:"required"`
	Company    string `json:"company"`
	Type       string `json:"type" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

type UpdateClientRequest struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Type       string `json:"type"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
	IsActive   *bool  `json:"is_active"`
}

// List returns paginated clients. All roles see the full client book; only
// writes are restricted.
func (s *ClientService) List(req *ClientListRequest) (*ClientListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var clients []models.Client
	var total int64

	query := s.db.Model(&models.Client{})

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR company LIKE ? OR email LIKE ?", like, like, like)
	}
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.City != "" {
		query = query.Where("city = ?", req.City)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}

	return &ClientListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    clients,
	}, nil
}

// GetByID returns a client by ID.
func (s *ClientService) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}
	return &client, nil
}

// Create creates a new client.
func (s *ClientService) Create(actor *Actor, req *CreateClientRequest) (*models.Client, error) {
	if !actor.CanCreate(EntityClient) {
		return nil, response.NewAccessDenied()
	}
	if !models.ValidClientType(req.Type) {
		return nil, response.NewBadRequest("invalid client type")
	}

	client := models.Client{
		Name:       req.Name,
		Company:    req.Company,
		Type:       req.Type,
		Email:      req.Email,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
		IsActive:   true,
		CreatedBy:  actor.ID,
	}

	if err := s.db.Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// Update applies a partial update to a client.
func (s *ClientService) Update(actor *Actor, id uint, req *UpdateClientRequest) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}

	if !actor.CanMutate(EntityClient, client.CreatedBy) {
		return nil, response.NewAccessDenied()
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Company != "" {
		updates["company"] = req.Company
	}
	if req.Type != "" {
		if !models.ValidClientType(req.Type) {
			return nil, response.NewBadRequest("invalid client type")
		}
		updates["type"] = req.Type
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Street != "" {
		updates["street"] = req.Street
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Province != "" {
		updates["province"] = req.Province
	}
	if req.PostalCode != "" {
		updates["postal_code"] = req.PostalCode
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&client).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// Delete removes a client. A client that still has meetings or projects
// attached cannot be deleted.
func (s *ClientService) Delete(actor *Actor, id uint) error {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("client not found")
		}
		return err
	}

	if !actor.CanMutate(EntityClient, client.CreatedBy) {
		return response.NewAccessDenied()
	}

	var meetings int64
	s.db.Model(&models.Meeting{}).Where("client_id = ?", id).Count(&meetings)
	if meetings > 0 {
		return response.NewConflict("client has meetings and cannot be deleted")
	}

	var projects int64
	s.db.Model(&models.Project{}).Where("client_id = ?", id).Count(&projects)
	if projects > 0 {
		return response.NewConflict("client has projects and cannot be deleted")
	}

	return s.db.Delete(&models.Client{}, id).Error
}
