package services

import (
	"errors"

	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type MeetingService struct {
	db     *gorm.DB
	brands *BrandService
}

func NewMeetingService(db *gorm.DB) *MeetingService {
	return &MeetingService{db: db, brands: NewBrandService(db)}
}

type MeetingListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	StartDate string `form:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string `form:"end_date"`   // YYYY-MM-DD, inclusive
	ClientID  uint   `form:"client_id"`
	ProjectID uint   `form:"project_id"`
	BrandID   uint   `form:"brand_id"`
	Status    string `form:"status"`
}

type MeetingListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Meeting `json:"items"`
}

type BrandDiscussionInput struct {
	BrandID        uint    `json:"brand_id" binding:"required"`
	IsRequired     bool    `json:"is_required"`
	Notes          string  `json:"notes"`
	EstimatedValue float64 `json:"estimated_value"`
}

type ActionItemInput struct {
	Description string `json:"description" binding:"required"`
	AssignedTo  *uint  `json:"assigned_to"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD
	Completed   bool   `json:"completed"`
}

type CreateMeetingRequest struct {
	ClientID         uint                   `json:"client_id" binding:"required"`
	ProjectID        *uint                  `json:"project_id"`
	MeetingDate      string                 `json:"meeting_date" binding:"required"` // YYYY-MM-DD
	Location         string                 `json:"location"`
	Attendees        string                 `json:"attendees"`
	Summary          string                 `json:"summary"`
	Status           string                 `json:"status"`
	FollowUpDate     string                 `json:"follow_up_date"`
	BrandDiscussions []BrandDiscussionInput `json:"brand_discussions"`
	ActionItems      []ActionItemInput      `json:"action_items"`
}

// UpdateMeetingRequest is a partial update. The child collections are
// pointer-to-slice so "key absent" (leave children untouched) can be told
// apart from "key present but empty" (delete all children).
type UpdateMeetingRequest struct {
	ClientID         *uint                   `json:"client_id"`
	ProjectID        *uint                   `json:"project_id"`
	MeetingDate      string                  `json:"meeting_date"`
	Location         string                  `json:"location"`
	Attendees        string                  `json:"attendees"`
	Summary          string                  `json:"summary"`
	Status           string                  `json:"status"`
	FollowUpDate     *string                 `json:"follow_up_date"` // empty string clears
	BrandDiscussions *[]BrandDiscussionInput `json:"brand_discussions"`
	ActionItems      *[]ActionItemInput      `json:"action_items"`
}

// List returns paginated meetings newest first. Contractors only see
// meetings they created; brand-scoped actors only see meetings that
// discussed a brand in their access set.
func (s *MeetingService) List(actor *Actor, req *MeetingListRequest) (*MeetingListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var meetings []models.Meeting
	var total int64

	query := s.db.Model(&models.Meeting{})

	if actor.OwnRowsOnly(EntityMeeting) {
		query = query.Where("created_by = ?", actor.ID)
	}
	if actor.BrandScoped() {
		if len(actor.BrandAccess) == 0 {
			return &MeetingListResponse{Page: req.Page, PageSize: req.PageSize, Items: []models.Meeting{}}, nil
		}
		query = query.Where("id IN (SELECT meeting_id FROM brand_discussions WHERE brand_id IN ?)", actor.BrandAccess)
	}

	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		query = query.Where("meeting_date >= ?", start)
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		// inclusive of the whole end day
		query = query.Where("meeting_date < ?", end.AddDate(0, 0, 1))
	}
	if req.ClientID != 0 {
		query = query.Where("client_id = ?", req.ClientID)
	}
	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.BrandID != 0 {
		query = query.Where("id IN (SELECT meeting_id FROM brand_discussions WHERE brand_id = ?)", req.BrandID)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Client").
		Preload("BrandDiscussions.Brand", "is_active = ?", true).
		Preload("ActionItems").
		Offset(offset).Limit(req.PageSize).
		Order("meeting_date DESC, id DESC").Find(&meetings).Error; err != nil {
		return nil, err
	}

	for i := range meetings {
		hideInactiveBrandDiscussions(&meetings[i])
	}

	return &MeetingListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    meetings,
	}, nil
}

// GetByID returns the full meeting aggregate.
func (s *MeetingService) GetByID(actor *Actor, id uint) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := s.db.Preload("Client").
		Preload("Project").
		Preload("Creator").
		Preload("BrandDiscussions.Brand").
		Preload("ActionItems.Assignee").
		First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("meeting not found")
		}
		return nil, err
	}

	if !actor.CanSeeBrandRow(meeting.DiscussedBrandIDs()) {
		return nil, response.NewAccessDenied()
	}

	hideInactiveBrandDiscussions(&meeting)

	return &meeting, nil
}

// hideInactiveBrandDiscussions drops discussion rows whose brand has been
// deactivated. The rows stay in the database, they are just not shown.
func hideInactiveBrandDiscussions(m *models.Meeting) {
	kept := m.BrandDiscussions[:0]
	for _, bd := range m.BrandDiscussions {
		if bd.Brand != nil && bd.Brand.IsActive {
			kept = append(kept, bd)
		}
	}
	m.BrandDiscussions = kept
}

// Create writes the full meeting aggregate in one transaction. If any child
// row is invalid, nothing is written.
func (s *MeetingService) Create(actor *Actor, req *CreateMeetingRequest) (*models.Meeting, error) {
	if !actor.CanCreate(EntityMeeting) {
		return nil, response.NewAccessDenied()
	}

	if req.Status == "" {
		req.Status = models.MeetingStatusScheduled
	}
	if !models.ValidMeetingStatus(req.Status) {
		return nil, response.NewBadRequest("invalid meeting status")
	}

	var clientCount int64
	s.db.Model(&models.Client{}).Where("id = ?", req.ClientID).Count(&clientCount)
	if clientCount == 0 {
		return nil, response.NewBadRequest("client does not exist")
	}
	if req.ProjectID != nil {
		var projectCount int64
		s.db.Model(&models.Project{}).Where("id = ?", *req.ProjectID).Count(&projectCount)
		if projectCount == 0 {
			return nil, response.NewBadRequest("project does not exist")
		}
	}

	meetingDate, err := parseDate(req.MeetingDate)
	if err != nil {
		return nil, err
	}
	followUpDate, err := parseDate(req.FollowUpDate)
	if err != nil {
		return nil, err
	}

	discussions, err := s.buildDiscussions(req.BrandDiscussions)
	if err != nil {
		return nil, err
	}
	items, err := s.buildActionItems(req.ActionItems)
	if err != nil {
		return nil, err
	}

	meeting := models.Meeting{
		ClientID:     req.ClientID,
		ProjectID:    req.ProjectID,
		MeetingDate:  *meetingDate,
		Location:     req.Location,
		Attendees:    req.Attendees,
		Summary:      req.Summary,
		Status:       req.Status,
		FollowUpDate: followUpDate,
		CreatedBy:    actor.ID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meeting).Error; err != nil {
			return err
		}
		return s.insertChildren(tx, meeting.ID, discussions, items)
	}); err != nil {
		return nil, err
	}

	return s.GetByID(actor, meeting.ID)
}

// Update applies a partial update to the aggregate in one transaction.
// A child collection present in the request replaces the stored collection
// wholesale, even when empty; an absent collection is left untouched.
func (s *MeetingService) Update(actor *Actor, id uint, req *UpdateMeetingRequest) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := s.db.First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("meeting not found")
		}
		return nil, err
	}

	if !actor.CanMutate(EntityMeeting, meeting.CreatedBy) {
		return nil, response.NewAccessDenied()
	}

	updates := make(map[string]interface{})

	if req.ClientID != nil {
		var clientCount int64
		s.db.Model(&models.Client{}).Where("id = ?", *req.ClientID).Count(&clientCount)
		if clientCount == 0 {
			return nil, response.NewBadRequest("client does not exist")
		}
		updates["client_id"] = *req.ClientID
	}
	if req.ProjectID != nil {
		if *req.ProjectID == 0 {
			updates["project_id"] = nil
		} else {
			var projectCount int64
			s.db.Model(&models.Project{}).Where("id = ?", *req.ProjectID).Count(&projectCount)
			if projectCount == 0 {
				return nil, response.NewBadRequest("project does not exist")
			}
			updates["project_id"] = *req.ProjectID
		}
	}
	if req.MeetingDate != "" {
		meetingDate, err := parseDate(req.MeetingDate)
		if err != nil {
			return nil, err
		}
		updates["meeting_date"] = *meetingDate
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Attendees != "" {
		updates["attendees"] = req.Attendees
	}
	if req.Summary != "" {
		updates["summary"] = req.Summary
	}
	if req.Status != "" {
		if !models.ValidMeetingStatus(req.Status) {
			return nil, response.NewBadRequest("invalid meeting status")
		}
		updates["status"] = req.Status
	}
	if req.FollowUpDate != nil {
		followUpDate, err := parseDate(*req.FollowUpDate)
		if err != nil {
			return nil, err
		}
		updates["follow_up_date"] = followUpDate
	}

	var discussions []models.BrandDiscussion
	if req.BrandDiscussions != nil {
		d, err := s.buildDiscussions(*req.BrandDiscussions)
		if err != nil {
			return nil, err
		}
		discussions = d
	}
	var items []models.ActionItem
	if req.ActionItems != nil {
		a, err := s.buildActionItems(*req.ActionItems)
		if err != nil {
			return nil, err
		}
		items = a
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&meeting).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.BrandDiscussions != nil {
			if err := tx.Where("meeting_id = ?", id).Delete(&models.BrandDiscussion{}).Error; err != nil {
				return err
			}
			if err := s.insertChildren(tx, id, discussions, nil); err != nil {
				return err
			}
		}
		if req.ActionItems != nil {
			if err := tx.Where("meeting_id = ?", id).Delete(&models.ActionItem{}).Error; err != nil {
				return err
			}
			if err := s.insertChildren(tx, id, nil, items); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetByID(actor, id)
}

// Delete removes a meeting and cascades to its discussions and action items.
func (s *MeetingService) Delete(actor *Actor, id uint) error {
	var meeting models.Meeting
	if err := s.db.First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("meeting not found")
		}
		return err
	}

	if !actor.CanMutate(EntityMeeting, meeting.CreatedBy) {
		return response.NewAccessDenied()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&models.BrandDiscussion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meeting_id = ?", id).Delete(&models.ActionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meeting{}, id).Error
	})
}

// CompleteActionItem flips an action item's completed flag without going
// through a full aggregate update.
func (s *MeetingService) CompleteActionItem(actor *Actor, meetingID, itemID uint, completed bool) (*models.ActionItem, error) {
	var meeting models.Meeting
	if err := s.db.First(&meeting, meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("meeting not found")
		}
		return nil, err
	}

	if !actor.CanMutate(EntityMeeting, meeting.CreatedBy) {
		return nil, response.NewAccessDenied()
	}

	var item models.ActionItem
	if err := s.db.Where("id = ? AND meeting_id = ?", itemID, meetingID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("action item not found")
		}
		return nil, err
	}

	if err := s.db.Model(&item).Update("completed", completed).Error; err != nil {
		return nil, err
	}
	item.Completed = completed

	return &item, nil
}

func (s *MeetingService) buildDiscussions(inputs []BrandDiscussionInput) ([]models.BrandDiscussion, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.BrandID] {
			return nil, response.NewBadRequest("duplicate brand in discussions")
		}
		seen[in.BrandID] = true
		ids = append(ids, in.BrandID)
	}

	if _, err := s.brands.ActiveBrandIDs(ids); err != nil {
		return nil, err
	}

	discussions := make([]models.BrandDiscussion, 0, len(inputs))
	for _, in := range inputs {
		discussions = append(discussions, models.BrandDiscussion{
			BrandID:        in.BrandID,
			IsRequired:     in.IsRequired,
			Notes:          in.Notes,
			EstimatedValue: in.EstimatedValue,
		})
	}
	return discussions, nil
}

func (s *MeetingService) buildActionItems(inputs []ActionItemInput) ([]models.ActionItem, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	items := make([]models.ActionItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Description == "" {
			return nil, response.NewBadRequest("action item description required")
		}
		if in.AssignedTo != nil {
			var count int64
			s.db.Model(&models.User{}).Where("id = ?", *in.AssignedTo).Count(&count)
			if count == 0 {
				return nil, response.NewBadRequest("assignee does not exist")
			}
		}
		dueDate, err := parseDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		items = append(items, models.ActionItem{
			Description: in.Description,
			AssignedTo:  in.AssignedTo,
			DueDate:     dueDate,
			Completed:   in.Completed,
		})
	}
	return items, nil
}

func (s *MeetingService) insertChildren(tx *gorm.DB, meetingID uint, discussions []models.BrandDiscussion, items []models.ActionItem) error {
	for i := range discussions {
		discussions[i].MeetingID = meetingID
	}
	for i := range items {
		items[i].MeetingID = meetingID
	}
	if len(discussions) > 0 {
		if err := tx.Create(&discussions).Error; err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}
