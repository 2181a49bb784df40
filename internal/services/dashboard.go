package services

import (
	"time"

	"github.com/inexss/crm-backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	TotalClients     int64 `json:"total_clients"`
	ActiveProjects   int64 `json:"active_projects"`
	MeetingsThisWeek int64 `json:"meetings_this_week"`
	OpenActionItems  int64 `json:"open_action_items"`
}

type DashboardResponse struct {
	Stats            DashboardStats      `json:"stats"`
	UpcomingMeetings []models.Meeting    `json:"upcoming_meetings"`
	RecentMeetings   []models.Meeting    `json:"recent_meetings"`
	OverdueItems     []models.ActionItem `json:"overdue_items"`
}

// GetStats builds the landing page snapshot. Row visibility follows the
// same rules as the list endpoints.
func (s *DashboardService) GetStats(actor *Actor) (*DashboardResponse, error) {
	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, now.Location())

	var stats DashboardStats

	s.db.Model(&models.Client{}).Where("is_active = ?", true).Count(&stats.TotalClients)

	projectQuery := s.scopedProjects(actor)
	projectQuery.Where("status IN ?", []string{
		models.ProjectStatusLead, models.ProjectStatusQuoted,
		models.ProjectStatusInProgress, models.ProjectStatusOnHold,
	}).Count(&stats.ActiveProjects)

	meetingQuery := s.scopedMeetings(actor)
	meetingQuery.Where("meeting_date >= ? AND meeting_date < ?", weekStart, weekStart.AddDate(0, 0, 7)).
		Count(&stats.MeetingsThisWeek)

	s.db.Model(&models.ActionItem{}).Where("completed = ?", false).Count(&stats.OpenActionItems)

	var upcoming []models.Meeting
	s.scopedMeetings(actor).
		Preload("Client").
		Where("meeting_date >= ? AND status = ?", now, models.MeetingStatusScheduled).
		Order("meeting_date ASC").Limit(5).Find(&upcoming)

	var recent []models.Meeting
	s.scopedMeetings(actor).
		Preload("Client").
		Where("meeting_date < ?", now).
		Order("meeting_date DESC").Limit(5).Find(&recent)

	var overdue []models.ActionItem
	s.db.Preload("Assignee").
		Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, now).
		Order("due_date ASC").Limit(10).Find(&overdue)

	return &DashboardResponse{
		Stats:            stats,
		UpcomingMeetings: upcoming,
		RecentMeetings:   recent,
		OverdueItems:     overdue,
	}, nil
}

func (s *DashboardService) scopedMeetings(actor *Actor) *gorm.DB {
	query := s.db.Model(&models.Meeting{})
	if actor.OwnRowsOnly(EntityMeeting) {
		query = query.Where("created_by = ?", actor.ID)
	}
	if actor.BrandScoped() {
		if len(actor.BrandAccess) == 0 {
			return query.Where("1 = 0")
		}
		query = query.Where("id IN (SELECT meeting_id FROM brand_discussions WHERE brand_id IN ?)", actor.BrandAccess)
	}
	return query
}

func (s *DashboardService) scopedProjects(actor *Actor) *gorm.DB {
	query := s.db.Model(&models.Project{})
	if actor.OwnRowsOnly(EntityProject) {
		query = query.Where("created_by = ?", actor.ID)
	}
	if actor.BrandScoped() {
		if len(actor.BrandAccess) == 0 {
			return query.Where("1 = 0")
		}
		query = query.Where("id IN (SELECT project_id FROM project_brands WHERE brand_id IN ?)", actor.BrandAccess)
	}
	return query
}
