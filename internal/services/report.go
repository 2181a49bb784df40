package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type ReportRequest struct {
	StartDate string `form:"start_date" binding:"required"` // YYYY-MM-DD, inclusive
	EndDate   string `form:"end_date" binding:"required"`   // YYYY-MM-DD, inclusive
	BrandID   *uint  `form:"brand_id"`
}

type BrandStat struct {
	BrandID        uint    `json:"brand_id"`
	BrandName      string  `json:"brand_name"`
	Discussions    int     `json:"discussions"`
	Required       int     `json:"required"`
	EstimatedValue float64 `json:"estimated_value"`
}

type ClientStat struct {
	ClientID        uint   `json:"client_id"`
	ClientName      string `json:"client_name"`
	Meetings        int    `json:"meetings"`
	BrandsDiscussed int    `json:"brands_discussed"` // distinct brands across the client's meetings
}

type ReportSummary struct {
	StartDate            string       `json:"start_date"`
	EndDate              string       `json:"end_date"`
	TotalMeetings        int          `json:"total_meetings"`
	UniqueClients        int          `json:"unique_clients"`
	UniqueBrands         int          `json:"unique_brands"`
	TotalDiscussions     int          `json:"total_discussions"`
	RequiredDiscussions  int          `json:"required_discussions"`
	HitRatePercent       int          `json:"hit_rate_percent"`
	TotalEstimatedValue  float64      `json:"total_estimated_value"`
	BrandBreakdown       []BrandStat  `json:"brand_breakdown"`
	ClientBreakdown      []ClientStat `json:"client_breakdown"`
	ProjectsStarted      int          `json:"projects_started"`
	ProjectsStartedValue float64      `json:"projects_started_value"`
}

// Summary builds the activity report for a date range. The actor's normal
// row visibility applies: a brand-scoped actor reports only on meetings that
// discussed their brands.
func (s *ReportService) Summary(actor *Actor, req *ReportRequest) (*ReportSummary, error) {
	meetings, err := s.fetchMeetings(actor, req)
	if err != nil {
		return nil, err
	}

	summary := summarize(meetings)
	summary.StartDate = req.StartDate
	summary.EndDate = req.EndDate

	// Project starts are counted independently of meeting activity
	started, startedValue, err := s.projectStarts(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	summary.ProjectsStarted = started
	summary.ProjectsStartedValue = startedValue

	return summary, nil
}

// MonthlyReport covers one calendar month. Only Completed meetings count;
// scheduled and cancelled ones are activity that has not happened.
type MonthlyReport struct {
	Year               int            `json:"year"`
	Month              int            `json:"month"`
	Summary            *ReportSummary `json:"summary"`
	MeetingsByLocation map[string]int `json:"meetings_by_location"`
}

// Monthly builds the report for one calendar month.
func (s *ReportService) Monthly(actor *Actor, year, month int, brandID *uint) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, response.NewBadRequest("invalid month")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	req := &ReportRequest{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		BrandID:   brandID,
	}

	meetings, err := s.fetchMeetings(actor, req)
	if err != nil {
		return nil, err
	}
	completed := completedOnly(meetings)

	summary := summarize(completed)
	summary.StartDate = req.StartDate
	summary.EndDate = req.EndDate

	started, startedValue, err := s.projectStarts(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	summary.ProjectsStarted = started
	summary.ProjectsStartedValue = startedValue

	return &MonthlyReport{
		Year:               year,
		Month:              month,
		Summary:            summary,
		MeetingsByLocation: meetingsByLocation(completed),
	}, nil
}

func completedOnly(meetings []models.Meeting) []models.Meeting {
	out := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m.Status == models.MeetingStatusCompleted {
			out = append(out, m)
		}
	}
	return out
}

func meetingsByLocation(meetings []models.Meeting) map[string]int {
	byLocation := make(map[string]int)
	for _, m := range meetings {
		loc := m.Location
		if loc == "" {
			loc = "Unspecified"
		}
		byLocation[loc]++
	}
	return byLocation
}

// FetchMeetings exposes the filtered meeting set for the CSV detail section.
func (s *ReportService) FetchMeetings(actor *Actor, req *ReportRequest) ([]models.Meeting, error) {
	return s.fetchMeetings(actor, req)
}

func (s *ReportService) fetchMeetings(actor *Actor, req *ReportRequest) ([]models.Meeting, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(*start) {
		return nil, response.NewBadRequest("end_date is before start_date")
	}

	query := s.db.Model(&models.Meeting{}).
		Where("meeting_date >= ? AND meeting_date < ?", start, end.AddDate(0, 0, 1))

	if actor.OwnRowsOnly(EntityMeeting) {
		query = query.Where("created_by = ?", actor.ID)
	}
	if actor.BrandScoped() {
		if len(actor.BrandAccess) == 0 {
			return nil, nil
		}
		query = query.Where("id IN (SELECT meeting_id FROM brand_discussions WHERE brand_id IN ?)", actor.BrandAccess)
	}
	if req.BrandID != nil {
		query = query.Where("id IN (SELECT meeting_id FROM brand_discussions WHERE brand_id = ?)", *req.BrandID)
	}

	var meetings []models.Meeting
	if err := query.Preload("Client").
		Preload("BrandDiscussions.Brand").
		Order("meeting_date ASC, id ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}

	return meetings, nil
}

func (s *ReportService) projectStarts(startDate, endDate string) (int, float64, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return 0, 0, err
	}

	var projects []models.Project
	if err := s.db.
		Where("start_date >= ? AND start_date < ?", start, end.AddDate(0, 0, 1)).
		Find(&projects).Error; err != nil {
		return 0, 0, err
	}

	total := 0.0
	for _, p := range projects {
		total += p.EstimatedValue
	}
	return len(projects), total, nil
}

// summarize computes the aggregate counters over an already-filtered meeting
// set. It is a pure function over its input.
func summarize(meetings []models.Meeting) *ReportSummary {
	summary := &ReportSummary{
		TotalMeetings:   len(meetings),
		BrandBreakdown:  []BrandStat{},
		ClientBreakdown: []ClientStat{},
	}

	for _, m := range meetings {
		for _, bd := range m.BrandDiscussions {
			summary.TotalDiscussions++
			if bd.IsRequired {
				summary.RequiredDiscussions++
			}
			summary.TotalEstimatedValue += bd.EstimatedValue
		}
	}

	summary.HitRatePercent = hitRate(summary.RequiredDiscussions, summary.TotalDiscussions)
	summary.BrandBreakdown = brandBreakdown(meetings)
	summary.ClientBreakdown = clientBreakdown(meetings)
	summary.UniqueClients = len(summary.ClientBreakdown)
	summary.UniqueBrands = len(summary.BrandBreakdown)

	return summary
}

// hitRate is the share of discussions that were specified-product
// discussions, as a rounded whole percentage. Zero discussions yield zero,
// not a division error.
func hitRate(required, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(required) / float64(total) * 100))
}

// brandBreakdown groups discussions per brand, most-discussed first. Ties
// break on brand name for a stable order.
func brandBreakdown(meetings []models.Meeting) []BrandStat {
	byBrand := make(map[uint]*BrandStat)

	for _, m := range meetings {
		for _, bd := range m.BrandDiscussions {
			stat, ok := byBrand[bd.BrandID]
			if !ok {
				name := fmt.Sprintf("brand %d", bd.BrandID)
				if bd.Brand != nil {
					name = bd.Brand.Name
				}
				stat = &BrandStat{BrandID: bd.BrandID, BrandName: name}
				byBrand[bd.BrandID] = stat
			}
			stat.Discussions++
			if bd.IsRequired {
				stat.Required++
			}
			stat.EstimatedValue += bd.EstimatedValue
		}
	}

	stats := make([]BrandStat, 0, len(byBrand))
	for _, stat := range byBrand {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Discussions != stats[j].Discussions {
			return stats[i].Discussions > stats[j].Discussions
		}
		return stats[i].BrandName < stats[j].BrandName
	})

	return stats
}

// clientBreakdown groups meetings per client, most-visited first.
func clientBreakdown(meetings []models.Meeting) []ClientStat {
	byClient := make(map[uint]*ClientStat)
	brandsByClient := make(map[uint]map[uint]bool)

	for _, m := range meetings {
		stat, ok := byClient[m.ClientID]
		if !ok {
			name := fmt.Sprintf("client %d", m.ClientID)
			if m.Client != nil {
				name = m.Client.Name
			}
			stat = &ClientStat{ClientID: m.ClientID, ClientName: name}
			byClient[m.ClientID] = stat
			brandsByClient[m.ClientID] = make(map[uint]bool)
		}
		stat.Meetings++
		for _, bd := range m.BrandDiscussions {
			brandsByClient[m.ClientID][bd.BrandID] = true
		}
	}

	stats := make([]ClientStat, 0, len(byClient))
	for _, stat := range byClient {
		stat.BrandsDiscussed = len(brandsByClient[stat.ClientID])
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Meetings != stats[j].Meetings {
			return stats[i].Meetings > stats[j].Meetings
		}
		return stats[i].ClientName < stats[j].ClientName
	})

	return stats
}

// BuildCSV renders the report as CSV with three sections: the summary
// counters, the per-brand breakdown, and one row per meeting/discussion
// pair. Sections are separated by blank rows.
func BuildCSV(summary *ReportSummary, meetings []models.Meeting) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Report Period", summary.StartDate, summary.EndDate},
		{"Total Meetings", strconv.Itoa(summary.TotalMeetings)},
		{"Distinct Clients", strconv.Itoa(summary.UniqueClients)},
		{"Distinct Brands", strconv.Itoa(summary.UniqueBrands)},
		{"Total Brand Discussions", strconv.Itoa(summary.TotalDiscussions)},
		{"Specified Discussions", strconv.Itoa(summary.RequiredDiscussions)},
		{"Hit Rate %", strconv.Itoa(summary.HitRatePercent)},
		{"Total Estimated Value", formatValue(summary.TotalEstimatedValue)},
		{"Projects Started", strconv.Itoa(summary.ProjectsStarted)},
		{"Projects Started Value", formatValue(summary.ProjectsStartedValue)},
		{},
		{"Brand", "Discussions", "Specified", "Estimated Value"},
	}
	for _, stat := range summary.BrandBreakdown {
		rows = append(rows, []string{
			stat.BrandName,
			strconv.Itoa(stat.Discussions),
			strconv.Itoa(stat.Required),
			formatValue(stat.EstimatedValue),
		})
	}

	rows = append(rows, []string{},
		[]string{"Date", "Client", "Status", "Brand", "Specified", "Estimated Value", "Notes"})
	for _, m := range meetings {
		clientName := fmt.Sprintf("client %d", m.ClientID)
		if m.Client != nil {
			clientName = m.Client.Name
		}
		date := m.MeetingDate.Format("2006-01-02")

		if len(m.BrandDiscussions) == 0 {
			rows = append(rows, []string{date, clientName, m.Status, "", "", "", ""})
			continue
		}
		for _, bd := range m.BrandDiscussions {
			brandName := fmt.Sprintf("brand %d", bd.BrandID)
			if bd.Brand != nil {
				brandName = bd.Brand.Name
			}
			specified := "no"
			if bd.IsRequired {
				specified = "yes"
			}
			rows = append(rows, []string{
				date, clientName, m.Status, brandName, specified,
				formatValue(bd.EstimatedValue), bd.Notes,
			})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
