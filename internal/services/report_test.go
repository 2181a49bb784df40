package services

import (
	"strings"
	"testing"
	"time"

	"github.com/inexss/crm-backend/internal/models"
)

func TestHitRate(t *testing.T) {
	tests := []struct {
		name     string
		required int
		total    int
		expected int
	}{
		{"no discussions", 0, 0, 0},
		{"none specified", 0, 10, 0},
		{"all specified", 10, 10, 100},
		{"quarter", 1, 4, 25},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"rounds half up", 1, 8, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hitRate(tt.required, tt.total); got != tt.expected {
				t.Errorf("hitRate(%d, %d) = %d, expected %d", tt.required, tt.total, got, tt.expected)
			}
		})
	}
}

func sampleMeetings() []models.Meeting {
	date := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	alpha := &models.Brand{ID: 1, Name: "AlphaSeal"}
	beta := &models.Brand{ID: 2, Name: "BetaFix"}

	return []models.Meeting{
		{
			ID:          1,
			ClientID:    10,
			Client:      &models.Client{ID: 10, Name: "Acme Construction"},
			MeetingDate: date,
			Status:      models.MeetingStatusCompleted,
			BrandDiscussions: []models.BrandDiscussion{
				{BrandID: 1, Brand: alpha, IsRequired: true, EstimatedValue: 5000},
				{BrandID: 2, Brand: beta, IsRequired: false, EstimatedValue: 1200},
			},
		},
		{
			ID:          2,
			ClientID:    10,
			Client:      &models.Client{ID: 10, Name: "Acme Construction"},
			MeetingDate: date.AddDate(0, 0, 1),
			Status:      models.MeetingStatusCompleted,
			BrandDiscussions: []models.BrandDiscussion{
				{BrandID: 1, Brand: alpha, IsRequired: false, EstimatedValue: 800},
			},
		},
		{
			ID:          3,
			ClientID:    11,
			Client:      &models.Client{ID: 11, Name: "BuildRight"},
			MeetingDate: date.AddDate(0, 0, 2),
			Status:      models.MeetingStatusScheduled,
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := summarize(sampleMeetings())

	if summary.TotalMeetings != 3 {
		t.Errorf("TotalMeetings = %d, expected 3", summary.TotalMeetings)
	}
	if summary.TotalDiscussions != 3 {
		t.Errorf("TotalDiscussions = %d, expected 3", summary.TotalDiscussions)
	}
	if summary.RequiredDiscussions != 1 {
		t.Errorf("RequiredDiscussions = %d, expected 1", summary.RequiredDiscussions)
	}
	if summary.HitRatePercent != 33 {
		t.Errorf("HitRatePercent = %d, expected 33", summary.HitRatePercent)
	}
	if summary.TotalEstimatedValue != 7000 {
		t.Errorf("TotalEstimatedValue = %v, expected 7000", summary.TotalEstimatedValue)
	}
	if summary.UniqueClients != 2 {
		t.Errorf("UniqueClients = %d, expected 2", summary.UniqueClients)
	}
	if summary.UniqueBrands != 2 {
		t.Errorf("UniqueBrands = %d, expected 2", summary.UniqueBrands)
	}
}

func TestCompletedOnly(t *testing.T) {
	got := completedOnly(sampleMeetings())
	if len(got) != 2 {
		t.Fatalf("expected 2 completed meetings, got %d", len(got))
	}
	for _, m := range got {
		if m.Status != models.MeetingStatusCompleted {
			t.Errorf("non-completed meeting in result: %q", m.Status)
		}
	}

	if len(completedOnly(nil)) != 0 {
		t.Error("completedOnly(nil) should be empty")
	}
}

func TestMeetingsByLocation(t *testing.T) {
	meetings := []models.Meeting{
		{Location: "Sandton office"},
		{Location: "Sandton office"},
		{Location: ""},
	}

	byLoc := meetingsByLocation(meetings)
	if byLoc["Sandton office"] != 2 {
		t.Errorf("Sandton office = %d, expected 2", byLoc["Sandton office"])
	}
	if byLoc["Unspecified"] != 1 {
		t.Errorf("Unspecified = %d, expected 1", byLoc["Unspecified"])
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := summarize(nil)

	if summary.TotalMeetings != 0 || summary.TotalDiscussions != 0 {
		t.Errorf("empty input should yield zero counts, got %+v", summary)
	}
	if summary.HitRatePercent != 0 {
		t.Errorf("HitRatePercent = %d, expected 0", summary.HitRatePercent)
	}
	if summary.BrandBreakdown == nil || summary.ClientBreakdown == nil {
		t.Error("breakdowns should be empty slices, not nil")
	}
}

func TestBrandBreakdown(t *testing.T) {
	stats := brandBreakdown(sampleMeetings())

	if len(stats) != 2 {
		t.Fatalf("expected 2 brand stats, got %d", len(stats))
	}

	// AlphaSeal has two discussions and sorts first.
	if stats[0].BrandName != "AlphaSeal" {
		t.Errorf("stats[0] = %q, expected AlphaSeal", stats[0].BrandName)
	}
	if stats[0].Discussions != 2 || stats[0].Required != 1 {
		t.Errorf("AlphaSeal stats = %+v", stats[0])
	}
	if stats[0].EstimatedValue != 5800 {
		t.Errorf("AlphaSeal EstimatedValue = %v, expected 5800", stats[0].EstimatedValue)
	}

	if stats[1].BrandName != "BetaFix" || stats[1].Discussions != 1 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestBrandBreakdown_TieBreaksOnName(t *testing.T) {
	meetings := []models.Meeting{
		{
			ClientID: 1,
			BrandDiscussions: []models.BrandDiscussion{
				{BrandID: 2, Brand: &models.Brand{ID: 2, Name: "Zinc"}},
				{BrandID: 1, Brand: &models.Brand{ID: 1, Name: "Anchor"}},
			},
		},
	}

	stats := brandBreakdown(meetings)
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(stats))
	}
	if stats[0].BrandName != "Anchor" || stats[1].BrandName != "Zinc" {
		t.Errorf("tied brands should sort by name, got %q then %q", stats[0].BrandName, stats[1].BrandName)
	}
}

func TestClientBreakdown(t *testing.T) {
	stats := clientBreakdown(sampleMeetings())

	if len(stats) != 2 {
		t.Fatalf("expected 2 client stats, got %d", len(stats))
	}
	if stats[0].ClientName != "Acme Construction" || stats[0].Meetings != 2 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[0].BrandsDiscussed != 2 {
		t.Errorf("Acme BrandsDiscussed = %d, expected 2", stats[0].BrandsDiscussed)
	}
	if stats[1].ClientName != "BuildRight" || stats[1].Meetings != 1 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
	if stats[1].BrandsDiscussed != 0 {
		t.Errorf("BuildRight BrandsDiscussed = %d, expected 0", stats[1].BrandsDiscussed)
	}
}

func TestBuildCSV(t *testing.T) {
	meetings := sampleMeetings()
	summary := summarize(meetings)
	summary.StartDate = "2026-03-01"
	summary.EndDate = "2026-03-31"

	out, err := BuildCSV(summary, meetings)
	if err != nil {
		t.Fatalf("BuildCSV() error = %v", err)
	}

	csvText := string(out)
	lines := strings.Split(strings.TrimRight(csvText, "\n"), "\n")

	if !strings.HasPrefix(lines[0], "Report Period,2026-03-01,2026-03-31") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(csvText, "Total Meetings,3") {
		t.Error("missing total meetings row")
	}
	if !strings.Contains(csvText, "Distinct Clients,2") {
		t.Error("missing distinct clients row")
	}
	if !strings.Contains(csvText, "Hit Rate %,33") {
		t.Error("missing hit rate row")
	}
	if !strings.Contains(csvText, "Brand,Discussions,Specified,Estimated Value") {
		t.Error("missing brand section header")
	}
	if !strings.Contains(csvText, "AlphaSeal,2,1,5800.00") {
		t.Error("missing AlphaSeal breakdown row")
	}
	if !strings.Contains(csvText, "Date,Client,Status,Brand,Specified,Estimated Value,Notes") {
		t.Error("missing detail section header")
	}
	if !strings.Contains(csvText, "2026-03-10,Acme Construction,Completed,AlphaSeal,yes,5000.00") {
		t.Error("missing discussion detail row")
	}
	// Meetings without discussions still get a detail row.
	if !strings.Contains(csvText, "2026-03-12,BuildRight,Scheduled,,,,") {
		t.Error("missing empty-discussion detail row")
	}

	// Blank rows separate the three sections.
	blank := 0
	for _, line := range lines {
		if line == "" {
			blank++
		}
	}
	if blank != 2 {
		t.Errorf("expected 2 blank separator lines, got %d", blank)
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(5800); got != "5800.00" {
		t.Errorf("formatValue(5800) = %q", got)
	}
	if got := formatValue(0); got != "0.00" {
		t.Errorf("formatValue(0) = %q", got)
	}
	if got := formatValue(12.345); got != "12.35" {
		t.Errorf("formatValue(12.345) = %q", got)
	}
}
