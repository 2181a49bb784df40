package services

import (
	"encoding/json"
	"testing"

	"github.com/inexss/crm-backend/internal/models"
)

func TestUpdateMeetingRequest_ChildrenAbsent(t *testing.T) {
	body := `{"summary": "updated summary"}`

	var req UpdateMeetingRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	if req.Summary != "updated summary" {
		t.Errorf("Summary = %q", req.Summary)
	}
	if req.BrandDiscussions != nil {
		t.Error("absent brand_discussions should stay nil (children untouched)")
	}
	if req.ActionItems != nil {
		t.Error("absent action_items should stay nil (children untouched)")
	}
}

func TestUpdateMeetingRequest_ChildrenEmpty(t *testing.T) {
	body := `{"brand_discussions": [], "action_items": []}`

	var req UpdateMeetingRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	if req.BrandDiscussions == nil {
		t.Fatal("empty brand_discussions should be non-nil (replace with nothing)")
	}
	if len(*req.BrandDiscussions) != 0 {
		t.Errorf("brand_discussions length = %d, expected 0", len(*req.BrandDiscussions))
	}
	if req.ActionItems == nil {
		t.Fatal("empty action_items should be non-nil (replace with nothing)")
	}
	if len(*req.ActionItems) != 0 {
		t.Errorf("action_items length = %d, expected 0", len(*req.ActionItems))
	}
}

func TestUpdateMeetingRequest_ChildrenReplaced(t *testing.T) {
	body := `{
		"brand_discussions": [
			{"brand_id": 3, "is_required": true, "estimated_value": 2500.50, "notes": "spec'd on tender"}
		],
		"action_items": [
			{"description": "send samples", "assigned_to": 7, "due_date": "2026-04-01"}
		]
	}`

	var req UpdateMeetingRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	discussions := *req.BrandDiscussions
	if len(discussions) != 1 {
		t.Fatalf("expected 1 discussion, got %d", len(discussions))
	}
	if discussions[0].BrandID != 3 || !discussions[0].IsRequired || discussions[0].EstimatedValue != 2500.50 {
		t.Errorf("discussion = %+v", discussions[0])
	}

	items := *req.ActionItems
	if len(items) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(items))
	}
	if items[0].Description != "send samples" {
		t.Errorf("Description = %q", items[0].Description)
	}
	if items[0].AssignedTo == nil || *items[0].AssignedTo != 7 {
		t.Errorf("AssignedTo = %v, expected 7", items[0].AssignedTo)
	}
	if items[0].DueDate != "2026-04-01" {
		t.Errorf("DueDate = %q", items[0].DueDate)
	}
}

func TestUpdateMeetingRequest_FollowUpDateClear(t *testing.T) {
	var absent UpdateMeetingRequest
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if absent.FollowUpDate != nil {
		t.Error("absent follow_up_date should stay nil")
	}

	var cleared UpdateMeetingRequest
	if err := json.Unmarshal([]byte(`{"follow_up_date": ""}`), &cleared); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if cleared.FollowUpDate == nil || *cleared.FollowUpDate != "" {
		t.Error("empty follow_up_date should arrive as pointer to empty string")
	}
}

func TestHideInactiveBrandDiscussions(t *testing.T) {
	m := &models.Meeting{
		BrandDiscussions: []models.BrandDiscussion{
			{BrandID: 1, Brand: &models.Brand{ID: 1, IsActive: true}},
			{BrandID: 2, Brand: &models.Brand{ID: 2, IsActive: false}},
			{BrandID: 3, Brand: nil},
		},
	}

	hideInactiveBrandDiscussions(m)

	if len(m.BrandDiscussions) != 1 {
		t.Fatalf("expected 1 visible discussion, got %d", len(m.BrandDiscussions))
	}
	if m.BrandDiscussions[0].BrandID != 1 {
		t.Errorf("kept BrandID = %d, expected 1", m.BrandDiscussions[0].BrandID)
	}
}

func TestHideInactiveBrandDiscussions_AllActive(t *testing.T) {
	m := &models.Meeting{
		BrandDiscussions: []models.BrandDiscussion{
			{BrandID: 1, Brand: &models.Brand{ID: 1, IsActive: true}},
			{BrandID: 2, Brand: &models.Brand{ID: 2, IsActive: true}},
		},
	}

	hideInactiveBrandDiscussions(m)

	if len(m.BrandDiscussions) != 2 {
		t.Errorf("expected both discussions kept, got %d", len(m.BrandDiscussions))
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-15")
	if err != nil {
		t.Fatalf("parseDate() error = %v", err)
	}
	if got == nil {
		t.Fatal("parseDate() returned nil for valid date")
	}
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 15 {
		t.Errorf("parsed = %v", got)
	}

	empty, err := parseDate("")
	if err != nil {
		t.Fatalf("parseDate(\"\") error = %v", err)
	}
	if empty != nil {
		t.Error("empty string should parse to nil date")
	}

	invalid := []string{"15-03-2026", "2026/03/15", "not-a-date", "2026-13-01"}
	for _, in := range invalid {
		if _, err := parseDate(in); err == nil {
			t.Errorf("parseDate(%q) should return error", in)
		}
	}
}
