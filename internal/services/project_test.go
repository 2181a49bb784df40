package services

import (
	"encoding/json"
	"testing"
)

func TestCreateProjectRequest_Structure(t *testing.T) {
	req := CreateProjectRequest{
		Name:           "Waterfront Tower",
		ProjectNumber:  "PRJ-2026-014",
		ClientID:       3,
		Location:       "Cape Town CBD",
		Status:         "Quoted",
		EstimatedValue: 1500000,
		StartDate:      "2026-05-01",
		BrandIDs:       []uint{1, 4},
	}

	if req.Name != "Waterfront Tower" {
		t.Errorf("Name = %q", req.Name)
	}
	if req.ClientID != 3 {
		t.Errorf("ClientID = %d, expected 3", req.ClientID)
	}
	if req.EstimatedValue != 1500000 {
		t.Errorf("EstimatedValue = %v", req.EstimatedValue)
	}
	if len(req.BrandIDs) != 2 {
		t.Errorf("BrandIDs = %v", req.BrandIDs)
	}
}

func TestUpdateProjectRequest_BrandIDsAbsent(t *testing.T) {
	var req UpdateProjectRequest
	if err := json.Unmarshal([]byte(`{"name": "renamed"}`), &req); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	if req.Name != "renamed" {
		t.Errorf("Name = %q", req.Name)
	}
	if req.BrandIDs != nil {
		t.Error("absent brand_ids should stay nil (links untouched)")
	}
}

func TestUpdateProjectRequest_BrandIDsEmpty(t *testing.T) {
	var req UpdateProjectRequest
	if err := json.Unmarshal([]byte(`{"brand_ids": []}`), &req); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	if req.BrandIDs == nil {
		t.Fatal("empty brand_ids should be non-nil (clear all links)")
	}
	if len(*req.BrandIDs) != 0 {
		t.Errorf("brand_ids length = %d, expected 0", len(*req.BrandIDs))
	}
}

func TestUpdateProjectRequest_DateClear(t *testing.T) {
	var req UpdateProjectRequest
	if err := json.Unmarshal([]byte(`{"start_date": "", "end_date": "2026-12-01"}`), &req); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	if req.StartDate == nil || *req.StartDate != "" {
		t.Error("empty start_date should arrive as pointer to empty string")
	}
	if req.EndDate == nil || *req.EndDate != "2026-12-01" {
		t.Errorf("EndDate = %v", req.EndDate)
	}
}

func TestProjectListRequest_Defaults(t *testing.T) {
	req := ProjectListRequest{}
	if req.Page != 0 || req.PageSize != 0 {
		t.Error("zero values expected before defaulting")
	}
	if req.Status != "" || req.ClientID != 0 || req.BrandID != 0 {
		t.Error("filters should default to empty")
	}
}
