package services

import (
	"strings"
	"testing"
	"time"

	"github.com/inexss/crm-backend/internal/models"
)

func TestBuildReminderBody(t *testing.T) {
	due := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	items := []models.ActionItem{
		{Description: "send fixing schedule", DueDate: &due},
		{Description: "chase quote approval"},
	}

	body := buildReminderBody("Thandi", items)

	if !strings.HasPrefix(body, "Hi Thandi,") {
		t.Errorf("body should greet the assignee, got %q", body[:20])
	}
	if !strings.Contains(body, "send fixing schedule (due 2026-04-02)") {
		t.Error("missing dated item line")
	}
	if !strings.Contains(body, "chase quote approval (due no due date)") {
		t.Error("missing undated item line")
	}
	if !strings.Contains(body, "automated reminder") {
		t.Error("missing footer")
	}
}

func TestBuildReminderBody_ItemOrderPreserved(t *testing.T) {
	items := []models.ActionItem{
		{Description: "first"},
		{Description: "second"},
	}

	body := buildReminderBody("Sam", items)

	first := strings.Index(body, "first")
	second := strings.Index(body, "second")
	if first == -1 || second == -1 || first > second {
		t.Errorf("items should render in input order, got:\n%s", body)
	}
}
