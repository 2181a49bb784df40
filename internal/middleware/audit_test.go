package middleware

import (
	"strings"
	"testing"
)

func TestParseRouteInfo(t *testing.T) {
	tests := []struct {
		fullPath string
		method   string
		module   string
		action   string
	}{
		{"/api/meetings/:id", "PUT", "Meetings", "Update"},
		{"/api/meetings", "POST", "Meetings", "Create"},
		{"/api/clients/:id", "DELETE", "Clients", "Delete"},
		{"/api/brands/:id", "PATCH", "Brands", "Update"},
		{"/api/system-logs", "POST", "System Logs", "Create"},
		{"/api/auth/login", "POST", "Auth", "Create"},
	}

	for _, tt := range tests {
		module, action := parseRouteInfo(tt.fullPath, tt.method)
		if module != tt.module {
			t.Errorf("parseRouteInfo(%q, %q) module = %q, expected %q", tt.fullPath, tt.method, module, tt.module)
		}
		if action != tt.action {
			t.Errorf("parseRouteInfo(%q, %q) action = %q, expected %q", tt.fullPath, tt.method, action, tt.action)
		}
	}
}

func TestFormatAuditMessage(t *testing.T) {
	msg := formatAuditMessage("rep@example.com", "POST", "/api/meetings", 201)
	if !strings.Contains(msg, "rep@example.com") || !strings.Contains(msg, "POST") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, "OK") {
		t.Errorf("2xx status should render OK, got %q", msg)
	}

	failed := formatAuditMessage("rep@example.com", "DELETE", "/api/brands/3", 409)
	if !strings.Contains(failed, "Failed") {
		t.Errorf("non-2xx status should render Failed, got %q", failed)
	}
}

func TestMaskSensitiveFields(t *testing.T) {
	body := `{"email": "rep@example.com", "password": "supersecret"}`
	masked := maskSensitiveFields(body)

	if strings.Contains(masked, "supersecret") {
		t.Error("password value should be masked")
	}
	if !strings.Contains(masked, "***") {
		t.Error("mask placeholder missing")
	}
	if !strings.Contains(masked, "rep@example.com") {
		t.Error("non-sensitive fields should be untouched")
	}
}

func TestMaskSensitiveFields_PasswordChange(t *testing.T) {
	body := `{"old_password": "before123", "new_password": "after456"}`
	masked := maskSensitiveFields(body)

	if strings.Contains(masked, "before123") {
		t.Error("old_password value should be masked")
	}
	if strings.Contains(masked, "after456") {
		t.Error("new_password value should be masked")
	}
}

func TestMaskSensitiveFields_NoSensitiveKeys(t *testing.T) {
	body := `{"name": "Acme Construction", "city": "Cape Town"}`
	if got := maskSensitiveFields(body); got != body {
		t.Errorf("body without sensitive keys should be unchanged, got %q", got)
	}
}
