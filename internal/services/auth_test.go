package services

import (
	"testing"
)

func TestLoginRequest_Structure(t *testing.T) {
	req := LoginRequest{
		Email:    "rep@example.com",
		Password: "password123",
		AuthType: "local",
	}

	if req.Email != "rep@example.com" {
		t.Errorf("Email = %q, expected %q", req.Email, "rep@example.com")
	}
	if req.Password != "password123" {
		t.Errorf("Password = %q, expected %q", req.Password, "password123")
	}
	if req.AuthType != "local" {
		t.Errorf("AuthType = %q, expected %q", req.AuthType, "local")
	}
}

func TestLoginRequest_DefaultAuthType(t *testing.T) {
	req := LoginRequest{
		Email:    "user@example.com",
		Password: "pass",
	}

	if req.AuthType != "" {
		t.Errorf("AuthType should be empty by default, got %q", req.AuthType)
	}
}

func TestLoginRequest_LDAPAuthType(t *testing.T) {
	req := LoginRequest{
		Email:    "ldapuser@example.com",
		Password: "ldappass",
		AuthType: "ldap",
	}

	if req.AuthType != "ldap" {
		t.Errorf("AuthType = %q, expected %q", req.AuthType, "ldap")
	}
}

func TestLoginResult_Structure(t *testing.T) {
	result := LoginResult{
		AccessToken:  "jwt.token.here",
		RefreshToken: "refresh-token",
		User:         nil,
	}

	if result.AccessToken != "jwt.token.here" {
		t.Errorf("AccessToken = %q, expected %q", result.AccessToken, "jwt.token.here")
	}
	if result.RefreshToken != "refresh-token" {
		t.Errorf("RefreshToken = %q, expected %q", result.RefreshToken, "refresh-token")
	}
	if result.User != nil {
		t.Error("User should be nil")
	}
}

func TestChangePasswordRequest_Structure(t *testing.T) {
	req := ChangePasswordRequest{
		OldPassword: "oldpass",
		NewPassword: "newpass123",
	}

	if req.OldPassword != "oldpass" {
		t.Errorf("OldPassword = %q, expected %q", req.OldPassword, "oldpass")
	}
	if req.NewPassword != "newpass123" {
		t.Errorf("NewPassword = %q, expected %q", req.NewPassword, "newpass123")
	}
}

func TestRegisterRequest_Structure(t *testing.T) {
	req := RegisterRequest{
		Name:     "New Rep",
		Email:    "new@example.com",
		Password: "password123",
		Role:     "staff",
		Location: "JHB",
	}

	if req.Name != "New Rep" {
		t.Errorf("Name = %q, expected %q", req.Name, "New Rep")
	}
	if req.Email != "new@example.com" {
		t.Errorf("Email = %q, expected %q", req.Email, "new@example.com")
	}
	if req.Role != "staff" {
		t.Errorf("Role = %q, expected %q", req.Role, "staff")
	}
	if req.Location != "JHB" {
		t.Errorf("Location = %q, expected %q", req.Location, "JHB")
	}
}
