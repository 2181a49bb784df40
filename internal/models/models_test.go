package models

import "testing"

func TestValidRole(t *testing.T) {
	valid := []string{RoleAdmin, RoleStaff, RoleBrandRep, RoleContractor, RoleSupplier}
	for _, role := range valid {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, expected true", role)
		}
	}

	invalid := []string{"", "manager", "Admin", "BRAND_REPRESENTATIVE"}
	for _, role := range invalid {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, expected false", role)
		}
	}
}

func TestValidLocation(t *testing.T) {
	valid := []string{LocationJHB, LocationCapeTown, LocationDurban, LocationOther}
	for _, loc := range valid {
		if !ValidLocation(loc) {
			t.Errorf("ValidLocation(%q) = false, expected true", loc)
		}
	}

	if ValidLocation("Pretoria") {
		t.Error("ValidLocation(\"Pretoria\") = true, expected false")
	}
	if ValidLocation("") {
		t.Error("ValidLocation(\"\") = true, expected false")
	}
}

func TestValidClientType(t *testing.T) {
	valid := []string{ClientTypeArchitect, ClientTypeDeveloper, ClientTypeContractor, ClientTypeOther}
	for _, ct := range valid {
		if !ValidClientType(ct) {
			t.Errorf("ValidClientType(%q) = false, expected true", ct)
		}
	}

	if ValidClientType("architect") {
		t.Error("client types are case sensitive")
	}
}

func TestValidProjectStatus(t *testing.T) {
	valid := []string{
		ProjectStatusLead, ProjectStatusQuoted, ProjectStatusInProgress,
		ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled,
	}
	for _, s := range valid {
		if !ValidProjectStatus(s) {
			t.Errorf("ValidProjectStatus(%q) = false, expected true", s)
		}
	}

	if ValidProjectStatus("Started") {
		t.Error("ValidProjectStatus(\"Started\") = true, expected false")
	}
}

func TestValidMeetingStatus(t *testing.T) {
	valid := []string{MeetingStatusScheduled, MeetingStatusCompleted, MeetingStatusCancelled}
	for _, s := range valid {
		if !ValidMeetingStatus(s) {
			t.Errorf("ValidMeetingStatus(%q) = false, expected true", s)
		}
	}

	if ValidMeetingStatus("Pending") {
		t.Error("ValidMeetingStatus(\"Pending\") = true, expected false")
	}
}

func TestUserBrandAccessIDs(t *testing.T) {
	u := &User{
		BrandAccess: []Brand{
			{ID: 3, Name: "AlphaSeal"},
			{ID: 8, Name: "BetaFix"},
		},
	}

	ids := u.BrandAccessIDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 8 {
		t.Errorf("BrandAccessIDs() = %v, expected [3 8]", ids)
	}

	empty := &User{}
	if got := empty.BrandAccessIDs(); len(got) != 0 {
		t.Errorf("BrandAccessIDs() on empty access = %v", got)
	}
}

func TestProjectBrandIDs(t *testing.T) {
	p := &Project{
		Brands: []Brand{
			{ID: 2},
			{ID: 5},
		},
	}

	ids := p.BrandIDs()
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 5 {
		t.Errorf("BrandIDs() = %v, expected [2 5]", ids)
	}
}

func TestMeetingDiscussedBrandIDs(t *testing.T) {
	m := &Meeting{
		BrandDiscussions: []BrandDiscussion{
			{BrandID: 1},
			{BrandID: 4},
		},
	}

	ids := m.DiscussedBrandIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
		t.Errorf("DiscussedBrandIDs() = %v, expected [1 4]", ids)
	}

	empty := &Meeting{}
	if got := empty.DiscussedBrandIDs(); len(got) != 0 {
		t.Errorf("DiscussedBrandIDs() on empty meeting = %v", got)
	}
}
