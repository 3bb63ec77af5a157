package permissions

import "testing"

var allActions = []Action{
	ApproveAgencies, RejectAgencies, ViewAllAgencies,
	ApproveBusinesses, RejectBusinesses, ViewAllBusinesses, EditAnyBusiness,
	CreateTours, ManageOwnTours, EditAnyTour, ApproveTours, ViewAllTours,
	CreateTags, EditTags, DeleteTags, ViewTags,
}

func TestStaffHoldAllStaffActions(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleModerator} {
		for _, action := range staffActions {
			if !Allows(role, action) {
				t.Errorf("Allows(%s, %s) = false, want true", role, action)
			}
		}
	}
}

func TestStaffHoldNoGuideActions(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleModerator} {
		for _, action := range []Action{CreateTours, ManageOwnTours} {
			if Allows(role, action) {
				t.Errorf("Allows(%s, %s) = true, want false", role, action)
			}
		}
	}
}

func TestGuideGrants(t *testing.T) {
	for _, action := range allActions {
		want := action == CreateTours || action == ManageOwnTours
		if got := Allows(RoleGuide, action); got != want {
			t.Errorf("Allows(guide, %s) = %v, want %v", action, got, want)
		}
	}
}

func TestBusinessRolesHoldNothing(t *testing.T) {
	for _, role := range []Role{RoleBusinessFood, RoleBusinessAccommodation} {
		for _, action := range allActions {
			if Allows(role, action) {
				t.Errorf("Allows(%s, %s) = true, want false", role, action)
			}
		}
	}
}

func TestFailClosed(t *testing.T) {
	if Allows(Role("superuser"), ApproveBusinesses) {
		t.Error("unknown role was granted an action")
	}
	if Allows(RoleAdmin, Action("dropAllTables")) {
		t.Error("unknown action was granted to admin")
	}
	if Allows(Role(""), Action("")) {
		t.Error("empty role/action was granted")
	}
}

func TestValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleModerator, RoleBusinessFood, RoleBusinessAccommodation, RoleGuide} {
		if !Valid(role) {
			t.Errorf("Valid(%s) = false", role)
		}
	}
	if Valid(Role("user")) {
		t.Error("Valid(user) = true, want false")
	}
}

func TestIsStaff(t *testing.T) {
	cases := map[Role]bool{
		RoleAdmin:                 true,
		RoleModerator:             true,
		RoleBusinessFood:          false,
		RoleBusinessAccommodation: false,
		RoleGuide:                 false,
	}
	for role, want := range cases {
		if got := IsStaff(role); got != want {
			t.Errorf("IsStaff(%s) = %v, want %v", role, got, want)
		}
	}
}
