package permissions

// Role is the closed set of account roles. Staff roles see and moderate every
// record; owner roles are scoped to the single record they own.
type Role string

const (
	RoleAdmin                 Role = "admin"
	RoleModerator             Role = "moderator"
	RoleBusinessFood          Role = "business_food"
	RoleBusinessAccommodation Role = "business_accommodation"
	RoleGuide                 Role = "guide"
)

// Action is the closed set of policy-gated operations.
type Action string

const (
	ApproveAgencies   Action = "approveAgencies"
	RejectAgencies    Action = "rejectAgencies"
	ViewAllAgencies   Action = "viewAllAgencies"
	ApproveBusinesses Action = "approveBusinesses"
	RejectBusinesses  Action = "rejectBusinesses"
	ViewAllBusinesses Action = "viewAllBusinesses"
	EditAnyBusiness   Action = "editAnyBusiness"
	CreateTours       Action = "createTours"
	ManageOwnTours    Action = "manageOwnTours"
	EditAnyTour       Action = "editAnyTour"
	ApproveTours      Action = "approveTours"
	ViewAllTours      Action = "viewAllTours"
	CreateTags        Action = "createTags"
	EditTags          Action = "editTags"
	DeleteTags        Action = "deleteTags"
	ViewTags          Action = "viewTags"
)

var staffActions = []Action{
	ApproveAgencies, RejectAgencies, ViewAllAgencies,
	ApproveBusinesses, RejectBusinesses, ViewAllBusinesses, EditAnyBusiness,
	EditAnyTour, ApproveTours, ViewAllTours,
	CreateTags, EditTags, DeleteTags, ViewTags,
}

// grants is the whole policy. Anything absent here is denied; there is no
// per-request computation and no default-allow path.
var grants = map[Role]map[Action]struct{}{
	RoleAdmin:                 actionSet(staffActions...),
	RoleModerator:             actionSet(staffActions...),
	RoleBusinessFood:          actionSet(),
	RoleBusinessAccommodation: actionSet(),
	RoleGuide:                 actionSet(CreateTours, ManageOwnTours),
}

func actionSet(actions ...Action) map[Action]struct{} {
	set := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// Allows reports whether role holds action. Unknown roles and unknown actions
// are denied rather than rejected with an error.
func Allows(role Role, action Action) bool {
	set, ok := grants[role]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// IsStaff reports whether the role moderates across all owners.
func IsStaff(role Role) bool {
	return role == RoleAdmin || role == RoleModerator
}

// Valid reports whether the role belongs to the closed set.
func Valid(role Role) bool {
	_, ok := grants[role]
	return ok
}

// OwnerRoles lists the roles scoped to a single owned record, in the order
// they are offered at registration.
func OwnerRoles() []Role {
	return []Role{RoleBusinessFood, RoleBusinessAccommodation, RoleGuide}
}
