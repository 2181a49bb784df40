package services

import "github.com/inexss/crm-backend/internal/models"

// Entity kinds the policy knows about.
type Entity string

const (
	EntityClient  Entity = "client"
	EntityBrand   Entity = "brand"
	EntityProject Entity = "project"
	EntityMeeting Entity = "meeting"
)

// Actor is the authenticated requester as seen by the authorization policy.
// BrandAccess is only populated for brand representatives and suppliers.
//
// Every data-access entry point consults this policy; role checks are never
// re-implemented in individual routes.
type Actor struct {
	ID          uint
	Role        string
	BrandAccess []uint
}

// ActorFromUser builds an Actor from a loaded user profile.
func ActorFromUser(u *models.User) *Actor {
	return &Actor{
		ID:          u.ID,
		Role:        u.Role,
		BrandAccess: u.BrandAccessIDs(),
	}
}

// BrandScoped reports whether the actor's visibility is limited to the
// brands in BrandAccess.
func (a *Actor) BrandScoped() bool {
	return a.Role == models.RoleBrandRep || a.Role == models.RoleSupplier
}

// HasBrand reports whether the actor's brand access includes id.
func (a *Actor) HasBrand(id uint) bool {
	for _, b := range a.BrandAccess {
		if b == id {
			return true
		}
	}
	return false
}

// CanSeeBrandRow decides row-level visibility for a brand-referencing row.
// brandIDs is the set of brand ids the row references: the brand's own id,
// a project's linked brands, or a meeting's discussed brands. For a
// brand-scoped actor the row is visible iff that set intersects the actor's
// brand access; rows failing the check are excluded from lists and denied
// on direct fetch. All other roles see every row.
func (a *Actor) CanSeeBrandRow(brandIDs []uint) bool {
	if !a.BrandScoped() {
		return true
	}
	for _, id := range brandIDs {
		if a.HasBrand(id) {
			return true
		}
	}
	return false
}

// CanCreate reports whether the actor may create a row of the given entity.
func (a *Actor) CanCreate(entity Entity) bool {
	switch a.Role {
	case models.RoleAdmin, models.RoleStaff:
		return true
	case models.RoleContractor:
		// Contractors create their own meetings and projects only.
		return entity == EntityMeeting || entity == EntityProject
	default:
		// Brand representatives and suppliers are read-only.
		return false
	}
}

// CanMutate reports whether the actor may update or delete an existing row.
// createdBy is the row's creator; contractors may only touch rows they
// personally created.
func (a *Actor) CanMutate(entity Entity, createdBy uint) bool {
	switch a.Role {
	case models.RoleAdmin, models.RoleStaff:
		return true
	case models.RoleContractor:
		if entity != EntityMeeting && entity != EntityProject {
			return false
		}
		return createdBy == a.ID
	default:
		return false
	}
}

// CanManageBrands reports whether the actor may create/update/delete brands.
func (a *Actor) CanManageBrands() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleStaff
}

// CanManageUsers reports whether the actor may administer user accounts.
func (a *Actor) CanManageUsers() bool {
	return a.Role == models.RoleAdmin
}

// OwnRowsOnly reports whether list results of the given entity must be
// restricted to rows the actor created (contractor scoping on meetings
// and projects).
func (a *Actor) OwnRowsOnly(entity Entity) bool {
	if a.Role != models.RoleContractor {
		return false
	}
	return entity == EntityMeeting || entity == EntityProject
}
