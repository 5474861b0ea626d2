package domain

// RoleAdmin is the only role allowed into the administration views.
// The backend stores role names in Spanish; they are treated as opaque
// identifiers on this side.
const RoleAdmin = "administrador"

// Role is a named role attached to a user account.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Branch is a sales branch the user may operate on.
type Branch struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Permission is a fine-grained capability name. The console does not act on
// individual permissions yet, but the profile endpoint returns them.
type Permission struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Profile is the authenticated user as reported by the profile endpoint.
// It is fetched fresh on every view activation and never cached.
type Profile struct {
	ID          int          `json:"id"`
	Email       string       `json:"email"`
	FullName    string       `json:"full_name"`
	Active      bool         `json:"is_active"`
	Roles       []Role       `json:"roles"`
	Branches    []Branch     `json:"branches"`
	Permissions []Permission `json:"permissions"`
}

// RoleLabel derives the display label for the user from the first role name.
func (p *Profile) RoleLabel() string {
	if len(p.Roles) == 0 {
		return "sin rol"
	}
	return p.Roles[0].Name
}

// HasRole reports whether any of the user's roles matches name.
func (p *Profile) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// BranchCodes returns the codes of every branch the user can switch to.
func (p *Profile) BranchCodes() []string {
	codes := make([]string, 0, len(p.Branches))
	for _, b := range p.Branches {
		codes = append(codes, b.Code)
	}
	return codes
}
