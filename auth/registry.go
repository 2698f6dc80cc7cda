package auth

import "fmt"

// RolePrefix is prepended to a bare role name when it is used as an
// authority, mirroring how roles are stored ("ROLE_ADMIN") versus how they
// travel in tokens ("ADMIN").
const RolePrefix = "ROLE_"

// Well-known permission names.
const (
	PermProductAdd     = "PRODUCT_ADD"
	PermProductView    = "PRODUCT_VIEW"
	PermProductViewAll = "PRODUCT_VIEW_ALL"
)

// Registry maps a role name to its permission set. It is built once at
// startup and read-only afterwards, so lookups need no synchronization.
type Registry struct {
	permissions map[string][]string
}

// NewRegistry builds a registry from an explicit role→permissions table.
// The input is copied; later mutation of the argument does not affect the
// registry.
func NewRegistry(table map[string][]string) *Registry {
	perms := make(map[string][]string, len(table))
	for role, list := range table {
		cp := make([]string, len(list))
		copy(cp, list)
		perms[role] = cp
	}
	return &Registry{permissions: perms}
}

// DefaultRegistry returns the built-in role table.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string][]string{
		"ROLE_ADMIN": {PermProductAdd, PermProductView, PermProductViewAll},
		"ROLE_STAFF": {PermProductView, PermProductViewAll},
		"ROLE_GUEST": {PermProductView},
	})
}

// PermissionsOf returns the permission names of the given role (full name,
// ROLE_ prefix included). Role names only ever come from internally issued
// tokens or the credential store's own role assignment, so an unknown role
// is a configuration fault, not a normal runtime condition.
func (r *Registry) PermissionsOf(role string) ([]string, error) {
	perms, ok := r.permissions[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out, nil
}

// AuthoritiesFor derives the full authority set for a bare role name: the
// prefixed role itself plus every permission of that role.
func (r *Registry) AuthoritiesFor(bareRole string) ([]string, error) {
	role := RolePrefix + bareRole
	perms, err := r.PermissionsOf(role)
	if err != nil {
		return nil, err
	}
	return append([]string{role}, perms...), nil
}

// Knows reports whether the role name (full, ROLE_ prefixed) is registered.
func (r *Registry) Knows(role string) bool {
	_, ok := r.permissions[role]
	return ok
}

// Roles returns the known role names.
func (r *Registry) Roles() []string {
	roles := make([]string, 0, len(r.permissions))
	for role := range r.permissions {
		roles = append(roles, role)
	}
	return roles
}
