package auth

import "strings"

// roleSynonyms maps lowercased role spellings seen in directory rows,
// request bodies, and bootstrap config to the closed enum.
var roleSynonyms = map[string]Role{
	"developer":   RoleDeveloper,
	"dev":         RoleDeveloper,
	"owner":       RoleDeveloper,
	"founder":     RoleDeveloper,
	"root":        RoleDeveloper,
	"super-admin": RoleDeveloper,
	"superadmin":  RoleDeveloper,
	"super_admin": RoleDeveloper,

	"administrador": RoleAdministrador,
	"administrator": RoleAdministrador,
	"admin":         RoleAdministrador,
	"moderator":     RoleAdministrador,
	"mod":           RoleAdministrador,
	"gerente":       RoleAdministrador,
	"manager":       RoleAdministrador,

	"staff":   RoleStaff,
	"helper":  RoleStaff,
	"support": RoleStaff,
	"suporte": RoleStaff,
}

// NormalizeRole maps an arbitrary role string to the closed enum. Unknown or
// empty input yields the fallback; never escalate on unrecognized input.
// The function is total and idempotent.
func NormalizeRole(raw string, fallback Role) Role {
	if role, ok := roleSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return role
	}
	if fallback == "" {
		return RoleStaff
	}
	return fallback
}

// rolePermissions is the static role→permission matrix. No inheritance.
var rolePermissions = map[Role]PermissionSet{
	RoleDeveloper: {
		ManageStaff:       true,
		PublishGame:       true,
		EditGame:          true,
		RemoveGame:        true,
		ManageMaintenance: true,
	},
	RoleAdministrador: {
		PublishGame:       true,
		ManageMaintenance: true,
	},
	RoleStaff: {},
}

// PermissionsFor returns the permission set granted to a role. Unknown roles
// get the empty set.
func PermissionsFor(role Role) PermissionSet {
	return rolePermissions[role]
}
