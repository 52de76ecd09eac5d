package auth

// Role represents an authorization tier in the system.
type Role string

const (
	// RoleDev is the platform operator role. It is the only role exempt
	// from tenant scoping and is never assigned through registration.
	RoleDev Role = "DEV"

	// RoleAdmin is the highest role within a single company. The first
	// user of a new company is created as admin.
	RoleAdmin Role = "ADMIN"

	// RoleUser is a regular company member.
	RoleUser Role = "USER"
)

// ValidRoles is the set of roles a user account may hold.
var ValidRoles = []Role{RoleDev, RoleAdmin, RoleUser}

// IsValidRole returns true if the role is a known user role.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Permission names one allowed action on one resource type, in
// "resource.action" form. Permissions are granted in bulk per role.
type Permission string

// Permission constants, grouped by resource.
const (
	PermCustomersView   Permission = "customers.view"
	PermCustomersCreate Permission = "customers.create"
	PermCustomersUpdate Permission = "customers.update"
	PermCustomersDelete Permission = "customers.delete"

	PermProductsView   Permission = "products.view"
	PermProductsCreate Permission = "products.create"
	PermProductsUpdate Permission = "products.update"
	PermProductsDelete Permission = "products.delete"

	PermOrdersView   Permission = "orders.view"
	PermOrdersCreate Permission = "orders.create"
	PermOrdersUpdate Permission = "orders.update"
	PermOrdersDelete Permission = "orders.delete"

	PermInvoicesView   Permission = "invoices.view"
	PermInvoicesCreate Permission = "invoices.create"
	PermInvoicesUpdate Permission = "invoices.update"
	PermInvoicesDelete Permission = "invoices.delete"

	PermCompaniesView   Permission = "companies.view"
	PermCompaniesUpdate Permission = "companies.update"
	PermCompaniesManage Permission = "companies.manage"

	PermUsersView   Permission = "users.view"
	PermUsersManage Permission = "users.manage"
)

// rolePermissions maps each role to its granted permissions. This table is
// the single source of truth for the authorization model; business services
// must not re-implement role checks ad hoc.
var rolePermissions = map[Role][]Permission{
	RoleUser: {
		PermCustomersView,
		PermCustomersCreate,
		PermCustomersUpdate,
		PermProductsView,
		PermOrdersView,
		PermOrdersCreate,
		PermOrdersUpdate,
		PermInvoicesView,
		PermInvoicesCreate,
		PermCompaniesView,
	},
	RoleAdmin: {
		PermCustomersView,
		PermCustomersCreate,
		PermCustomersUpdate,
		PermCustomersDelete,
		PermProductsView,
		PermProductsCreate,
		PermProductsUpdate,
		PermProductsDelete,
		PermOrdersView,
		PermOrdersCreate,
		PermOrdersUpdate,
		PermOrdersDelete,
		PermInvoicesView,
		PermInvoicesCreate,
		PermInvoicesUpdate,
		PermInvoicesDelete,
		PermCompaniesView,
		PermCompaniesUpdate,
		PermUsersView,
		PermUsersManage,
	},
	RoleDev: {
		PermCustomersView,
		PermCustomersCreate,
		PermCustomersUpdate,
		PermCustomersDelete,
		PermProductsView,
		PermProductsCreate,
		PermProductsUpdate,
		PermProductsDelete,
		PermOrdersView,
		PermOrdersCreate,
		PermOrdersUpdate,
		PermOrdersDelete,
		PermInvoicesView,
		PermInvoicesCreate,
		PermInvoicesUpdate,
		PermInvoicesDelete,
		PermCompaniesView,
		PermCompaniesUpdate,
		PermCompaniesManage,
		PermUsersView,
		PermUsersManage,
	},
}

// PermissionsFor returns all permissions granted to a role. Unknown or
// future roles resolve to an empty set (fail closed), never an error. The
// returned slice is a copy.
func PermissionsFor(role Role) []Permission {
	perms := rolePermissions[role]
	result := make([]Permission, len(perms))
	copy(result, perms)
	return result
}

// RoleHasPermission returns true if the given role is granted the
// specified permission.
func RoleHasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
