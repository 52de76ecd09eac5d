package auth

import "testing"

func TestPermissionsFor_Dev(t *testing.T) {
	// Dev is a superset of admin.
	adminPerms := PermissionsFor(RoleAdmin)
	for _, perm := range adminPerms {
		if !RoleHasPermission(RoleDev, perm) {
			t.Errorf("dev should have %s", perm)
		}
	}
	if !RoleHasPermission(RoleDev, PermCompaniesManage) {
		t.Error("dev should have companies.manage")
	}
}

func TestPermissionsFor_Admin(t *testing.T) {
	should := []Permission{
		PermCustomersDelete, PermProductsDelete, PermOrdersDelete,
		PermInvoicesUpdate, PermInvoicesDelete,
		PermCompaniesUpdate, PermUsersView, PermUsersManage,
	}
	shouldNot := []Permission{PermCompaniesManage}

	for _, perm := range should {
		if !RoleHasPermission(RoleAdmin, perm) {
			t.Errorf("admin should have %s", perm)
		}
	}
	for _, perm := range shouldNot {
		if RoleHasPermission(RoleAdmin, perm) {
			t.Errorf("admin should NOT have %s", perm)
		}
	}
}

func TestPermissionsFor_User(t *testing.T) {
	should := []Permission{
		PermCustomersView, PermCustomersCreate,
		PermOrdersView, PermOrdersCreate,
		PermInvoicesView, PermInvoicesCreate,
	}
	shouldNot := []Permission{
		PermCustomersDelete, PermProductsCreate, PermProductsDelete,
		PermOrdersDelete, PermInvoicesDelete,
		PermUsersView, PermUsersManage, PermCompaniesManage,
	}

	for _, perm := range should {
		if !RoleHasPermission(RoleUser, perm) {
			t.Errorf("user should have %s", perm)
		}
	}
	for _, perm := range shouldNot {
		if RoleHasPermission(RoleUser, perm) {
			t.Errorf("user should NOT have %s", perm)
		}
	}
}

func TestPermissionsFor_UnknownRoleFailsClosed(t *testing.T) {
	perms := PermissionsFor(Role("FUTURE_ROLE"))
	if len(perms) != 0 {
		t.Errorf("unknown role resolved to %d permissions, want empty set", len(perms))
	}
	if RoleHasPermission(Role("FUTURE_ROLE"), PermCustomersView) {
		t.Error("unknown role should have no permissions")
	}
}

func TestPermissionsFor_ReturnsCopy(t *testing.T) {
	perms := PermissionsFor(RoleAdmin)
	if len(perms) == 0 {
		t.Fatal("admin should have permissions")
	}
	perms[0] = "modified"
	if PermissionsFor(RoleAdmin)[0] == "modified" {
		t.Error("PermissionsFor should return a copy, not the table slice")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range ValidRoles {
		if !IsValidRole(r) {
			t.Errorf("%s should be valid", r)
		}
	}
	if IsValidRole(Role("FUTURE_ROLE")) {
		t.Error("unknown role reported valid")
	}
}
