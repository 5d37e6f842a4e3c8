package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("waiter", "/manage/orders/:id/status", "PATCH"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"waiter"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/v1/manage/orders/42/status", "patch")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "/api/v1/manage/orders/42/status", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("waiter", "/manage/orders", "GET"); err != nil {
		t.Fatalf("grant waiter policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("restaurant_owner", "/manage/menus", "GET"); err != nil {
		t.Fatalf("grant owner policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"waiter"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:waiter" {
		t.Fatalf("roles want [role:waiter], got=%v", roles)
	}

	if err := svc.SetUserRoles(2, []string{"restaurant_owner"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:restaurant_owner" {
		t.Fatalf("roles want [role:restaurant_owner], got=%v", roles)
	}

	allow, err := svc.EnforceUser(2, "/manage/orders", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "/manage/menus", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/manage/orders/:id/status", want: "/manage/orders/:id/status"},
		{in: "/manage/orders/:id/status", want: "/manage/orders/:id/status"},
		{in: "manage/tables", want: "/manage/tables"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:waiter":           true,
		"role:restaurant_owner": true,
		"role:superuser":        true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	if err := svc.SetUserRoles(3, []string{"restaurant_owner"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(3, "/manage/orders", "GET")
	if err != nil {
		t.Fatalf("enforce inherited waiter failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected inherited waiter permission")
	}

	allow, err = svc.EnforceUser(3, "/manage/orders/7/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce inherited status update failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected inherited status update permission")
	}
}

func TestEnforceRoleSuperuserWildcard(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	allow, err := svc.EnforceRole("superuser", "/api/v1/manage/restaurants/9", "DELETE")
	if err != nil {
		t.Fatalf("enforce superuser failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected superuser allow")
	}

	allow, err = svc.EnforceRole("waiter", "/api/v1/manage/restaurants/9", "DELETE")
	if err != nil {
		t.Fatalf("enforce waiter failed: %v", err)
	}
	if allow {
		t.Fatalf("expected waiter deny")
	}
}
