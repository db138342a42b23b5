package permission

import (
	"context"
	"testing"

	"go-storefront/internal/common/models"
)

type stubRolePermRepo struct {
	RolePermissionRepository
	pairs []RolePermission
}

func (s *stubRolePermRepo) List(ctx context.Context) ([]RolePermission, error) {
	return s.pairs, nil
}

func TestResolveEffectivePermissions(t *testing.T) {
	svc := NewPermissionService(nil, &stubRolePermRepo{pairs: []RolePermission{
		{Role: "manager", Permission: "Users_Read"},
		{Role: "manager", Permission: "Orders_Read"},
		{Role: "store", Permission: "Orders_Write"},
	}})

	set, err := svc.ResolveEffectivePermissions(context.Background(), &models.User{UserType: "manager"})
	if err != nil {
		t.Fatal(err)
	}
	if !set.Has("Users_Read") || !set.Has("Orders_Read") {
		t.Errorf("manager set missing grants: %v", set.Names())
	}
	if set.Has("Orders_Write") {
		t.Error("manager received another role's grant")
	}

	// Role name matching is case-insensitive.
	set, err = svc.ResolveEffectivePermissions(context.Background(), &models.User{UserType: "Manager"})
	if err != nil {
		t.Fatal(err)
	}
	if !set.Has("Users_Read") {
		t.Error("case-insensitive role match failed")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	svc := NewPermissionService(nil, &stubRolePermRepo{pairs: []RolePermission{
		{Role: "manager", Permission: "Users_Read"},
	}})
	user := &models.User{UserType: "manager"}

	first, err := svc.ResolveEffectivePermissions(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ResolveEffectivePermissions(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("sets differ: %v vs %v", first.Names(), second.Names())
	}
	for name := range first {
		if !second.Has(name) {
			t.Errorf("second resolution missing %s", name)
		}
	}
}

func TestAdminOverride(t *testing.T) {
	admin := &models.User{UserType: models.UserTypeAdmin}
	emptySet := NewSet()

	for _, module := range []string{"Users", "Orders", "Categories", "Anything"} {
		if !CanRead(admin, emptySet, module) {
			t.Errorf("admin denied read on %s", module)
		}
		if !CanWrite(admin, emptySet, module) {
			t.Errorf("admin denied write on %s", module)
		}
	}
}

func TestDefaultDeny(t *testing.T) {
	customer := &models.User{UserType: "customer"}
	emptySet := NewSet()

	for _, module := range []string{"Users", "Orders", "Stores"} {
		if CanRead(customer, emptySet, module) {
			t.Errorf("empty set granted read on %s", module)
		}
		if CanWrite(customer, emptySet, module) {
			t.Errorf("empty set granted write on %s", module)
		}
	}

	set := NewSet("Orders_Read")
	if !CanRead(customer, set, "Orders") {
		t.Error("Orders_Read not honored")
	}
	if CanWrite(customer, set, "Orders") {
		t.Error("read grant must not imply write")
	}
	if CanRead(customer, set, "Users") {
		t.Error("grant leaked across modules")
	}
}
