package nav

import (
	"testing"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/permission"
)

func titles(items []NavItem) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func contains(items []NavItem, title string) bool {
	for _, item := range items {
		if item.Title == title {
			return true
		}
	}
	return false
}

func TestFilterAdminSeesEverything(t *testing.T) {
	admin := &models.User{UserType: models.UserTypeAdmin}

	visible := Filter(Menu(), admin, permission.NewSet())
	if len(visible) != len(Menu()) {
		t.Fatalf("admin sees %v, want full menu", titles(visible))
	}
}

func TestFilterRoleListBypassesPermissions(t *testing.T) {
	// A store user sees Orders through AllowedRoles even with an empty
	// permission set.
	store := &models.User{UserType: "store"}

	visible := Filter(Menu(), store, permission.NewSet())
	if !contains(visible, "Orders") {
		t.Errorf("store user should see Orders, got %v", titles(visible))
	}
}

func TestFilterPermissionGrantsVisibility(t *testing.T) {
	customer := &models.User{UserType: "customer"}

	visible := Filter(Menu(), customer, permission.NewSet())
	if contains(visible, "Orders") {
		t.Error("customer without Orders_Read should not see Orders")
	}

	visible = Filter(Menu(), customer, permission.NewSet("Orders_Read"))
	if !contains(visible, "Orders") {
		t.Errorf("Orders_Read should reveal Orders, got %v", titles(visible))
	}
}

func TestFilterGroupFollowsChildren(t *testing.T) {
	manager := &models.User{UserType: "manager"}

	// No catalog grants: the Catalog group disappears entirely.
	visible := Filter(Menu(), manager, permission.NewSet())
	if contains(visible, "Catalog") {
		t.Error("empty group should be pruned")
	}

	// One child grant is enough to keep the group, with only that child.
	visible = Filter(Menu(), manager, permission.NewSet("Products_Read"))
	if !contains(visible, "Catalog") {
		t.Fatalf("group with visible child pruned, got %v", titles(visible))
	}
	for _, item := range visible {
		if item.Title != "Catalog" {
			continue
		}
		if len(item.Children) != 1 || item.Children[0].Title != "Products" {
			t.Errorf("Catalog children = %v, want [Products]", titles(item.Children))
		}
	}
}

func TestFilterNilUser(t *testing.T) {
	if got := Filter(Menu(), nil, permission.NewSet()); got != nil {
		t.Errorf("nil user should see nothing, got %v", titles(got))
	}
}

func TestFilterDoesNotMutateMenu(t *testing.T) {
	manager := &models.User{UserType: "manager"}
	Filter(Menu(), manager, permission.NewSet("Products_Read"))

	fresh := Menu()
	for _, item := range fresh {
		if item.Title == "Catalog" && len(item.Children) != 2 {
			t.Errorf("menu mutated: Catalog children = %v", titles(item.Children))
		}
	}
}
