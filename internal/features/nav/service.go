package nav

import (
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/permission"
)

// Menu is the full back-office navigation tree before filtering.
func Menu() []NavItem {
	return []NavItem{
		{Title: "Dashboard", URL: "/admin", Icon: "layout-dashboard"},
		{Title: "Catalog", Icon: "package", Children: []NavItem{
			{Title: "Products", URL: "/admin/products", Icon: "box"},
			{Title: "Categories", URL: "/admin/categories", Icon: "tags"},
		}},
		{Title: "Orders", URL: "/admin/orders", Icon: "shopping-cart",
			AllowedRoles: []string{"store"}, Badge: "new"},
		{Title: "Stores", URL: "/admin/stores", Icon: "building"},
		{Title: "Users", URL: "/admin/users", Icon: "users"},
		{Title: "Access Control", Icon: "shield", Children: []NavItem{
			{Title: "Roles", URL: "/admin/roles", Icon: "user-cog"},
			{Title: "Permissions", URL: "/admin/permissions", Icon: "key"},
		}},
	}
}

// Filter prunes the tree down to the items the user may see. An item is kept
// when the user is an admin, their type matches AllowedRoles, or they hold
// "<Title>_Read". A group with no URL of its own survives only while at least
// one child does.
func Filter(items []NavItem, user *models.User, perms permission.Set) []NavItem {
	if user == nil {
		return nil
	}

	var visible []NavItem
	for _, item := range items {
		children := Filter(item.Children, user, perms)

		allowed := allows(&item, user, perms)
		if item.URL == "" && len(item.Children) > 0 {
			// Groups inherit visibility from their surviving children.
			allowed = len(children) > 0
		}
		if !allowed {
			continue
		}

		item.Children = children
		visible = append(visible, item)
	}
	return visible
}

func allows(item *NavItem, user *models.User, perms permission.Set) bool {
	if user.IsAdmin() {
		return true
	}
	for _, role := range item.AllowedRoles {
		if strings.EqualFold(role, user.UserType) {
			return true
		}
	}
	return perms.Has(item.Title + "_Read")
}
