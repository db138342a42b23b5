package role

import (
	"go-storefront/internal/features/permission"
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RoleAPI registers the role and permission admin routes. They live together
// because granting permissions is a role operation.
type RoleAPI struct {
	Roles       *RoleController
	Permissions *permission.PermissionController
	Gate        *middleware.SessionGate
}

func NewRoleAPI(roles *RoleController, perms *permission.PermissionController, gate *middleware.SessionGate) *RoleAPI {
	return &RoleAPI{Roles: roles, Permissions: perms, Gate: gate}
}

func (api *RoleAPI) Setup(app *fiber.App) {
	roles := app.Group("/api/roles", api.Gate.Handler)
	roles.Get("/", middleware.RequireRead("Roles"), api.Roles.ListRoles)
	roles.Get("/:id", middleware.RequireRead("Roles"), api.Roles.GetRole)
	roles.Post("/", middleware.RequireWrite("Roles"), api.Roles.CreateRole)
	roles.Put("/:id", middleware.RequireWrite("Roles"), api.Roles.UpdateRole)
	roles.Delete("/:id", middleware.RequireWrite("Roles"), api.Roles.DeleteRole)
	roles.Get("/name/:name/permissions", middleware.RequireRead("Roles"), api.Roles.RolePermissions)
	roles.Post("/grant", middleware.RequireWrite("Roles"), api.Roles.GrantPermissions)
	roles.Delete("/name/:name/permissions/:permission", middleware.RequireWrite("Roles"), api.Roles.RevokePermission)

	perms := app.Group("/api/permissions", api.Gate.Handler)
	perms.Get("/", middleware.RequireRead("Permissions"), api.Permissions.ListPermissions)
	perms.Post("/", middleware.RequireWrite("Permissions"), api.Permissions.CreatePermission)
	perms.Put("/:id", middleware.RequireWrite("Permissions"), api.Permissions.UpdatePermission)
	perms.Delete("/:id", middleware.RequireWrite("Permissions"), api.Permissions.DeletePermission)
	perms.Get("/assignments", middleware.RequireRead("Permissions"), api.Permissions.ListRolePermissions)
}
