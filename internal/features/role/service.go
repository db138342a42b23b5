package role

import (
	"context"
	"errors"
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"
	"go-storefront/internal/features/permission"
)

type RoleService interface {
	CreateRole(ctx context.Context, actor *models.User, role *Role) (*Role, error)
	GetRole(ctx context.Context, id string) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	UpdateRole(ctx context.Context, actor *models.User, id string, role *Role) error
	DeleteRole(ctx context.Context, actor *models.User, id string) error
	GrantPermissions(ctx context.Context, actor *models.User, req *GrantRequest) error
	RevokePermission(ctx context.Context, actor *models.User, roleName, permName string) error
	RolePermissions(ctx context.Context, roleName string) ([]string, error)
}

type RoleServiceImpl struct {
	RoleRepo     RoleRepository
	RolePermRepo permission.RolePermissionRepository
	Audit        audit.AuditService
}

func NewRoleService(roleRepo RoleRepository, rolePermRepo permission.RolePermissionRepository, auditSvc audit.AuditService) RoleService {
	return &RoleServiceImpl{
		RoleRepo:     roleRepo,
		RolePermRepo: rolePermRepo,
		Audit:        auditSvc,
	}
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, actor *models.User, role *Role) (*Role, error) {
	role.Name = strings.TrimSpace(role.Name)
	if role.Name == "" {
		return nil, errors.New("role name is required")
	}
	if strings.EqualFold(role.Name, models.UserTypeAdmin) {
		return nil, errors.New("the admin role is built in and cannot be created")
	}

	created, err := s.RoleRepo.Create(ctx, role)
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, actor, models.AuditActionCreate, "Roles", created.ID.Hex())
	return created, nil
}

func (s *RoleServiceImpl) GetRole(ctx context.Context, id string) (*Role, error) {
	return s.RoleRepo.FindByID(ctx, id)
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]Role, error) {
	return s.RoleRepo.List(ctx)
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, actor *models.User, id string, role *Role) error {
	existing, err := s.RoleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.RoleRepo.Update(ctx, id, role); err != nil {
		return err
	}

	changes := map[string]models.Change{}
	if existing.Name != role.Name {
		changes["name"] = models.Change{Old: existing.Name, New: role.Name}
	}
	if existing.Status != role.Status {
		changes["status"] = models.Change{Old: existing.Status, New: role.Status}
	}
	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Roles", id, changes)
	return nil
}

// DeleteRole removes the role and every permission granted to it so stale
// grants cannot resurface if the name is reused later.
func (s *RoleServiceImpl) DeleteRole(ctx context.Context, actor *models.User, id string) error {
	existing, err := s.RoleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.RoleRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.RolePermRepo.RevokeAllForRole(ctx, existing.Name); err != nil {
		return err
	}

	s.Audit.Log(ctx, actor, models.AuditActionDelete, "Roles", id)
	return nil
}

func (s *RoleServiceImpl) GrantPermissions(ctx context.Context, actor *models.User, req *GrantRequest) error {
	if req.Role == "" {
		return errors.New("role is required")
	}
	if _, err := s.RoleRepo.FindByName(ctx, req.Role); err != nil {
		return errors.New("role not found")
	}

	for _, perm := range req.Permissions {
		if err := s.RolePermRepo.Grant(ctx, req.Role, perm); err != nil {
			return err
		}
	}

	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Roles", req.Role, map[string]models.Change{
		"permissions": {New: req.Permissions},
	})
	return nil
}

func (s *RoleServiceImpl) RevokePermission(ctx context.Context, actor *models.User, roleName, permName string) error {
	if err := s.RolePermRepo.Revoke(ctx, roleName, permName); err != nil {
		return err
	}

	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Roles", roleName, map[string]models.Change{
		"permissions": {Old: permName},
	})
	return nil
}

func (s *RoleServiceImpl) RolePermissions(ctx context.Context, roleName string) ([]string, error) {
	pairs, err := s.RolePermRepo.ListByRole(ctx, roleName)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		names = append(names, pair.Permission)
	}
	return names, nil
}
