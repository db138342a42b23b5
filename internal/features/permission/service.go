package permission

import (
	"context"
	"strings"
	"time"

	"go-storefront/internal/common/models"
)

// PermissionService resolves effective permission sets and manages the
// permission catalogue.
type PermissionService interface {
	ResolveEffectivePermissions(ctx context.Context, user *models.User) (Set, error)
	CreatePermission(ctx context.Context, p *Permission) (*Permission, error)
	ListPermissions(ctx context.Context) ([]Permission, error)
	UpdatePermission(ctx context.Context, id string, p *Permission) error
	DeletePermission(ctx context.Context, id string) error
	ListRolePermissions(ctx context.Context) ([]RolePermission, error)
}

type PermissionServiceImpl struct {
	PermissionRepo PermissionRepository
	RolePermRepo   RolePermissionRepository
}

func NewPermissionService(permissionRepo PermissionRepository, rolePermRepo RolePermissionRepository) PermissionService {
	return &PermissionServiceImpl{
		PermissionRepo: permissionRepo,
		RolePermRepo:   rolePermRepo,
	}
}

// ResolveEffectivePermissions returns the permissions granted to the role
// matching the user's type (case-insensitive). Admins get an empty set: the
// CanRead/CanWrite gates bypass the set entirely for them, so there is
// nothing to look up. The result is a fresh snapshot on every call.
func (s *PermissionServiceImpl) ResolveEffectivePermissions(ctx context.Context, user *models.User) (Set, error) {
	if user == nil {
		return NewSet(), nil
	}
	if user.IsAdmin() {
		return NewSet(), nil
	}

	pairs, err := s.RolePermRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	set := NewSet()
	for _, pair := range pairs {
		if strings.EqualFold(pair.Role, user.UserType) {
			set[pair.Permission] = struct{}{}
		}
	}
	return set, nil
}

func (s *PermissionServiceImpl) CreatePermission(ctx context.Context, p *Permission) (*Permission, error) {
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if err := s.PermissionRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PermissionServiceImpl) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.PermissionRepo.List(ctx)
}

func (s *PermissionServiceImpl) UpdatePermission(ctx context.Context, id string, p *Permission) error {
	p.UpdatedAt = time.Now()
	return s.PermissionRepo.Update(ctx, id, p)
}

func (s *PermissionServiceImpl) DeletePermission(ctx context.Context, id string) error {
	return s.PermissionRepo.Delete(ctx, id)
}

func (s *PermissionServiceImpl) ListRolePermissions(ctx context.Context) ([]RolePermission, error) {
	return s.RolePermRepo.List(ctx)
}

// CanRead reports whether the user may read the named module. Admins are
// authorized without consulting the set; everyone else needs the exact
// "<module>_Read" entry. Absence means no access.
func CanRead(user *models.User, perms Set, module string) bool {
	if user.IsAdmin() {
		return true
	}
	return perms.Has(module + "_Read")
}

// CanWrite mirrors CanRead for "<module>_Write".
func CanWrite(user *models.User, perms Set, module string) bool {
	if user.IsAdmin() {
		return true
	}
	return perms.Has(module + "_Write")
}
