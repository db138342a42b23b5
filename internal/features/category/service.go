package category

import (
	"context"
	"errors"
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"
	"go-storefront/pkg/utils"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, actor *models.User, category *Category) (*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, actor *models.User, id string, category *Category) error
	DeleteCategory(ctx context.Context, actor *models.User, id string) error
}

type CategoryServiceImpl struct {
	Repo  CategoryRepository
	Audit audit.AuditService
}

func NewCategoryService(repo CategoryRepository, auditSvc audit.AuditService) CategoryService {
	return &CategoryServiceImpl{Repo: repo, Audit: auditSvc}
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, actor *models.User, category *Category) (*Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, errors.New("category name is required")
	}
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}

	created, err := s.Repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, actor, models.AuditActionCreate, "Categories", created.ID.Hex())
	return created, nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *CategoryServiceImpl) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.Repo.FindBySlug(ctx, slug)
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]Category, error) {
	return s.Repo.List(ctx)
}

func (s *CategoryServiceImpl) ListActive(ctx context.Context) ([]Category, error) {
	return s.Repo.ListActive(ctx)
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, actor *models.User, id string, category *Category) error {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}

	if err := s.Repo.Update(ctx, id, category); err != nil {
		return err
	}

	changes := map[string]models.Change{}
	if existing.Name != category.Name {
		changes["name"] = models.Change{Old: existing.Name, New: category.Name}
	}
	if existing.Status != category.Status {
		changes["status"] = models.Change{Old: existing.Status, New: category.Status}
	}
	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Categories", id, changes)
	return nil
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, actor *models.User, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Audit.Log(ctx, actor, models.AuditActionDelete, "Categories", id)
	return nil
}
