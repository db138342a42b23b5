package product

import (
	"context"
	"errors"
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"
	"go-storefront/pkg/utils"
)

type ProductService interface {
	CreateProduct(ctx context.Context, actor *models.User, product *Product) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListActive(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]Product, error)
	UpdateProduct(ctx context.Context, actor *models.User, id string, product *Product) error
	AdjustStock(ctx context.Context, id string, delta int) error
	DeleteProduct(ctx context.Context, actor *models.User, id string) error
}

type ProductServiceImpl struct {
	Repo  ProductRepository
	Audit audit.AuditService
}

func NewProductService(repo ProductRepository, auditSvc audit.AuditService) ProductService {
	return &ProductServiceImpl{Repo: repo, Audit: auditSvc}
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, actor *models.User, product *Product) (*Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, errors.New("product name is required")
	}
	if product.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}
	if product.OnSale && product.SalePrice >= product.Price {
		return nil, errors.New("sale price must be below the regular price")
	}
	if product.Slug == "" {
		product.Slug = utils.Slugify(product.Name)
	}

	created, err := s.Repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, actor, models.AuditActionCreate, "Products", created.ID.Hex())
	return created, nil
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *ProductServiceImpl) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.Repo.FindBySlug(ctx, slug)
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context) ([]Product, error) {
	return s.Repo.List(ctx)
}

func (s *ProductServiceImpl) ListActive(ctx context.Context) ([]Product, error) {
	return s.Repo.ListActive(ctx)
}

func (s *ProductServiceImpl) ListByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	return s.Repo.ListByCategory(ctx, categoryID)
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, actor *models.User, id string, product *Product) error {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.OnSale && product.SalePrice >= product.Price {
		return errors.New("sale price must be below the regular price")
	}
	if product.Slug == "" {
		product.Slug = existing.Slug
	}

	if err := s.Repo.Update(ctx, id, product); err != nil {
		return err
	}

	changes := map[string]models.Change{}
	if existing.Name != product.Name {
		changes["name"] = models.Change{Old: existing.Name, New: product.Name}
	}
	if existing.Price != product.Price {
		changes["price"] = models.Change{Old: existing.Price, New: product.Price}
	}
	if existing.Status != product.Status {
		changes["status"] = models.Change{Old: existing.Status, New: product.Status}
	}
	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Products", id, changes)
	return nil
}

func (s *ProductServiceImpl) AdjustStock(ctx context.Context, id string, delta int) error {
	return s.Repo.AdjustStock(ctx, id, delta)
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, actor *models.User, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Audit.Log(ctx, actor, models.AuditActionDelete, "Products", id)
	return nil
}
