package store

import (
	"context"
	"errors"
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"
)

type StoreService interface {
	CreateStore(ctx context.Context, actor *models.User, s *Store) (*Store, error)
	GetStore(ctx context.Context, id string) (*Store, error)
	ListStores(ctx context.Context) ([]Store, error)
	UpdateStore(ctx context.Context, actor *models.User, id string, s *Store) error
	DeleteStore(ctx context.Context, actor *models.User, id string) error
}

type StoreServiceImpl struct {
	Repo  StoreRepository
	Audit audit.AuditService
}

func NewStoreService(repo StoreRepository, auditSvc audit.AuditService) StoreService {
	return &StoreServiceImpl{Repo: repo, Audit: auditSvc}
}

func (s *StoreServiceImpl) CreateStore(ctx context.Context, actor *models.User, st *Store) (*Store, error) {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return nil, errors.New("store name is required")
	}
	if st.Code == "" {
		return nil, errors.New("store code is required")
	}
	st.Code = strings.ToUpper(st.Code)

	created, err := s.Repo.Create(ctx, st)
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, actor, models.AuditActionCreate, "Stores", created.ID.Hex())
	return created, nil
}

func (s *StoreServiceImpl) GetStore(ctx context.Context, id string) (*Store, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *StoreServiceImpl) ListStores(ctx context.Context) ([]Store, error) {
	return s.Repo.List(ctx)
}

func (s *StoreServiceImpl) UpdateStore(ctx context.Context, actor *models.User, id string, st *Store) error {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	st.Code = strings.ToUpper(st.Code)

	if err := s.Repo.Update(ctx, id, st); err != nil {
		return err
	}

	changes := map[string]models.Change{}
	if existing.Name != st.Name {
		changes["name"] = models.Change{Old: existing.Name, New: st.Name}
	}
	if existing.Status != st.Status {
		changes["status"] = models.Change{Old: existing.Status, New: st.Status}
	}
	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Stores", id, changes)
	return nil
}

func (s *StoreServiceImpl) DeleteStore(ctx context.Context, actor *models.User, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Audit.Log(ctx, actor, models.AuditActionDelete, "Stores", id)
	return nil
}
