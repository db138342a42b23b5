package user

import (
	"context"
	"errors"
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	UserType string `json:"userType"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	UserType string `json:"userType"`
	Status   string `json:"status"`
}

type UserService interface {
	CreateUser(ctx context.Context, actor *models.User, req *CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, actor *models.User, id string, req *UpdateUserRequest) error
	DeleteUser(ctx context.Context, actor *models.User, id string) error
}

type UserServiceImpl struct {
	Repo  UserRepository
	Audit audit.AuditService
}

func NewUserService(repo UserRepository, auditSvc audit.AuditService) UserService {
	return &UserServiceImpl{Repo: repo, Audit: auditSvc}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, actor *models.User, req *CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, _ := s.Repo.FindByEmail(ctx, email); existing != nil {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userType := req.UserType
	if userType == "" {
		userType = "customer"
	}

	created, err := s.Repo.Create(ctx, &models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		UserType: userType,
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, actor, models.AuditActionCreate, "Users", created.ID.Hex())
	return created, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.FindByID(ctx, id)
}

// FindByID satisfies the session gate's user lookup.
func (s *UserServiceImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, actor *models.User, id string, req *UpdateUserRequest) error {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	update := bson.M{}
	changes := map[string]models.Change{}
	if req.Name != "" && req.Name != existing.Name {
		update["name"] = req.Name
		changes["name"] = models.Change{Old: existing.Name, New: req.Name}
	}
	if req.UserType != "" && req.UserType != existing.UserType {
		update["user_type"] = req.UserType
		changes["user_type"] = models.Change{Old: existing.UserType, New: req.UserType}
	}
	if req.Status != "" && req.Status != existing.Status {
		update["status"] = req.Status
		changes["status"] = models.Change{Old: existing.Status, New: req.Status}
	}
	if len(update) == 0 {
		return nil
	}

	if err := s.Repo.Update(ctx, id, update); err != nil {
		return err
	}
	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Users", id, changes)
	return nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	if actor != nil && actor.ID.Hex() == id {
		return errors.New("you cannot delete your own account")
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Audit.Log(ctx, actor, models.AuditActionDelete, "Users", id)
	return nil
}
