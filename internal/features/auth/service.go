package auth

import (
	"context"
	"errors"
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"
	"go-storefront/internal/features/user"
	"go-storefront/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *LoginRequest) (*models.User, string, error)
}

type AuthServiceImpl struct {
	Users user.UserRepository
	Audit audit.AuditService
}

func NewAuthService(users user.UserRepository, auditSvc audit.AuditService) AuthService {
	return &AuthServiceImpl{Users: users, Audit: auditSvc}
}

// Register creates a storefront customer account and returns a signed session
// token. Back-office accounts are created through the user admin instead.
func (s *AuthServiceImpl) Register(ctx context.Context, req *RegisterRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, _ := s.Users.FindByEmail(ctx, email); existing != nil {
		return nil, "", errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	created, err := s.Users.Create(ctx, &models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		UserType: "customer",
	})
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(created.ID, created.UserType)
	if err != nil {
		return nil, "", err
	}

	s.Audit.Log(ctx, created, models.AuditActionCreate, "Users", created.ID.Hex())
	return created, token, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *LoginRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	found, err := s.Users.FindByEmail(ctx, email)
	if err != nil || found == nil {
		return nil, "", ErrInvalidCredentials
	}
	if found.Status == "inactive" {
		return nil, "", errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(found.ID, found.UserType)
	if err != nil {
		return nil, "", err
	}

	s.Audit.Log(ctx, found, models.AuditActionLogin, "Users", found.ID.Hex())
	return found, token, nil
}
