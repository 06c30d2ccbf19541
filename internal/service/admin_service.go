package service

import (
	"context"
	"fmt"

	"news-events-api/internal/auth"
	errs "news-events-api/internal/errors"
	"news-events-api/internal/model"
	"news-events-api/internal/repository"
)

// AdminService handles admin registration, authentication and profiles.
type AdminService interface {
	Register(ctx context.Context, email, password, name string) (*model.Admin, string, error)
	Login(ctx context.Context, email, password string) (*model.Admin, string, error)
	Profile(ctx context.Context, id int64) (*model.Admin, error)
	UpdateProfile(ctx context.Context, id int64, name, password *string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
}

type adminService struct {
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
}

// NewAdminService creates a new admin service.
func NewAdminService(adminRepo repository.AdminRepository, jwtService *auth.JWTService) AdminService {
	return &adminService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Register creates a new admin with a hashed password and issues a token.
func (s *adminService) Register(ctx context.Context, email, password, name string) (*model.Admin, string, error) {
	// Check if an admin already uses this email
	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", errs.E(errs.KindDuplicateKey, "Admin with this email already exists")
	}
	if err != nil && !errs.Is(err, errs.KindNotFound) {
		return nil, "", fmt.Errorf("check admin existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Email:    email,
		Password: hashed,
		Name:     name,
	}
	// A concurrent register with the same email loses here on the unique key
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(admin)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return admin, token, nil
}

// Login authenticates an admin and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *adminService) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errs.E(errs.KindUnauthorized, "Invalid email or password")
	}

	if !auth.CheckPassword(admin.Password, password) {
		return nil, "", errs.E(errs.KindUnauthorized, "Invalid email or password")
	}

	token, err := s.jwtService.GenerateToken(admin)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return admin, token, nil
}

// Profile returns the admin identified by the verified token.
func (s *adminService) Profile(ctx context.Context, id int64) (*model.Admin, error) {
	return s.adminRepo.FindByID(ctx, id)
}

// UpdateProfile changes the name and/or password of an admin. Nil fields keep
// their stored value.
func (s *adminService) UpdateProfile(ctx context.Context, id int64, name, password *string) (*model.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != "" {
		admin.Name = *name
	}
	if password != nil && *password != "" {
		hashed, err := auth.HashPassword(*password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		admin.Password = hashed
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// List returns all admin accounts.
func (s *adminService) List(ctx context.Context) ([]model.Admin, error) {
	return s.adminRepo.List(ctx)
}
