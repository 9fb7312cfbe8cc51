package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/domain/user"
	"github.com/pinkcart/api/internal/platform/auth"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login checks admin credentials and returns the identity plus a signed
	// session token. Non-admin accounts are rejected even with a valid
	// password.
	Login(ctx context.Context, in user.LoginInput) (*user.UserData, string, error)
	// EnsureSuperAdmin seeds the bootstrap SUPER_ADMIN account when it does
	// not exist yet. Empty credentials disable seeding.
	EnsureSuperAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	users  repositories.UserRepository
	tokens *auth.Service
	log    *logrus.Entry
}

func NewAuthService(users repositories.UserRepository, tokens *auth.Service, log *logrus.Entry) AuthService {
	return &authService{users: users, tokens: tokens, log: log}
}

func (s *authService) Login(ctx context.Context, in user.LoginInput) (*user.UserData, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, "", validationErr("email", "email is required")
	}
	if in.Password == "" {
		return nil, "", validationErr("password", "password is required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !u.Role.AtLeast(user.RoleAdmin) {
		return nil, "", ErrAdminRequired
	}

	data := user.UserData{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
	token, err := s.tokens.Generate(data)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.SetLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		s.log.WithError(err).Warn("failed to record last login")
	}
	return &data, token, nil
}

func (s *authService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &user.User{
		Email:        email,
		Name:         "Super Admin",
		PasswordHash: string(hash),
		Role:         user.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil
		}
		return err
	}
	s.log.WithField("email", email).Info("seeded super admin account")
	return nil
}
