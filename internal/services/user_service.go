package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homefinder-listings/internal/auth"
	"homefinder-listings/internal/models"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/internal/validators"
	"homefinder-listings/pkg/logger"
	"homefinder-listings/pkg/metrics"
)

type UserService struct {
	repo      repositories.UserRepository
	validator validators.UserValidator
	tokens    *auth.TokenIssuer
}

func NewUserService(repo repositories.UserRepository, validator validators.UserValidator, tokens *auth.TokenIssuer) *UserService {
	return &UserService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, repositories.ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	start := time.Now()
	hash, err := auth.HashPassword(req.Password)
	metrics.DBOperationDuration.WithLabelValues("bcrypt", "hash_password", "users").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return s.respond(user)
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	start := time.Now()
	ok := auth.CheckPassword(user.PasswordHash, req.Password)
	metrics.DBOperationDuration.WithLabelValues("bcrypt", "verify_password", "users").Observe(time.Since(start).Seconds())
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}

	return s.respond(user)
}

// EnsureAdmin creates the administrator account unless one with the same email exists.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.Register(ctx, &models.RegisterRequest{
		Name:     name,
		Username: "admin",
		Email:    email,
		Password: password,
	})
	if errors.Is(err, repositories.ErrEmailTaken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	logger.GlobalLogger.Printf("Seeded admin user %s", email)
	return nil
}

func (s *UserService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{
		User:      *user,
		Token:     token.Token,
		ExpiresIn: token.ExpiresIn,
		TokenType: token.TokenType,
	}, nil
}
