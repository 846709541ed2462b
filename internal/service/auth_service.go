package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/auth"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/ports"
)

type authService struct {
	users  ports.UserRepository
	tokens *auth.TokenManager
	log    *zap.Logger
}

func NewAuthService(users ports.UserRepository, tokens *auth.TokenManager, log *zap.Logger) *authService {
	return &authService{users: users, tokens: tokens, log: log}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}

	saved, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, err
		}
		s.log.Error("store failure", zap.String("op", "creating user"), zap.Error(err))
		return nil, fmt.Errorf("creating user: %w", models.ErrStore)
	}

	token, err := s.tokens.Issue(saved.ID, saved.Role)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", saved.ID.String()))
	return &models.AuthResponse{Token: token, User: *saved}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrBadCredentials
		}
		s.log.Error("store failure", zap.String("op", "fetching user"), zap.Error(err))
		return nil, fmt.Errorf("fetching user: %w", models.ErrStore)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, models.ErrBadCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}
