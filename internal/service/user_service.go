package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/aryanarora07/studybuddy-new/internal/audit"
	"github.com/aryanarora07/studybuddy-new/internal/auth"
	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/repository"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// userServiceImpl implements UserService.
type userServiceImpl struct {
	repo repository.UserRepository
	jwt  *auth.Manager
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, jwtManager *auth.Manager) UserService {
	return &userServiceImpl{
		repo: repo,
		jwt:  jwtManager,
	}
}

// Signup registers a new user.
func (s *userServiceImpl) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.User, error) {
	l := log.Ctx(ctx)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		l.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	audit.Log(ctx, audit.ActionSignup, user.ID, "user registered")

	return user, nil
}

// Login authenticates a user and issues a token pair.
func (s *userServiceImpl) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			audit.LogWithDetail(ctx, audit.ActionLoginFailed, "", req.Email, "login failed: user not found")
			return nil, ErrInvalidCredentials
		}
		l.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		audit.LogWithDetail(ctx, audit.ActionLoginFailed, user.ID, req.Email, "login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresAt, err := s.jwt.GenerateTokenPair(user.ID, user.Email, user.Name)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to generate tokens")
		return nil, err
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")

	return &domain.AuthResponse{
		User:         user.ToResponse(),
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// RefreshToken issues a new token pair from a valid refresh token.
func (s *userServiceImpl) RefreshToken(ctx context.Context, req *domain.RefreshTokenRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	claims, err := s.jwt.ValidateToken(req.RefreshToken)
	if err != nil || claims.Type != "refresh" {
		l.Warn().Err(err).Msg("failed to refresh token")
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	accessToken, refreshToken, expiresAt, err := s.jwt.GenerateTokenPair(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionRefreshToken, user.ID, "token refreshed")

	return &domain.AuthResponse{
		User:         user.ToResponse(),
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
