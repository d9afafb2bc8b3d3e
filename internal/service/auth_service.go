package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

// ErrUsernameTaken indicates the requested username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// ErrEmailTaken indicates the requested email already exists.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials indicates a failed signin attempt.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles signup and credential exchange.
type AuthService interface {
	Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error)
	Signin(ctx context.Context, payload dto.SigninRequest) (dto.AuthResponse, error)
}

type authService struct {
	users     repository.UserRepository
	issuer    *auth.TokenIssuer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users repository.UserRepository, issuer *auth.TokenIssuer, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		issuer:    issuer,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	username := strings.TrimSpace(payload.Username)

	if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return dto.AuthResponse{}, err
	} else if taken {
		return dto.AuthResponse{}, ErrUsernameTaken
	}

	if taken, err := s.users.ExistsByEmail(ctx, payload.Email); err != nil {
		return dto.AuthResponse{}, err
	} else if taken {
		return dto.AuthResponse{}, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	user := models.User{
		Username: username,
		Email:    strings.ToLower(strings.TrimSpace(payload.Email)),
		Password: string(hashed),
		Role:     payload.Role,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user registered")

	return s.issueFor(user)
}

func (s *authService) Signin(ctx context.Context, payload dto.SigninRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

func (s *authService) issueFor(user models.User) (dto.AuthResponse, error) {
	role := auth.ParseRole(user.Role)
	token, err := s.issuer.Issue(user.ID, user.Username, role)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{
		Token:    token,
		Username: user.Username,
		Role:     role.String(),
	}, nil
}
