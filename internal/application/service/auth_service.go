package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/pkg/utils"
)

var (
	// ErrInvalidCredentials is returned on a bad email/password pair
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that exists
	ErrEmailTaken = errors.New("email already registered")
)

// TokenIssuer mints an auth token for a user
type TokenIssuer interface {
	Issue(user *entity.User) (string, error)
}

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
}

// AuthService registers users, verifies logins, and resolves actors
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)

	// Resolve looks up the actor identity (id, email, role) for a user ID.
	// The auth middleware calls it on every request so role changes take
	// effect without re-login.
	Resolve(ctx context.Context, userID string) (entity.Actor, error)
}

type authServiceImpl struct {
	userRepo port.UserRepository
	issuer   TokenIssuer
	logger   Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo port.UserRepository, issuer TokenIssuer, logger Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

// Register creates a new employee or admin account
func (s *authServiceImpl) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := utils.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", lifecycle.ErrInvalidInput, err)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", lifecycle.ErrInvalidInput)
	}
	if input.Role != entity.RoleEmployee && input.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", lifecycle.ErrInvalidInput, input.Role)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, port.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         input.Role,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", "error", err, "email", email)
		return nil, err
	}

	s.logger.Info("User registered", "id", user.ID, "email", email, "role", user.Role)
	return user, nil
}

// Login verifies the credentials and returns a signed token
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("User logged in", "id", user.ID, "email", email)
	return token, user, nil
}

// Resolve returns the actor identity for a user ID
func (s *authServiceImpl) Resolve(ctx context.Context, userID string) (entity.Actor, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.Actor{}, err
	}
	return user.AsActor(), nil
}
