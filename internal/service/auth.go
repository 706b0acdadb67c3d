package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence AuthService needs
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// bcrypt reads at most 72 bytes of a password; longer input is rejected by
// GenerateFromPassword, so both hashing and comparison use the same prefix.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

type AuthService struct {
	users      UserStore
	bcryptCost int
	log        *zap.Logger
	// compared against when the username is unknown so both failures cost the same
	dummyHash []byte
}

func NewAuthService(users UserStore, bcryptCost int, log *zap.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("recipebox-placeholder"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("invalid bcrypt cost %d: %v", bcryptCost, err))
	}
	return &AuthService{
		users:      users,
		bcryptCost: bcryptCost,
		log:        log,
		dummyHash:  dummy,
	}
}

// Register creates a user with a salted password hash
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	// Check if user already exists
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(passwordBytes(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifies the credentials. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, passwordBytes(password))
			s.log.Debug("Login failed", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes(password)); err != nil {
		s.log.Debug("Login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID loads a user, returning repository.ErrNotFound when absent
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
