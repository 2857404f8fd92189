package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
	"github.com/albertcheruiyot/recipebox/internal/core/repository"
)

const BcryptCost = 10

const (
	MsgUsernameEmpty    = "Username must not be empty"
	MsgUsernameTaken    = "Username must be unique"
	MsgWrongCredentials = "Unauthorized: wrong username/password"
	MsgUserNotFound     = "User not found"
	MsgPasswordTooLong  = "Password must be at most 72 bytes long"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput is the data accepted when registering a new user.
type SignupInput struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Signup validates the username, stores a new user with a hashed password and
// returns it.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	if in.Username == "" {
		return nil, NewValidationError(MsgUsernameEmpty)
	}

	_, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err == nil {
		return nil, NewConflictError(MsgUsernameTaken)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, NewPersistenceError("Failed to create user", err)
	}

	hash, err := s.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, NewValidationError(MsgPasswordTooLong)
	}
	if err != nil {
		return nil, NewPersistenceError("Failed to create user", err)
	}

	user := domain.NewUser(in.Username, hash, in.ImageURL, in.Bio)
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflictError(MsgUsernameTaken)
		}
		return nil, NewPersistenceError("Failed to create user", err)
	}

	return user, nil
}

// Login returns the user matching the credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewAuthError(MsgWrongCredentials)
	}
	if err != nil {
		return nil, NewPersistenceError("Failed to log in", err)
	}

	if !s.VerifyPassword(password, user.Password) {
		return nil, NewAuthError(MsgWrongCredentials)
	}

	return user, nil
}

// CurrentUser resolves the user a session points at.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewAuthError(MsgUserNotFound)
	}
	if err != nil {
		return nil, NewPersistenceError("Failed to load user", err)
	}
	return user, nil
}
