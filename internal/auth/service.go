// Package auth handles username/password authentication and token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogapi/service/internal/user"
)

const tokenTTL = 30 * 24 * time.Hour

// ErrInvalidCredentials is returned when the username or password is wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUsernameTaken is returned when the username is already registered.
var ErrUsernameTaken = errors.New("username already taken")

// ErrAccountDisabled is returned when the account exists but is disabled.
var ErrAccountDisabled = errors.New("account is disabled")

// accounts is the subset of the user service auth depends on.
type accounts interface {
	Create(ctx context.Context, username, passwordHash string) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// Service contains the business logic for credential authentication. It never
// stores raw passwords: only bcrypt hashes reach the user store.
type Service struct {
	users     accounts
	jwtSecret string
}

// NewService creates a new auth Service.
func NewService(users accounts, jwtSecret string) *Service {
	return &Service{users: users, jwtSecret: jwtSecret}
}

// Register creates a new user account and issues a JWT token.
func (s *Service) Register(ctx context.Context, username, password string) (string, *user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return "", nil, ErrUsernameTaken
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// Login verifies the credentials and issues a JWT token.
func (s *Service) Login(ctx context.Context, username, password string) (string, *user.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Enabled {
		return "", nil, ErrAccountDisabled
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// issueToken creates a signed JWT for the given user.
func (s *Service) issueToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(u.ID, 10),
		"username": u.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
