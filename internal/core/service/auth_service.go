package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/martijn/taskdeck/internal/core/domain"
	"github.com/martijn/taskdeck/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionExpirationDays = 14
	BcryptCost            = 10
)

type AuthService struct {
	userRepo         repository.UserRepository
	sessionSecret    string
	sessionAlgorithm string
}

func NewAuthService(userRepo repository.UserRepository, sessionSecret, sessionAlgorithm string) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		sessionSecret:    sessionSecret,
		sessionAlgorithm: sessionAlgorithm,
	}
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

// Register creates a new user with a hashed password. Returns
// ErrUsernameTaken if the username is already registered.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !s.VerifyPassword(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}

	return s.IssueSession(user.Username)
}

// IssueSession signs a session token carrying the username.
func (s *AuthService) IssueSession(username string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(SessionExpirationDays * 24 * time.Hour)

	claims := SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "taskdeck",
		},
	}

	var signingMethod jwt.SigningMethod
	switch s.sessionAlgorithm {
	case "HS256":
		signingMethod = jwt.SigningMethodHS256
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	tokenString, err := token.SignedString([]byte(s.sessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ResolveSession verifies a session token and loads the referenced user.
// Returns ErrInvalidSession for a bad token and ErrUserNotFound when the
// token is valid but the user row is gone.
func (s *AuthService) ResolveSession(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.sessionAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SessionClaims represents the signed session cookie payload
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
