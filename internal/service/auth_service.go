// Package service holds the business rules between handlers and repositories.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// accessTokenBytes is the amount of randomness behind each access token.
// Hex encoding doubles the length on the wire.
const accessTokenBytes = 128

// AuthService implements registration, login, and bearer token resolution.
type AuthService struct {
	userRepo repository.UserRepository
}

// Credentials is the input for Register and Login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user with a hashed password and a fresh access
// token. Duplicate usernames are rejected both by a pre-query and by the
// store's unique constraint, since a race between the two is possible.
func (s *AuthService) Register(ctx context.Context, in Credentials) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	token, err := GenerateAccessToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:    username,
		Password:    string(hashed),
		AccessToken: token,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the user with the access
// token issued at registration. Unknown usernames and wrong passwords
// produce the same generic failure to avoid user enumeration.
func (s *AuthService) Login(ctx context.Context, in Credentials) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}

	return user, nil
}

// ResolveToken resolves an Authorization header value to a user. The value
// is either the raw token or the token behind a scheme marker and a single
// space ("Bearer <token>"). Malformed and unknown tokens are both treated
// as authentication failures.
func (s *AuthService) ResolveToken(ctx context.Context, headerValue string) (*models.User, error) {
	if headerValue == "" {
		return nil, models.NewUnauthenticatedError("Authorization required")
	}

	token := strings.TrimPrefix(headerValue, "Bearer ")

	user, err := s.userRepo.GetByAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid access token")
	}
	return user, nil
}

// GenerateAccessToken returns a hex-encoded high-entropy bearer token.
// Exported so the seeder can mint working tokens for demo users.
func GenerateAccessToken() (string, error) {
	buf := make([]byte, accessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
