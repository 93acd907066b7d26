package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"wallboard/app/apperrors"
	"wallboard/app/metrics"
	"wallboard/app/models"
	"wallboard/app/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters for password hashing.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// AuthService handles registration, login and bearer-token resolution.
// Authentication is optional everywhere: an absent or invalid token simply
// means an anonymous caller.
type AuthService struct {
	users   repositories.UserRepository
	metrics *metrics.Metrics

	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, m *metrics.Metrics, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		metrics:  m,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Register creates an account and returns an access token for it.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (string, error) {
	if len(password) < 8 || len(password) > 200 {
		return "", apperrors.Validation("password must be between 8 and 200 characters")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", apperrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return "", apperrors.Validation("invalid user: %v", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return "", apperrors.Conflict("username or email already exists")
		}
		return "", apperrors.Internal(err, "failed to create user")
	}

	s.metrics.UsersRegistered.Inc()
	return s.issueToken(user.ID)
}

// Login verifies credentials and returns an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.Unauthorized("invalid credentials")
		}
		return "", apperrors.Internal(err, "failed to look up user")
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", apperrors.Unauthorized("invalid credentials")
	}
	return s.issueToken(user.ID)
}

// UserFromToken resolves a bearer token to its user. Any failure, including
// an empty token, yields nil: the caller proceeds as anonymous.
func (s *AuthService) UserFromToken(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil
	}
	return user
}

func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal(err, "failed to sign token")
	}
	return token, nil
}

// HashPassword derives an argon2id hash in the standard encoded form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword checks password against an encoded argon2id hash in
// constant time.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
