package services

import (
	"context"
	"testing"
	"time"

	"wallboard/app/apperrors"
	"wallboard/app/metrics"
	"wallboard/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *mock.UserRepository) {
	users := mock.NewUserRepository()
	return NewAuthService(users, metrics.New("test"), "test-secret", time.Hour), users
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-hash"))
	assert.False(t, VerifyPassword("anything", "$bcrypt$whatever"))
	assert.False(t, VerifyPassword("anything", ""))
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice@example.com", "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	token, err = svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	user := svc.UserFromToken(ctx, token)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "alice", "password456")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "alice", "short")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.Register(ctx, "not-an-email", "alice", "password123")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.Register(ctx, "bob@example.com", "ab", "password123")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	_, err = svc.Login(ctx, "nobody", "password123")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestUserFromTokenFailures(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	assert.Nil(t, svc.UserFromToken(ctx, ""))
	assert.Nil(t, svc.UserFromToken(ctx, "garbage.token.here"))

	// A token signed with a different secret must not resolve.
	other := NewAuthService(mock.NewUserRepository(), metrics.New("other"), "other-secret", time.Hour)
	token, err := other.Register(ctx, "eve@example.com", "eve", "password123")
	require.NoError(t, err)
	assert.Nil(t, svc.UserFromToken(ctx, token))
}
