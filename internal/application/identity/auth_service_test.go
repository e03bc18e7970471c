package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boilerparts/backend/internal/domain/identity"
	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/auth"
	"github.com/boilerparts/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func createTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("alice", "alice@example.com", "Password123")
	require.NoError(t, err)
	user.ID = 7
	return user
}

func createAuthService(userRepo *MockUserRepository) (*AuthService, *auth.JWTService, *auth.InMemoryTokenBlacklist) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(userRepo, jwtService, blacklist, zap.NewNop()), jwtService, blacklist
}

func TestAuthService_Validate(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t)

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		svc, _, _ := createAuthService(userRepo)

		id, err := svc.Validate(ctx, "alice", "Password123")
		require.NoError(t, err)
		assert.Equal(t, identity.Identity{ID: 7, Username: "alice", Email: "alice@example.com"}, *id)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		userRepo.On("FindByUsername", mock.Anything, "bob").Return(nil, shared.ErrNotFound)
		svc, _, _ := createAuthService(userRepo)

		_, wrongPassword := svc.Validate(ctx, "alice", "nope")
		_, unknownUser := svc.Validate(ctx, "bob", "Password123")

		require.Error(t, wrongPassword)
		require.Error(t, unknownUser)
		assert.Equal(t, wrongPassword, unknownUser)
		assert.True(t, errors.Is(wrongPassword, shared.ErrUnauthorized))
	})

	t.Run("store failure propagates", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, storeErr)
		svc, _, _ := createAuthService(userRepo)

		_, err := svc.Validate(ctx, "alice", "Password123")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(createTestUser(t), nil)
	svc, jwtService, _ := createAuthService(userRepo)

	result, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "Password123"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.User.ID)
	assert.Equal(t, "Bearer", result.Token.TokenType)

	claims, err := jwtService.ValidateAccessToken(result.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t)

	t.Run("rotates refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, int64(7)).Return(user, nil)
		svc, jwtService, blacklist := createAuthService(userRepo)

		pair, err := jwtService.GenerateTokenPair(auth.Subject{UserID: 7, Username: "alice"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Equal(t, 1, blacklist.Len())

		_, err = svc.Refresh(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "revoked")
	})

	t.Run("access token rejected", func(t *testing.T) {
		svc, jwtService, _ := createAuthService(new(MockUserRepository))
		pair, err := jwtService.GenerateTokenPair(auth.Subject{UserID: 7, Username: "alice"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, RefreshTokenRequest{RefreshToken: pair.AccessToken})
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})

	t.Run("revocation failure fails the refresh", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		_, jwtService, _ := createAuthService(userRepo)
		storeErr := errors.New("redis: connection refused")
		svc := NewAuthService(userRepo, jwtService, unrevokableBlacklist{err: storeErr}, zap.NewNop())
		pair, err := jwtService.GenerateTokenPair(auth.Subject{UserID: 7, Username: "alice"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, refreshed)
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("deleted user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, int64(7)).Return(nil, shared.ErrNotFound)
		svc, jwtService, _ := createAuthService(userRepo)
		pair, err := jwtService.GenerateTokenPair(auth.Subject{UserID: 7, Username: "alice"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})
}

// unrevokableBlacklist reports every token as live and fails to revoke
type unrevokableBlacklist struct {
	err error
}

func (b unrevokableBlacklist) Revoke(context.Context, string, time.Duration) error {
	return b.err
}

func (b unrevokableBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, jwtService, blacklist := createAuthService(new(MockUserRepository))

	pair, err := jwtService.GenerateTokenPair(auth.Subject{UserID: 7, Username: "alice"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims, LogoutRequest{RefreshToken: pair.RefreshToken}))

	revoked, err := blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 2, blacklist.Len())

	t.Run("foreign refresh token is not revoked", func(t *testing.T) {
		other, err := jwtService.GenerateTokenPair(auth.Subject{UserID: 8, Username: "bob"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, claims, LogoutRequest{RefreshToken: other.RefreshToken}))
		assert.Equal(t, 2, blacklist.Len())
	})

	t.Run("garbage refresh token is ignored", func(t *testing.T) {
		assert.NoError(t, svc.Logout(ctx, claims, LogoutRequest{RefreshToken: "garbage"}))
	})
}
