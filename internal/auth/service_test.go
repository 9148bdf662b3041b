// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/user"
)

type fakeTokenStore struct {
	revoked map[string]bool
}

func (f *fakeTokenStore) Blacklist(_ context.Context, token string) error {
	if f.revoked == nil {
		f.revoked = make(map[string]bool)
	}
	f.revoked[token] = true
	return nil
}

func (f *fakeTokenStore) IsBlacklisted(
	_ context.Context,
	token string,
) (bool, error) {
	return f.revoked[token], nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*user.User
}

func newFakeUserStore(users ...*user.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[primitive.ObjectID]*user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if u.Email != "" && existing.Email == u.Email {
			return fmt.Errorf("insert user: %w", core.ErrDuplicateKey)
		}
	}
	u.ID = primitive.NewObjectID()
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserStore) FindByEmail(
	_ context.Context,
	email string,
) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", core.ErrNotFound)
}

func (f *fakeUserStore) FindByPhone(
	_ context.Context,
	phone string,
) (*user.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			found := *u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", core.ErrNotFound)
}

func (f *fakeUserStore) ExistsByID(
	_ context.Context,
	id primitive.ObjectID,
) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserStore) SetRefreshToken(
	_ context.Context,
	id primitive.ObjectID,
	token string,
) error {
	if u, ok := f.users[id]; ok {
		u.RefreshToken = token
	}
	return nil
}

func newTestService(t *testing.T, users *fakeUserStore) *Service {
	t.Helper()

	tokens, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	return NewService(&fakeTokenStore{}, users, tokens, nil)
}

func testAccount(t *testing.T) *user.User {
	t.Helper()

	hash, err := core.HashPassword("a-long-password")
	require.NoError(t, err)

	return &user.User{
		ID:       primitive.NewObjectID(),
		Email:    "rahim@example.com",
		Role:     core.RoleUser,
		Password: hash,
	}
}

func TestVerifyAccessToken_Valid(t *testing.T) {
	t.Parallel()

	account := testAccount(t)
	svc := newTestService(t, newFakeUserStore(account))

	token, err := svc.tokens.CreateAccessToken(TokenClaims{
		UserID: account.ID.Hex(),
		Email:  account.Email,
		Role:   account.Role,
	})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, account.ID.Hex(), claims.UserID)
	assert.Equal(t, account.Email, claims.Email)
	assert.Equal(t, core.RoleUser, claims.Role)
	assert.Equal(t, token, claims.Token)
}

func TestVerifyAccessToken_RejectedAfterLogout(t *testing.T) {
	t.Parallel()

	account := testAccount(t)
	svc := newTestService(t, newFakeUserStore(account))

	token, err := svc.tokens.CreateAccessToken(TokenClaims{
		UserID: account.ID.Hex(),
		Email:  account.Email,
		Role:   account.Role,
	})
	require.NoError(t, err)

	// Valid before logout.
	_, err = svc.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	// The very next verification must fail, even though the token has
	// not expired.
	_, err = svc.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenRevoked))

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestVerifyAccessToken_DeletedAccount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeUserStore())

	token, err := svc.tokens.CreateAccessToken(TokenClaims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   core.RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "User not found", appErr.Message)
}

func TestLogout_EmptyTokenIsNoop(t *testing.T) {
	t.Parallel()

	store := &fakeTokenStore{}
	tokens, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	svc := NewService(store, newFakeUserStore(), tokens, nil)

	require.NoError(t, svc.Logout(context.Background(), ""))
	assert.Empty(t, store.revoked)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	account := testAccount(t)
	svc := newTestService(t, newFakeUserStore(account))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    account.Email,
		Password: "not-the-password",
	})
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "Invalid credentials", appErr.Message)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	account := testAccount(t)
	svc := newTestService(t, newFakeUserStore(account))

	_, err := svc.Signup(context.Background(), SignupRequest{
		FirstName: "Rahim",
		LastName:  "Uddin",
		Email:     account.Email,
		Password:  "a-long-password",
	})
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "User already exists", appErr.Message)
}
