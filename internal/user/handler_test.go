// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/middleware"
)

func authedContext(userID, role string) context.Context {
	ctx := context.WithValue(
		context.Background(),
		middleware.UserIDKey,
		userID,
	)
	return context.WithValue(ctx, middleware.UserRoleKey, role)
}

func patchUser(
	t *testing.T,
	h *Handler,
	ctx context.Context,
	targetID, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Patch("/users/{userId}", h.UpdateUser)

	req := httptest.NewRequest(
		"PATCH",
		"/users/"+targetID,
		strings.NewReader(body),
	).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateUser_OtherAccountForbidden(t *testing.T) {
	t.Parallel()

	target := &User{ID: primitive.NewObjectID(), Email: "victim@example.com"}
	store := newFakeStore(target)
	h := NewHandler(NewService(store, &fakeAssets{}), nil)

	ctx := authedContext(primitive.NewObjectID().Hex(), core.RoleUser)
	w := patchUser(t, h, ctx, target.ID.Hex(), `{"firstName":"Mallory"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, store.lastUpdate)
}

func TestUpdateUser_SelfRoleChangeForbidden(t *testing.T) {
	t.Parallel()

	account := &User{
		ID:    primitive.NewObjectID(),
		Email: "rahim@example.com",
		Role:  core.RoleUser,
	}
	store := newFakeStore(account)
	h := NewHandler(NewService(store, &fakeAssets{}), nil)

	ctx := authedContext(account.ID.Hex(), core.RoleUser)
	w := patchUser(t, h, ctx, account.ID.Hex(), `{"role":"ADMIN"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, store.lastUpdate)
	assert.Equal(t, core.RoleUser, store.users[account.ID].Role)
}

func TestUpdateUser_AdminAssignsRole(t *testing.T) {
	t.Parallel()

	target := &User{
		ID:    primitive.NewObjectID(),
		Email: "seller@example.com",
		Role:  core.RoleUser,
	}
	store := newFakeStore(target)
	h := NewHandler(NewService(store, &fakeAssets{}), nil)

	ctx := authedContext(primitive.NewObjectID().Hex(), core.RoleAdmin)
	w := patchUser(t, h, ctx, target.ID.Hex(), `{"role":"SELLER"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, core.RoleSeller, store.users[target.ID].Role)
}

func TestUpdateUser_OwnerEditsProfile(t *testing.T) {
	t.Parallel()

	account := &User{ID: primitive.NewObjectID(), Email: "rahim@example.com"}
	store := newFakeStore(account)
	h := NewHandler(NewService(store, &fakeAssets{}), nil)

	ctx := authedContext(account.ID.Hex(), core.RoleUser)
	w := patchUser(t, h, ctx, account.ID.Hex(), `{"firstName":"Anika"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anika", store.users[account.ID].FirstName)
}
