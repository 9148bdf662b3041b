// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalonstore/lalon-store-api/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s *stubVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

func TestExtractToken_CookieWinsOverHeader(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie-token"})
	r.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "cookie-token", ExtractToken(r))
}

func TestExtractToken_BearerFallback(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "header-token", ExtractToken(r))
}

func TestExtractToken_Missing(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, ExtractToken(r))

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, ExtractToken(r))
}

func TestAuthenticator_MissingToken(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	})

	handler := Authenticator(&stubVerifier{})(next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_AttachesClaims(t *testing.T) {
	t.Parallel()

	claims := &AccessTokenClaims{
		UserID: "65f1c0ffee00112233445566",
		Email:  "admin@example.com",
		Role:   core.RoleAdmin,
	}

	var gotCtx context.Context
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotCtx = r.Context()
	})

	handler := Authenticator(&stubVerifier{claims: claims})(next)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "accessToken", Value: "any"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, claims.UserID, GetUserID(gotCtx))
	assert.Equal(t, claims.Role, GetUserRole(gotCtx))
	assert.True(t, IsAdmin(gotCtx))
}

func TestAuthenticator_RevokedToken(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenRevoked),
	}

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	})

	handler := Authenticator(verifier)(next)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer revoked-token")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	})

	handler := RequireRole(core.RoleAdmin)(next)

	ctx := context.WithValue(
		context.Background(),
		UserRoleKey,
		core.RoleUser,
	)
	r := httptest.NewRequest("GET", "/", nil).WithContext(ctx)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	t.Parallel()

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})

	handler := RequireRole(core.RoleAdmin, core.RoleSeller)(next)

	ctx := context.WithValue(
		context.Background(),
		UserRoleKey,
		core.RoleSeller,
	)
	r := httptest.NewRequest("GET", "/", nil).WithContext(ctx)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.True(t, called)
}

func TestRequireRole_MissingRoleIsUnauthorized(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	})

	handler := RequireRole(core.RoleAdmin)(next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
