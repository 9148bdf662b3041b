// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/middleware"
	"github.com/lalonstore/lalon-store-api/internal/user"
)

// TokenStore is the durable blacklist; *Repository is the Mongo
// implementation.
type TokenStore interface {
	Blacklist(ctx context.Context, token string) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// UserStore is the slice of the user repository the auth flow needs:
// full documents by identifier, plus account liveness.
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByPhone(ctx context.Context, phone string) (*user.User, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	SetRefreshToken(
		ctx context.Context,
		id primitive.ObjectID,
		token string,
	) error
}

type Service struct {
	repo   TokenStore
	users  UserStore
	tokens *TokenManager
	cache  *core.Redis
}

// NewService wires the auth flow. cache may be nil; the blacklist then
// hits Mongo on every check.
func NewService(
	repo TokenStore,
	users UserStore,
	tokens *TokenManager,
	cache *core.Redis,
) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		tokens: tokens,
		cache:  cache,
	}
}

// Signup registers a new account keyed by email or normalized phone.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*user.User, error) {
	normalizedPhone := ""
	if req.Phone != "" {
		normalizedPhone = user.NormalizePhone(req.Phone)
	}

	if err := s.checkUserExists(ctx, req.Email, normalizedPhone); err != nil {
		return nil, err
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		FirstName: strings.ToLower(strings.TrimSpace(req.FirstName)),
		LastName:  strings.ToLower(strings.TrimSpace(req.LastName)),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     normalizedPhone,
		Address:   strings.ToLower(strings.TrimSpace(req.Address)),
		Role:      core.RoleUser,
		Password:  passwordHash,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError("User already exists")
		}
		return nil, err
	}

	u.Password = ""
	return u, nil
}

// Login verifies credentials and issues an access token. Unknown
// identifier and wrong password are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginData, error) {
	u, err := s.findByIdentifier(ctx, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.UnauthorizedError("Invalid credentials")
		}
		return nil, err
	}

	valid, err := core.VerifyPassword(req.Password, u.Password)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, core.UnauthorizedError("Invalid credentials")
	}

	claims := TokenClaims{
		UserID: u.ID.Hex(),
		Email:  u.Email,
		Role:   u.Role,
	}

	accessToken, err := s.tokens.CreateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshToken, err := s.tokens.CreateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	if err := s.users.SetRefreshToken(ctx, u.ID, refreshToken); err != nil {
		return nil, err
	}

	u.Password = ""
	u.RefreshToken = ""

	return &LoginData{User: u, AccessToken: accessToken}, nil
}

// Logout revokes the presented token. Absent tokens are fine; the
// client cookie is cleared either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.repo.Blacklist(ctx, token); err != nil {
		return err
	}

	if s.cache != nil {
		err := s.cache.BlacklistToken(ctx, token, core.BlacklistRetention)
		if err != nil {
			slog.Warn("blacklist cache write failed", "error", err)
		}
	}

	return nil
}

func (s *Service) IsBlacklisted(
	ctx context.Context,
	token string,
) (bool, error) {
	if s.cache != nil && s.cache.IsTokenBlacklisted(ctx, token) {
		return true, nil
	}

	return s.repo.IsBlacklisted(ctx, token)
}

// VerifyAccessToken implements middleware.TokenVerifier: blacklist
// check, signature and claim validation, then a liveness check on the
// subject account.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	blacklisted, err := s.IsBlacklisted(ctx, token)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, core.TokenRevokedError()
	}

	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	oid, err := core.ParseObjectID(claims.UserID)
	if err != nil {
		return nil, core.TokenInvalidError()
	}

	exists, err := s.users.ExistsByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, core.UnauthorizedError("User not found")
	}

	return &middleware.AccessTokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Token:  token,
	}, nil
}

func (s *Service) checkUserExists(
	ctx context.Context,
	email, normalizedPhone string,
) error {
	var err error
	switch {
	case email != "":
		_, err = s.users.FindByEmail(ctx, strings.ToLower(email))
	case normalizedPhone != "":
		_, err = s.users.FindByPhone(ctx, normalizedPhone)
	default:
		return nil
	}

	if err == nil {
		return core.ConflictError("User already exists")
	}
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) findByIdentifier(
	ctx context.Context,
	email, phone string,
) (*user.User, error) {
	if email != "" {
		return s.users.FindByEmail(ctx, strings.ToLower(email))
	}
	return s.users.FindByPhone(ctx, user.NormalizePhone(phone))
}
