// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

// Store is the subset of the user repository the profile service
// needs; *Repository is the Mongo implementation.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context, params ListUsersParams) ([]User, int64, error)
	UpdateByID(
		ctx context.Context,
		id primitive.ObjectID,
		fields bson.M,
	) (*User, error)
}

type Service struct {
	repo   Store
	assets storage.AssetStore
}

func NewService(repo Store, assets storage.AssetStore) *Service {
	return &Service{repo: repo, assets: assets}
}

func (s *Service) GetOne(ctx context.Context, id string) (*User, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return nil, core.NotFoundError("User")
	}

	u, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	return s.repo.List(ctx, params)
}

// Exists reports whether the account behind a token still exists.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return false, nil
	}
	return s.repo.ExistsByID(ctx, oid)
}

// Update applies a partial profile update. The identifier the account
// signed up with (email or phone) is immutable; a new avatar replaces
// the old asset on the CDN.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
	avatarPath string,
) (*User, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		storage.RemoveLocalFiles([]string{avatarPath})
		return nil, core.NotFoundError("User")
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		storage.RemoveLocalFiles([]string{avatarPath})
		return nil, err
	}

	if existing.Email != "" && req.Email != "" {
		storage.RemoveLocalFiles([]string{avatarPath})
		return nil, core.ForbiddenError(
			"You cannot change your registered email",
		)
	}
	if existing.Phone != "" && req.Phone != "" {
		storage.RemoveLocalFiles([]string{avatarPath})
		return nil, core.ForbiddenError(
			"You cannot change your registered phone number",
		)
	}

	fields := bson.M{}
	if req.FirstName != "" {
		fields["firstName"] = strings.ToLower(strings.TrimSpace(req.FirstName))
	}
	if req.LastName != "" {
		fields["lastName"] = strings.ToLower(strings.TrimSpace(req.LastName))
	}
	if req.Email != "" {
		fields["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		fields["phone"] = NormalizePhone(req.Phone)
	}
	if req.Address != "" {
		fields["address"] = strings.ToLower(strings.TrimSpace(req.Address))
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}

	if avatarPath != "" {
		if existing.Avatar != "" {
			publicID := storage.ExtractPublicID(existing.Avatar)
			if err := s.assets.Destroy(ctx, publicID); err != nil {
				return nil, fmt.Errorf("replace avatar: %w", err)
			}
		}

		asset, err := s.assets.Upload(ctx, avatarPath, storage.FolderUsers)
		if err != nil {
			return nil, err
		}
		fields["avatar"] = asset.URL
	}

	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.repo.UpdateByID(ctx, oid, fields)
	if err != nil {
		return nil, err
	}

	return updated, nil
}
