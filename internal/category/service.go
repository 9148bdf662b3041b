// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

type Service struct {
	repo   *Repository
	assets storage.AssetStore
}

func NewService(repo *Repository, assets storage.AssetStore) *Service {
	return &Service{repo: repo, assets: assets}
}

// Create stores a category with its two required images. Any rejection
// before the CDN upload removes the spooled temp files.
func (s *Service) Create(
	ctx context.Context,
	req CreateCategoryRequest,
	thumbnailPath, logoPath string,
) (*Category, error) {
	tempFiles := []string{thumbnailPath, logoPath}

	if thumbnailPath == "" || logoPath == "" {
		storage.RemoveLocalFiles(tempFiles)
		return nil, core.BadRequestError(
			"Both thumbnail and logo images are required",
		)
	}

	title := strings.TrimSpace(req.Title)
	value := Slug(title)

	exists, err := s.repo.ExistsByTitleOrValue(ctx, title, value)
	if err != nil {
		storage.RemoveLocalFiles(tempFiles)
		return nil, err
	}
	if exists {
		storage.RemoveLocalFiles(tempFiles)
		return nil, core.ConflictError(
			"Category with this title or value already exists",
		)
	}

	thumbnail, err := s.assets.Upload(
		ctx,
		thumbnailPath,
		storage.FolderCategories,
	)
	if err != nil {
		storage.RemoveLocalFiles([]string{logoPath})
		return nil, err
	}

	logo, err := s.assets.Upload(ctx, logoPath, storage.FolderCategories)
	if err != nil {
		s.assets.DestroyAll(ctx, []string{thumbnail.PublicID})
		return nil, err
	}

	c := &Category{
		Title:     title,
		Value:     value,
		Thumbnail: thumbnail.URL,
		Logo:      logo.URL,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			s.assets.DestroyAll(ctx, []string{
				thumbnail.PublicID,
				logo.PublicID,
			})
			return nil, core.ConflictError(
				"Category with this title or value already exists",
			)
		}
		return nil, err
	}

	return c, nil
}

// Update renames a category and/or replaces its images. A new image
// destroys the old CDN asset first.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateCategoryRequest,
	thumbnailPath, logoPath string,
) (*Category, error) {
	tempFiles := []string{thumbnailPath, logoPath}

	oid, err := core.ParseObjectID(id)
	if err != nil {
		storage.RemoveLocalFiles(tempFiles)
		return nil, core.NotFoundError("Category")
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		storage.RemoveLocalFiles(tempFiles)
		return nil, err
	}

	fields := bson.M{}

	if req.Title != "" {
		title := strings.TrimSpace(req.Title)

		duplicate, err := s.repo.ExistsByTitleExcept(ctx, title, oid)
		if err != nil {
			storage.RemoveLocalFiles(tempFiles)
			return nil, err
		}
		if duplicate {
			storage.RemoveLocalFiles(tempFiles)
			return nil, core.ConflictError(
				"A category with this title already exists",
			)
		}

		fields["title"] = title
		fields["value"] = Slug(title)
	}

	if thumbnailPath != "" {
		if existing.Thumbnail != "" {
			publicID := storage.ExtractPublicID(existing.Thumbnail)
			if err := s.assets.Destroy(ctx, publicID); err != nil {
				storage.RemoveLocalFiles(tempFiles)
				return nil, fmt.Errorf("replace thumbnail: %w", err)
			}
		}

		asset, err := s.assets.Upload(
			ctx,
			thumbnailPath,
			storage.FolderCategories,
		)
		if err != nil {
			storage.RemoveLocalFiles([]string{logoPath})
			return nil, err
		}
		fields["thumbnail"] = asset.URL
	}

	if logoPath != "" {
		if existing.Logo != "" {
			publicID := storage.ExtractPublicID(existing.Logo)
			if err := s.assets.Destroy(ctx, publicID); err != nil {
				return nil, fmt.Errorf("replace logo: %w", err)
			}
		}

		asset, err := s.assets.Upload(ctx, logoPath, storage.FolderCategories)
		if err != nil {
			return nil, err
		}
		fields["logo"] = asset.URL
	}

	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.repo.UpdateByID(ctx, oid, fields)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"A category with this title already exists",
			)
		}
		return nil, err
	}

	return updated, nil
}

func (s *Service) GetAll(ctx context.Context) ([]Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Category, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return nil, core.NotFoundError("Category")
	}
	return s.repo.FindByID(ctx, oid)
}

// DeleteOne removes the document first; CDN cleanup follows best-effort.
func (s *Service) DeleteOne(ctx context.Context, id string) (string, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return "", core.NotFoundError("Category")
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return "", err
	}

	if err := s.repo.DeleteByID(ctx, oid); err != nil {
		return "", err
	}

	s.assets.DestroyAll(ctx, assetIDs([]Category{*existing}))

	return "Category deleted successfully", nil
}

// DeleteMany is wholesale: if any id is unknown, nothing is deleted.
func (s *Service) DeleteMany(
	ctx context.Context,
	ids []string,
) (string, error) {
	if len(ids) == 0 {
		return "", core.BadRequestError(
			"Invalid request. 'ids' must be a non-empty array",
		)
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := core.ParseObjectID(id)
		if err != nil {
			return "", missingCategoryIDs()
		}
		oids = append(oids, oid)
	}

	existing, err := s.repo.FindByIDs(ctx, oids)
	if err != nil {
		return "", err
	}
	if len(existing) != len(ids) {
		return "", missingCategoryIDs()
	}

	deleted, err := s.repo.DeleteByIDs(ctx, oids)
	if err != nil {
		return "", err
	}

	s.assets.DestroyAll(ctx, assetIDs(existing))

	return fmt.Sprintf("%d categories deleted successfully", deleted), nil
}

func missingCategoryIDs() *core.AppError {
	return core.NewAppError(
		core.ErrNotFound,
		"One or more category IDs do not exist",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func assetIDs(categories []Category) []string {
	ids := make([]string, 0, len(categories)*2)
	for _, c := range categories {
		if c.Thumbnail != "" {
			ids = append(ids, storage.ExtractPublicID(c.Thumbnail))
		}
		if c.Logo != "" {
			ids = append(ids, storage.ExtractPublicID(c.Logo))
		}
	}
	return ids
}
