// AngelaMos | 2026
// service.go

package banner

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

const maxBannerImages = 50

type Service struct {
	repo   *Repository
	assets storage.AssetStore
}

func NewService(repo *Repository, assets storage.AssetStore) *Service {
	return &Service{repo: repo, assets: assets}
}

// Create appends a banner at the end of the sequence. The slot starts
// with a placeholder title and no image; the image URL is attached
// later through Update, typically one uploaded via UploadImages.
func (s *Service) Create(ctx context.Context) (*Banner, error) {
	maxOrder, err := s.repo.MaxOrder(ctx)
	if err != nil {
		return nil, err
	}

	order := maxOrder + 1
	b := &Banner{
		Title:    fmt.Sprintf("Banner #%d", order),
		Image:    "",
		Order:    order,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"A banner with this order already exists",
			)
		}
		return nil, err
	}

	return b, nil
}

// Update sets the image and active flag. The image comes either as a
// URL in the payload or as an uploaded file, which wins when both are
// present.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateBannerRequest,
	imagePath string,
) (*Banner, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		storage.RemoveLocalFiles([]string{imagePath})
		return nil, core.NotFoundError("Banner")
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		storage.RemoveLocalFiles([]string{imagePath})
		return nil, err
	}

	fields := bson.M{}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.IsActive != nil {
		fields["isActive"] = *req.IsActive
	}

	if imagePath != "" {
		asset, err := s.assets.Upload(ctx, imagePath, storage.FolderBanners)
		if err != nil {
			return nil, err
		}
		fields["image"] = asset.URL
		url := asset.URL
		req.Image = &url
	}

	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.repo.UpdateByID(ctx, oid, fields)
	if err != nil {
		return nil, err
	}

	// A replaced image is an orphan on the CDN; drop it best-effort.
	if req.Image != nil && existing.Image != "" && existing.Image != *req.Image {
		s.assets.DestroyAll(
			ctx,
			[]string{storage.ExtractPublicID(existing.Image)},
		)
	}

	return updated, nil
}

func (s *Service) GetAll(ctx context.Context) ([]Banner, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Banner, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return nil, core.BadRequestError("Invalid banner ID")
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *Service) DeleteOne(ctx context.Context, id string) (string, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return "", core.NotFoundError("Banner")
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return "", err
	}

	if err := s.repo.DeleteByID(ctx, oid); err != nil {
		return "", err
	}

	if existing.Image != "" {
		s.assets.DestroyAll(
			ctx,
			[]string{storage.ExtractPublicID(existing.Image)},
		)
	}

	return "Banner deleted successfully", nil
}

// DeleteMany is wholesale: any unknown id aborts the whole batch.
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
			return "", missingBannerIDs()
		}
		oids = append(oids, oid)
	}

	existing, err := s.repo.FindByIDs(ctx, oids)
	if err != nil {
		return "", err
	}
	if len(existing) != len(ids) {
		return "", missingBannerIDs()
	}

	deleted, err := s.repo.DeleteByIDs(ctx, oids)
	if err != nil {
		return "", err
	}

	s.assets.DestroyAll(ctx, imagePublicIDs(existing))

	return fmt.Sprintf("%d banners deleted successfully", deleted), nil
}

// UploadImages pushes banner images to the CDN without touching any
// banner document; clients pair the returned URLs with slots via Update.
func (s *Service) UploadImages(
	ctx context.Context,
	imagePaths []string,
) ([]string, error) {
	if len(imagePaths) == 0 {
		return nil, core.BadRequestError(
			"At least one image is required to create a product.",
		)
	}

	assets, err := s.assets.UploadAll(ctx, imagePaths, storage.FolderBanners)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		urls = append(urls, a.URL)
	}

	return urls, nil
}

func (s *Service) ListImages(ctx context.Context) ([]BannerImage, error) {
	assets, err := s.assets.List(
		ctx,
		storage.FolderBanners+"/",
		maxBannerImages,
	)
	if err != nil {
		return nil, err
	}

	images := make([]BannerImage, 0, len(assets))
	for _, a := range assets {
		images = append(images, BannerImage{
			ImageURL: a.URL,
			PublicID: a.PublicID,
		})
	}

	return images, nil
}

func missingBannerIDs() *core.AppError {
	return core.NewAppError(
		core.ErrNotFound,
		"One or more banner IDs do not exist",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func imagePublicIDs(banners []Banner) []string {
	ids := make([]string, 0, len(banners))
	for _, b := range banners {
		if b.Image != "" {
			ids = append(ids, storage.ExtractPublicID(b.Image))
		}
	}
	return ids
}
