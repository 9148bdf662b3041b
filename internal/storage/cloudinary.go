// AngelaMos | 2026
// cloudinary.go

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/lalonstore/lalon-store-api/internal/config"
)

// Media folders on the CDN, one per catalog surface.
const (
	FolderProducts   = "products"
	FolderCategories = "categories"
	FolderBanners    = "banners"
	FolderUsers      = "users"
	FolderUploads    = "uploads"
)

type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// AssetStore abstracts the CDN so services can be tested without network.
type AssetStore interface {
	Upload(ctx context.Context, localPath, folder string) (Asset, error)
	UploadAll(
		ctx context.Context,
		localPaths []string,
		folder string,
	) ([]Asset, error)
	Destroy(ctx context.Context, publicID string) error
	DestroyAll(ctx context.Context, publicIDs []string)
	List(ctx context.Context, prefix string, max int) ([]Asset, error)
}

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.CloudName,
		cfg.APIKey,
		cfg.APISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	return &Cloudinary{cld: cld}, nil
}

// Upload pushes one temp file to the CDN. The local file is removed
// whether the upload succeeds or not.
func (c *Cloudinary) Upload(
	ctx context.Context,
	localPath, folder string,
) (Asset, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("remove temp file", "path", localPath, "error", err)
		}
	}()

	res, err := c.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return Asset{}, fmt.Errorf("upload to cloudinary: %w", err)
	}

	if res.Error.Message != "" {
		return Asset{}, fmt.Errorf(
			"upload to cloudinary: %s",
			res.Error.Message,
		)
	}

	return Asset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// UploadAll uploads every file; the first failure aborts and the assets
// already pushed are destroyed so a partial batch never leaks.
func (c *Cloudinary) UploadAll(
	ctx context.Context,
	localPaths []string,
	folder string,
) ([]Asset, error) {
	assets := make([]Asset, 0, len(localPaths))

	for i, path := range localPaths {
		asset, err := c.Upload(ctx, path, folder)
		if err != nil {
			RemoveLocalFiles(localPaths[i+1:])
			c.DestroyAll(ctx, publicIDs(assets))
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("destroy asset %s: %w", publicID, err)
	}

	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("destroy asset %s: %s", publicID, res.Result)
	}

	return nil
}

// DestroyAll removes assets concurrently, best-effort. Failures are
// logged, never propagated; the documents are already gone.
func (c *Cloudinary) DestroyAll(ctx context.Context, publicIDs []string) {
	var wg sync.WaitGroup

	for _, id := range publicIDs {
		if id == "" {
			continue
		}

		wg.Add(1)
		go func(publicID string) {
			defer wg.Done()
			if err := c.Destroy(ctx, publicID); err != nil {
				slog.Warn("asset cleanup failed",
					"public_id", publicID,
					"error", err,
				)
			}
		}(id)
	}

	wg.Wait()
}

func (c *Cloudinary) List(
	ctx context.Context,
	prefix string,
	max int,
) ([]Asset, error) {
	res, err := c.cld.Admin.Assets(ctx, admin.AssetsParams{
		DeliveryType: "upload",
		Prefix:       prefix,
		MaxResults:   max,
	})
	if err != nil {
		return nil, fmt.Errorf("list assets %s: %w", prefix, err)
	}

	assets := make([]Asset, 0, len(res.Assets))
	for _, a := range res.Assets {
		assets = append(assets, Asset{
			URL:      a.SecureURL,
			PublicID: a.PublicID,
		})
	}

	return assets, nil
}

func publicIDs(assets []Asset) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.PublicID)
	}
	return ids
}
