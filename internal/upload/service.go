// AngelaMos | 2026
// service.go

package upload

import (
	"context"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

// Service pushes ad-hoc files to the shared uploads folder. Nothing is
// persisted; callers keep the returned URLs.
type Service struct {
	assets storage.AssetStore
}

func NewService(assets storage.AssetStore) *Service {
	return &Service{assets: assets}
}

func (s *Service) UploadFiles(
	ctx context.Context,
	paths []string,
) ([]string, error) {
	if len(paths) == 0 {
		return nil, core.BadRequestError("At least one file is required.")
	}

	assets, err := s.assets.UploadAll(ctx, paths, storage.FolderUploads)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		urls = append(urls, a.URL)
	}

	return urls, nil
}
