// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/category"
	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

// Store is the subset of the product repository the service depends
// on; *Repository is the Mongo implementation.
type Store interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByNameInCategory(
		ctx context.Context,
		name string,
		categoryID primitive.ObjectID,
		exclude *primitive.ObjectID,
	) (bool, error)
	List(ctx context.Context, params ListProductsParams) ([]Product, int64, error)
	UpdateByID(
		ctx context.Context,
		id primitive.ObjectID,
		fields bson.M,
	) (*Product, error)
	PullImage(ctx context.Context, id primitive.ObjectID, imageURL string) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// CategoryStore resolves category references for validation and for
// joining category documents onto listings.
type CategoryStore interface {
	FindByID(
		ctx context.Context,
		id primitive.ObjectID,
	) (*category.Category, error)
	FindByIDs(
		ctx context.Context,
		ids []primitive.ObjectID,
	) ([]category.Category, error)
}

type Service struct {
	repo       Store
	categories CategoryStore
	assets     storage.AssetStore
}

func NewService(
	repo Store,
	categories CategoryStore,
	assets storage.AssetStore,
) *Service {
	return &Service{repo: repo, categories: categories, assets: assets}
}

// Create validates the category and name, assigns a SKU and final
// price, stores the document, then pushes the images to the CDN.
func (s *Service) Create(
	ctx context.Context,
	req CreateProductRequest,
	imagePaths []string,
) (*Product, error) {
	if len(imagePaths) == 0 {
		return nil, core.BadRequestError(
			"At least one image is required to create a product.",
		)
	}

	categoryID, err := s.requireCategory(ctx, req.Category)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		return nil, err
	}

	name := strings.TrimSpace(req.Name)

	duplicate, err := s.repo.ExistsByNameInCategory(ctx, name, categoryID, nil)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		return nil, err
	}
	if duplicate {
		storage.RemoveLocalFiles(imagePaths)
		return nil, duplicateProductError()
	}

	discount := 0.0
	if req.Discount != nil {
		discount = *req.Discount
	}

	sku, err := GenerateSKU(ctx, req.Category, name, s.repo.ExistsBySKU)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		return nil, err
	}

	p := &Product{
		Name:        name,
		Price:       req.Price,
		Discount:    discount,
		FinalPrice:  FinalPrice(req.Price, discount),
		Quantity:    req.Quantity,
		Description: req.Description,
		SKU:         sku,
		IsActive:    true,
		Category:    categoryID,
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.IsWeekendDeal != nil {
		p.IsWeekendDeal = *req.IsWeekendDeal
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}

	if err := s.repo.Create(ctx, p); err != nil {
		storage.RemoveLocalFiles(imagePaths)
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, duplicateProductError()
		}
		return nil, err
	}

	assets, err := s.assets.UploadAll(ctx, imagePaths, storage.FolderProducts)
	if err != nil {
		if delErr := s.repo.DeleteByID(ctx, p.ID); delErr != nil {
			slog.Warn("orphaned product after failed image upload",
				"product_id", p.ID.Hex(),
				"error", delErr,
			)
		}
		return nil, err
	}

	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		urls = append(urls, a.URL)
	}

	updated, err := s.repo.UpdateByID(ctx, p.ID, bson.M{"images": urls})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Update applies a partial update. The SKU is immutable; new images are
// appended, never replacing the existing set.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateProductRequest,
	imagePaths []string,
) (*Product, error) {
	if req.SKU != "" {
		storage.RemoveLocalFiles(imagePaths)
		return nil, core.BadRequestError("SKU cannot be updated")
	}

	oid, err := core.ParseObjectID(id)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		return nil, core.NotFoundError("Product")
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		return nil, err
	}

	categoryID := existing.Category
	if req.Category != "" {
		categoryID, err = s.requireCategory(ctx, req.Category)
		if err != nil {
			storage.RemoveLocalFiles(imagePaths)
			return nil, err
		}
	}

	name := existing.Name
	if req.Name != "" {
		name = strings.TrimSpace(req.Name)
	}

	duplicate, err := s.repo.ExistsByNameInCategory(
		ctx,
		name,
		categoryID,
		&oid,
	)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		return nil, err
	}
	if duplicate {
		storage.RemoveLocalFiles(imagePaths)
		return nil, duplicateProductError()
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = name
	}
	if req.Category != "" {
		fields["category"] = categoryID
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.Quantity != "" {
		fields["quantity"] = req.Quantity
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		fields["isActive"] = *req.IsActive
	}
	if req.IsWeekendDeal != nil {
		fields["isWeekendDeal"] = *req.IsWeekendDeal
	}
	if req.IsFeatured != nil {
		fields["isFeatured"] = *req.IsFeatured
	}

	if req.Price != nil || req.Discount != nil {
		price := existing.Price
		if req.Price != nil {
			price = *req.Price
		}
		discount := existing.Discount
		if req.Discount != nil {
			discount = *req.Discount
		}
		fields["finalPrice"] = FinalPrice(price, discount)
	}

	if len(imagePaths) > 0 {
		assets, err := s.assets.UploadAll(
			ctx,
			imagePaths,
			storage.FolderProducts,
		)
		if err != nil {
			return nil, err
		}

		images := slices.Clone(existing.Images)
		for _, a := range assets {
			images = append(images, a.URL)
		}
		fields["images"] = images
	}

	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.repo.UpdateByID(ctx, oid, fields)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, duplicateProductError()
		}
		return nil, err
	}

	return updated, nil
}

func (s *Service) GetAll(
	ctx context.Context,
	params ListProductsParams,
) ([]PopulatedProduct, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	products, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	populated, err := s.populate(ctx, products)
	if err != nil {
		return nil, 0, err
	}

	return populated, total, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*PopulatedProduct, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return nil, core.NotFoundError("Product")
	}

	p, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	populated, err := s.populate(ctx, []Product{*p})
	if err != nil {
		return nil, err
	}

	return &populated[0], nil
}

func (s *Service) DeleteOne(ctx context.Context, id string) (string, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return "", core.NotFoundError("Product")
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return "", err
	}

	if err := s.repo.DeleteByID(ctx, oid); err != nil {
		return "", err
	}

	s.assets.DestroyAll(ctx, imagePublicIDs([]Product{*existing}))

	return "Product deleted successfully", nil
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
			return "", missingProductIDs()
		}
		oids = append(oids, oid)
	}

	existing, err := s.repo.FindByIDs(ctx, oids)
	if err != nil {
		return "", err
	}
	if len(existing) != len(ids) {
		return "", missingProductIDs()
	}

	deleted, err := s.repo.DeleteByIDs(ctx, oids)
	if err != nil {
		return "", err
	}

	s.assets.DestroyAll(ctx, imagePublicIDs(existing))

	return fmt.Sprintf("%d products deleted successfully", deleted), nil
}

// DeleteImage removes one image from a product. The last image cannot
// be removed.
func (s *Service) DeleteImage(
	ctx context.Context,
	id, imageURL string,
) (string, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return "", core.NotFoundError("Product")
	}

	p, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return "", err
	}

	if !slices.Contains(p.Images, imageURL) {
		return "", core.NewAppError(
			core.ErrNotFound,
			"Image not found in product.",
			http.StatusNotFound,
			"NOT_FOUND",
		)
	}

	if len(p.Images) == 1 {
		return "", core.BadRequestError(
			"Cannot delete the only image. At least one image is required.",
		)
	}

	if err := s.assets.Destroy(
		ctx,
		storage.ExtractPublicID(imageURL),
	); err != nil {
		return "", err
	}

	if err := s.repo.PullImage(ctx, oid, imageURL); err != nil {
		return "", err
	}

	return "Image deleted successfully", nil
}

func (s *Service) requireCategory(
	ctx context.Context,
	id string,
) (primitive.ObjectID, error) {
	invalid := core.NewAppError(
		core.ErrNotFound,
		"Invalid category. Category does not exist.",
		http.StatusNotFound,
		"NOT_FOUND",
	)

	oid, err := core.ParseObjectID(id)
	if err != nil {
		return primitive.NilObjectID, invalid
	}

	if _, err := s.categories.FindByID(ctx, oid); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return primitive.NilObjectID, invalid
		}
		return primitive.NilObjectID, err
	}

	return oid, nil
}

func (s *Service) populate(
	ctx context.Context,
	products []Product,
) ([]PopulatedProduct, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			ids = append(ids, p.Category)
		}
	}

	byID := make(map[primitive.ObjectID]*category.Category, len(ids))
	if len(ids) > 0 {
		categories, err := s.categories.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range categories {
			byID[categories[i].ID] = &categories[i]
		}
	}

	populated := make([]PopulatedProduct, 0, len(products))
	for i := range products {
		populated = append(populated, PopulatedProduct{
			Product:  &products[i],
			Category: byID[products[i].Category],
		})
	}

	return populated, nil
}

func duplicateProductError() *core.AppError {
	return core.ConflictError(
		"Product with this name already exists in this category.",
	)
}

func missingProductIDs() *core.AppError {
	return core.NewAppError(
		core.ErrNotFound,
		"One or more product IDs do not exist",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func imagePublicIDs(products []Product) []string {
	ids := make([]string, 0)
	for _, p := range products {
		for _, url := range p.Images {
			ids = append(ids, storage.ExtractPublicID(url))
		}
	}
	return ids
}
