// AngelaMos | 2026
// service_test.go

package product

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/category"
	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

type fakeStore struct {
	products    map[primitive.ObjectID]*Product
	takenSKUs   map[string]bool
	deleteCalls int
	pulled      []string
}

func newFakeStore(products ...*Product) *fakeStore {
	f := &fakeStore{products: make(map[primitive.ObjectID]*Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeStore) Create(_ context.Context, p *Product) error {
	p.ID = primitive.NewObjectID()
	stored := *p
	f.products[p.ID] = &stored
	return nil
}

func (f *fakeStore) FindByID(
	_ context.Context,
	id primitive.ObjectID,
) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("find product: %w", core.ErrNotFound)
	}
	found := *p
	return &found, nil
}

func (f *fakeStore) ExistsBySKU(
	_ context.Context,
	sku string,
) (bool, error) {
	return f.takenSKUs[sku], nil
}

func (f *fakeStore) ExistsByNameInCategory(
	_ context.Context,
	name string,
	categoryID primitive.ObjectID,
	exclude *primitive.ObjectID,
) (bool, error) {
	for id, p := range f.products {
		if exclude != nil && id == *exclude {
			continue
		}
		if p.Name == name && p.Category == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) List(
	_ context.Context,
	_ ListProductsParams,
) ([]Product, int64, error) {
	products := make([]Product, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, *p)
	}
	return products, int64(len(products)), nil
}

func (f *fakeStore) UpdateByID(
	_ context.Context,
	id primitive.ObjectID,
	fields bson.M,
) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if images, ok := fields["images"].([]string); ok {
		p.Images = images
	}
	updated := *p
	return &updated, nil
}

func (f *fakeStore) PullImage(
	_ context.Context,
	id primitive.ObjectID,
	imageURL string,
) error {
	f.pulled = append(f.pulled, imageURL)
	return nil
}

func (f *fakeStore) DeleteByID(
	_ context.Context,
	id primitive.ObjectID,
) error {
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}
	delete(f.products, id)
	f.deleteCalls++
	return nil
}

func (f *fakeStore) FindByIDs(
	_ context.Context,
	ids []primitive.ObjectID,
) ([]Product, error) {
	products := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (f *fakeStore) DeleteByIDs(
	_ context.Context,
	ids []primitive.ObjectID,
) (int64, error) {
	f.deleteCalls++
	var deleted int64
	for _, id := range ids {
		if _, ok := f.products[id]; ok {
			delete(f.products, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeCategories struct {
	categories map[primitive.ObjectID]*category.Category
}

func (f *fakeCategories) FindByID(
	_ context.Context,
	id primitive.ObjectID,
) (*category.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("find category: %w", core.ErrNotFound)
	}
	return c, nil
}

func (f *fakeCategories) FindByIDs(
	_ context.Context,
	ids []primitive.ObjectID,
) ([]category.Category, error) {
	categories := make([]category.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

type fakeAssets struct {
	uploadedTo []string
	destroyed  []string
}

func (f *fakeAssets) Upload(
	_ context.Context,
	localPath, folder string,
) (storage.Asset, error) {
	f.uploadedTo = append(f.uploadedTo, folder)
	name := filepath.Base(localPath)
	return storage.Asset{
		URL: "https://res.cloudinary.com/demo/image/upload/v1/" +
			folder + "/" + name,
		PublicID: folder + "/" + strings.TrimSuffix(name, filepath.Ext(name)),
	}, nil
}

func (f *fakeAssets) UploadAll(
	ctx context.Context,
	localPaths []string,
	folder string,
) ([]storage.Asset, error) {
	assets := make([]storage.Asset, 0, len(localPaths))
	for _, path := range localPaths {
		asset, err := f.Upload(ctx, path, folder)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func (f *fakeAssets) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func (f *fakeAssets) DestroyAll(_ context.Context, publicIDs []string) {
	f.destroyed = append(f.destroyed, publicIDs...)
}

func (f *fakeAssets) List(
	_ context.Context,
	_ string,
	_ int,
) ([]storage.Asset, error) {
	return nil, nil
}

func testCategory() (*fakeCategories, primitive.ObjectID) {
	id := primitive.NewObjectID()
	return &fakeCategories{
		categories: map[primitive.ObjectID]*category.Category{
			id: {ID: id, Title: "Electronics", Value: "electronics"},
		},
	}, id
}

func TestCreate_RequiresAtLeastOneImage(t *testing.T) {
	t.Parallel()

	categories, categoryID := testCategory()
	store := newFakeStore()
	assets := &fakeAssets{}
	svc := NewService(store, categories, assets)

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:     "Headphones",
		Price:    1200,
		Category: categoryID.Hex(),
	}, nil)

	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(
		t,
		"At least one image is required to create a product.",
		appErr.Message,
	)
	assert.Empty(t, store.products)
	assert.Empty(t, assets.uploadedTo)
}

func TestCreate_UnknownCategory(t *testing.T) {
	t.Parallel()

	svc := NewService(
		newFakeStore(),
		&fakeCategories{},
		&fakeAssets{},
	)

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:     "Headphones",
		Price:    1200,
		Category: primitive.NewObjectID().Hex(),
	}, []string{filepath.Join(t.TempDir(), "a.png")})

	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(
		t,
		"Invalid category. Category does not exist.",
		appErr.Message,
	)
}

func TestCreate_UploadsImagesAndStoresURLs(t *testing.T) {
	t.Parallel()

	categories, categoryID := testCategory()
	store := newFakeStore()
	assets := &fakeAssets{}
	svc := NewService(store, categories, assets)

	dir := t.TempDir()
	created, err := svc.Create(context.Background(), CreateProductRequest{
		Name:     "Headphones",
		Price:    1200,
		Category: categoryID.Hex(),
	}, []string{
		filepath.Join(dir, "front.png"),
		filepath.Join(dir, "back.png"),
	})

	require.NoError(t, err)
	require.Len(t, created.Images, 2)
	assert.Equal(t, []string{"products", "products"}, assets.uploadedTo)
	assert.NotEmpty(t, created.SKU)
}

func TestDeleteImage_LastImageRejected(t *testing.T) {
	t.Parallel()

	only := "https://res.cloudinary.com/demo/image/upload/v1/products/only.png"
	p := &Product{
		ID:     primitive.NewObjectID(),
		Name:   "Headphones",
		Images: []string{only},
	}

	store := newFakeStore(p)
	assets := &fakeAssets{}
	svc := NewService(store, &fakeCategories{}, assets)

	_, err := svc.DeleteImage(context.Background(), p.ID.Hex(), only)

	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(
		t,
		"Cannot delete the only image. At least one image is required.",
		appErr.Message,
	)
	assert.Empty(t, assets.destroyed)
	assert.Empty(t, store.pulled)
}

func TestDeleteImage_UnknownImage(t *testing.T) {
	t.Parallel()

	p := &Product{
		ID:     primitive.NewObjectID(),
		Name:   "Headphones",
		Images: []string{"https://cdn.example.com/products/a.png"},
	}

	svc := NewService(newFakeStore(p), &fakeCategories{}, &fakeAssets{})

	_, err := svc.DeleteImage(
		context.Background(),
		p.ID.Hex(),
		"https://cdn.example.com/products/not-there.png",
	)

	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Image not found in product.", appErr.Message)
}

func TestDeleteImage_RemovesImageAndAsset(t *testing.T) {
	t.Parallel()

	keep := "https://res.cloudinary.com/demo/image/upload/v1/products/keep.png"
	drop := "https://res.cloudinary.com/demo/image/upload/v1/products/drop.png"
	p := &Product{
		ID:     primitive.NewObjectID(),
		Name:   "Headphones",
		Images: []string{keep, drop},
	}

	store := newFakeStore(p)
	assets := &fakeAssets{}
	svc := NewService(store, &fakeCategories{}, assets)

	msg, err := svc.DeleteImage(context.Background(), p.ID.Hex(), drop)

	require.NoError(t, err)
	assert.Equal(t, "Image deleted successfully", msg)
	assert.Equal(t, []string{"products/drop"}, assets.destroyed)
	assert.Equal(t, []string{drop}, store.pulled)
}

func TestDeleteMany_UnknownIDAbortsBatch(t *testing.T) {
	t.Parallel()

	p := &Product{ID: primitive.NewObjectID(), Name: "Headphones"}
	store := newFakeStore(p)
	assets := &fakeAssets{}
	svc := NewService(store, &fakeCategories{}, assets)

	_, err := svc.DeleteMany(context.Background(), []string{
		p.ID.Hex(),
		primitive.NewObjectID().Hex(),
	})

	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "One or more product IDs do not exist", appErr.Message)

	// Nothing may be deleted when any id is unknown.
	assert.Zero(t, store.deleteCalls)
	assert.Contains(t, store.products, p.ID)
	assert.Empty(t, assets.destroyed)
}

func TestDeleteMany_DeletesBatchWithAssets(t *testing.T) {
	t.Parallel()

	first := &Product{
		ID:     primitive.NewObjectID(),
		Name:   "Headphones",
		Images: []string{"https://res.cloudinary.com/demo/image/upload/v1/products/a.png"},
	}
	second := &Product{
		ID:     primitive.NewObjectID(),
		Name:   "Speakers",
		Images: []string{"https://res.cloudinary.com/demo/image/upload/v1/products/b.png"},
	}

	store := newFakeStore(first, second)
	assets := &fakeAssets{}
	svc := NewService(store, &fakeCategories{}, assets)

	msg, err := svc.DeleteMany(context.Background(), []string{
		first.ID.Hex(),
		second.ID.Hex(),
	})

	require.NoError(t, err)
	assert.Equal(t, "2 products deleted successfully", msg)
	assert.Empty(t, store.products)
	assert.ElementsMatch(
		t,
		[]string{"products/a", "products/b"},
		assets.destroyed,
	)
}
