// AngelaMos | 2026
// service_test.go

package user

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

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

type fakeStore struct {
	users      map[primitive.ObjectID]*User
	lastUpdate bson.M
}

func newFakeStore(users ...*User) *fakeStore {
	f := &fakeStore{users: make(map[primitive.ObjectID]*User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeStore) FindByID(
	_ context.Context,
	id primitive.ObjectID,
) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("find user: %w", core.ErrNotFound)
	}
	found := *u
	return &found, nil
}

func (f *fakeStore) ExistsByID(
	_ context.Context,
	id primitive.ObjectID,
) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeStore) List(
	_ context.Context,
	_ ListUsersParams,
) ([]User, int64, error) {
	users := make([]User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, int64(len(users)), nil
}

func (f *fakeStore) UpdateByID(
	_ context.Context,
	id primitive.ObjectID,
	fields bson.M,
) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
	}

	f.lastUpdate = fields
	if role, ok := fields["role"].(string); ok {
		u.Role = role
	}
	if firstName, ok := fields["firstName"].(string); ok {
		u.FirstName = firstName
	}
	if avatar, ok := fields["avatar"].(string); ok {
		u.Avatar = avatar
	}

	updated := *u
	return &updated, nil
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

func TestUpdate_NewAvatarGoesToUsersFolder(t *testing.T) {
	t.Parallel()

	account := &User{ID: primitive.NewObjectID(), Phone: "+8801712345678"}
	store := newFakeStore(account)
	assets := &fakeAssets{}
	svc := NewService(store, assets)

	updated, err := svc.Update(
		context.Background(),
		account.ID.Hex(),
		UpdateUserRequest{},
		filepath.Join(t.TempDir(), "avatar.png"),
	)
	require.NoError(t, err)

	require.Len(t, assets.uploadedTo, 1)
	assert.Equal(t, storage.FolderUsers, assets.uploadedTo[0])
	assert.Contains(t, updated.Avatar, "/users/avatar.png")
}

func TestUpdate_ReplacedAvatarIsDestroyed(t *testing.T) {
	t.Parallel()

	account := &User{
		ID:     primitive.NewObjectID(),
		Phone:  "+8801712345678",
		Avatar: "https://res.cloudinary.com/demo/image/upload/v1/users/old.png",
	}
	store := newFakeStore(account)
	assets := &fakeAssets{}
	svc := NewService(store, assets)

	_, err := svc.Update(
		context.Background(),
		account.ID.Hex(),
		UpdateUserRequest{},
		filepath.Join(t.TempDir(), "new.png"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"users/old"}, assets.destroyed)
	assert.Equal(t, []string{storage.FolderUsers}, assets.uploadedTo)
}

func TestUpdate_RegisteredEmailImmutable(t *testing.T) {
	t.Parallel()

	account := &User{ID: primitive.NewObjectID(), Email: "rahim@example.com"}
	svc := NewService(newFakeStore(account), &fakeAssets{})

	_, err := svc.Update(
		context.Background(),
		account.ID.Hex(),
		UpdateUserRequest{Email: "other@example.com"},
		"",
	)
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Equal(
		t,
		"You cannot change your registered email",
		appErr.Message,
	)
}

func TestUpdate_NormalizesNames(t *testing.T) {
	t.Parallel()

	account := &User{ID: primitive.NewObjectID(), Email: "rahim@example.com"}
	store := newFakeStore(account)
	svc := NewService(store, &fakeAssets{})

	updated, err := svc.Update(
		context.Background(),
		account.ID.Hex(),
		UpdateUserRequest{FirstName: "  Rahim "},
		"",
	)
	require.NoError(t, err)
	assert.Equal(t, "rahim", updated.FirstName)
}
