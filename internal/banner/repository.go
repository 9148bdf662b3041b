// AngelaMos | 2026
// repository.go

package banner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lalonstore/lalon-store-api/internal/core"
)

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *core.Database) *Repository {
	return &Repository{coll: db.Collection(core.CollectionBanners)}
}

func (r *Repository) Create(ctx context.Context, b *Banner) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert banner: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert banner: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}

	return nil
}

// MaxOrder returns the highest order in use, or 0 when no banner exists.
func (r *Repository) MaxOrder(ctx context.Context) (int, error) {
	var last Banner
	err := r.coll.FindOne(
		ctx,
		bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}}),
	).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("find last banner: %w", err)
	}
	return last.Order, nil
}

func (r *Repository) FindByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*Banner, error) {
	var b Banner
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find banner: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("find banner: %w", err)
	}
	return &b, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]Banner, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find banners: %w", err)
	}

	banners := make([]Banner, 0)
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, fmt.Errorf("decode banners: %w", err)
	}

	return banners, nil
}

func (r *Repository) UpdateByID(
	ctx context.Context,
	id primitive.ObjectID,
	fields bson.M,
) (*Banner, error) {
	fields["updatedAt"] = time.Now().UTC()

	var updated Banner
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("update banner: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("update banner: %w", err)
	}

	return &updated, nil
}

func (r *Repository) DeleteByID(
	ctx context.Context,
	id primitive.ObjectID,
) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete banner: %w", core.ErrNotFound)
	}
	return nil
}

func (r *Repository) FindByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) ([]Banner, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find banners: %w", err)
	}

	banners := make([]Banner, 0, len(ids))
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, fmt.Errorf("decode banners: %w", err)
	}

	return banners, nil
}

func (r *Repository) DeleteByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete banners: %w", err)
	}
	return res.DeletedCount, nil
}
