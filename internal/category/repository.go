// AngelaMos | 2026
// repository.go

package category

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
	return &Repository{coll: db.Collection(core.CollectionCategories)}
}

func (r *Repository) Create(ctx context.Context, c *Category) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert category: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}

	return nil
}

func (r *Repository) FindByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*Category, error) {
	var c Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find category: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]Category, error) {
	cursor, err := r.coll.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}

	categories := make([]Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	return categories, nil
}

// ExistsByTitleOrValue reports whether another category already claims
// the title or slug.
func (r *Repository) ExistsByTitleOrValue(
	ctx context.Context,
	title, value string,
) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"title": title},
		bson.M{"value": value},
	}}

	count, err := r.coll.CountDocuments(
		ctx,
		filter,
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return count > 0, nil
}

// ExistsByTitleExcept is the update-time duplicate check; the category
// being updated is excluded from the search.
func (r *Repository) ExistsByTitleExcept(
	ctx context.Context,
	title string,
	exclude primitive.ObjectID,
) (bool, error) {
	count, err := r.coll.CountDocuments(
		ctx,
		bson.M{"title": title, "_id": bson.M{"$ne": exclude}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) UpdateByID(
	ctx context.Context,
	id primitive.ObjectID,
	fields bson.M,
) (*Category, error) {
	fields["updatedAt"] = time.Now().UTC()

	var updated Category
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("update category: %w", core.ErrNotFound)
		}
		if core.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	return &updated, nil
}

func (r *Repository) DeleteByID(
	ctx context.Context,
	id primitive.ObjectID,
) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}
	return nil
}

func (r *Repository) FindByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) ([]Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}

	categories := make([]Category, 0, len(ids))
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) DeleteByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return res.DeletedCount, nil
}
