// AngelaMos | 2026
// repository.go

package product

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
	return &Repository{coll: db.Collection(core.CollectionProducts)}
}

func (r *Repository) Create(ctx context.Context, p *Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if p.Images == nil {
		p.Images = []string{}
	}

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert product: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}

	return nil
}

func (r *Repository) FindByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*Product, error) {
	var p Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find product: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func (r *Repository) ExistsBySKU(
	ctx context.Context,
	sku string,
) (bool, error) {
	count, err := r.coll.CountDocuments(
		ctx,
		bson.M{"sku": sku},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	return count > 0, nil
}

// ExistsByNameInCategory enforces one product name per category.
// Pass a non-nil exclude when checking during an update.
func (r *Repository) ExistsByNameInCategory(
	ctx context.Context,
	name string,
	categoryID primitive.ObjectID,
	exclude *primitive.ObjectID,
) (bool, error) {
	filter := bson.M{"name": name, "category": categoryID}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}

	count, err := r.coll.CountDocuments(
		ctx,
		filter,
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) List(
	ctx context.Context,
	params ListProductsParams,
) ([]Product, int64, error) {
	filter := listFilter(params)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if params.SortBy != "" {
		order := 1
		if params.SortOrder == "desc" {
			order = -1
		}
		sort = bson.D{{Key: params.SortBy, Value: order}}
	}

	skip := int64((params.Page - 1) * params.Limit)

	cursor, err := r.coll.Find(ctx, filter, options.Find().
		SetSkip(skip).
		SetLimit(int64(params.Limit)).
		SetSort(sort),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}

	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	return products, total, nil
}

func listFilter(params ListProductsParams) bson.M {
	filter := bson.M{}

	if params.Name != "" {
		filter["name"] = bson.M{"$regex": params.Name, "$options": "i"}
	}
	if params.SKU != "" {
		filter["sku"] = bson.M{"$regex": params.SKU, "$options": "i"}
	}
	if params.Price != nil {
		filter["price"] = bson.M{"$eq": *params.Price}
	}
	if params.Category != "" {
		if oid, err := primitive.ObjectIDFromHex(params.Category); err == nil {
			filter["category"] = oid
		}
	}
	if params.IsActive != nil {
		filter["isActive"] = *params.IsActive
	}
	if params.IsWeekendDeal != nil {
		filter["isWeekendDeal"] = *params.IsWeekendDeal
	}
	if params.IsFeatured != nil {
		filter["isFeatured"] = *params.IsFeatured
	}

	return filter
}

func (r *Repository) UpdateByID(
	ctx context.Context,
	id primitive.ObjectID,
	fields bson.M,
) (*Product, error) {
	fields["updatedAt"] = time.Now().UTC()

	var updated Product
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("update product: %w", core.ErrNotFound)
		}
		if core.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("update product: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return &updated, nil
}

func (r *Repository) PullImage(
	ctx context.Context,
	id primitive.ObjectID,
	imageURL string,
) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"images": imageURL},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("pull product image: %w", err)
	}
	return nil
}

func (r *Repository) DeleteByID(
	ctx context.Context,
	id primitive.ObjectID,
) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}
	return nil
}

func (r *Repository) FindByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) ([]Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	products := make([]Product, 0, len(ids))
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return products, nil
}

func (r *Repository) DeleteByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return res.DeletedCount, nil
}
