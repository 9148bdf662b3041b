// AngelaMos | 2026
// repository.go

package user

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

// publicProjection drops credential material from read queries; only
// the auth flow asks for the full document.
var publicProjection = bson.M{"password": 0, "refreshToken": 0}

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *core.Database) *Repository {
	return &Repository{coll: db.Collection(core.CollectionUsers)}
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}

	return nil
}

func (r *Repository) FindByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, publicProjection)
}

// FindByEmail returns the full document, credentials included.
func (r *Repository) FindByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

// FindByPhone returns the full document, credentials included.
func (r *Repository) FindByPhone(
	ctx context.Context,
	phone string,
) (*User, error) {
	return r.findOne(ctx, bson.M{"phone": phone}, nil)
}

func (r *Repository) ExistsByID(
	ctx context.Context,
	id primitive.ObjectID,
) (bool, error) {
	count, err := r.coll.CountDocuments(
		ctx,
		bson.M{"_id": id},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int64, error) {
	filter := bson.M{}

	if params.FirstName != "" {
		filter["firstName"] = bson.M{
			"$regex":   params.FirstName,
			"$options": "i",
		}
	}
	if params.LastName != "" {
		filter["lastName"] = bson.M{
			"$regex":   params.LastName,
			"$options": "i",
		}
	}
	if params.Email != "" {
		filter["email"] = params.Email
	}
	if params.Phone != "" {
		filter["phone"] = params.Phone
	}
	if params.Role != "" {
		filter["role"] = params.Role
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	sort := bson.D{{Key: "createdAt", Value: 1}}
	if params.SortBy != "" {
		order := 1
		if params.SortOrder == "desc" {
			order = -1
		}
		sort = bson.D{{Key: params.SortBy, Value: order}}
	}

	skip := int64((params.Page - 1) * params.Limit)

	cursor, err := r.coll.Find(ctx, filter, options.Find().
		SetProjection(publicProjection).
		SetSkip(skip).
		SetLimit(int64(params.Limit)).
		SetSort(sort),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}

	users := make([]User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	return users, total, nil
}

// UpdateByID applies a partial update and returns the fresh document
// without credentials.
func (r *Repository) UpdateByID(
	ctx context.Context,
	id primitive.ObjectID,
	fields bson.M,
) (*User, error) {
	fields["updatedAt"] = time.Now().UTC()

	var updated User
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(publicProjection),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
		}
		if core.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &updated, nil
}

func (r *Repository) SetRefreshToken(
	ctx context.Context,
	id primitive.ObjectID,
	token string,
) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"refreshToken": token,
			"updatedAt":    time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	return nil
}

func (r *Repository) findOne(
	ctx context.Context,
	filter bson.M,
	projection bson.M,
) (*User, error) {
	opts := options.FindOne()
	if projection != nil {
		opts = opts.SetProjection(projection)
	}

	var u User
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find user: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}
