// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lalonstore/lalon-store-api/internal/core"
)

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *core.Database) *Repository {
	return &Repository{coll: db.Collection(core.CollectionBlacklistedTokens)}
}

// Blacklist records a revoked token. Re-blacklisting the same token is
// a no-op, not an error.
func (r *Repository) Blacklist(ctx context.Context, token string) error {
	_, err := r.coll.InsertOne(ctx, BlacklistedToken{
		Token:     token,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (r *Repository) IsBlacklisted(
	ctx context.Context,
	token string,
) (bool, error) {
	count, err := r.coll.CountDocuments(
		ctx,
		bson.M{"token": token},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return count > 0, nil
}
