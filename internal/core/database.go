// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lalonstore/lalon-store-api/internal/config"
)

const (
	CollectionUsers             = "users"
	CollectionProducts          = "products"
	CollectionCategories        = "categories"
	CollectionBanners           = "banners"
	CollectionBlacklistedTokens = "blacklisted_tokens"
)

// BlacklistRetention is how long a revoked token record is kept before
// the TTL monitor removes it, independent of the token's own expiry.
const BlacklistRetention = 7 * 24 * time.Hour

type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewDatabase(
	ctx context.Context,
	cfg config.MongoConfig,
) (*Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx) //nolint:errcheck // cleanup on connection failure
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := &Database{
		Client: client,
		DB:     client.Database(cfg.Database),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx) //nolint:errcheck // cleanup on bootstrap failure
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	return db, nil
}

func (d *Database) Collection(name string) *mongo.Collection {
	return d.DB.Collection(name)
}

func (d *Database) Close(ctx context.Context) error {
	if d.Client != nil {
		return d.Client.Disconnect(ctx)
	}
	return nil
}

func (d *Database) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := d.Client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}

	return nil
}

func (d *Database) SessionsInProgress() int {
	return d.Client.NumberSessionsInProgress()
}

// ensureIndexes creates every uniqueness/TTL constraint the data model
// relies on. Pre-checks in the services give friendly 409s; these indexes
// are what actually holds under concurrent writes.
func (d *Database) ensureIndexes(ctx context.Context) error {
	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := func(keys bson.D, sparse bool) mongo.IndexModel {
		o := options.Index().SetUnique(true)
		if sparse {
			o = o.SetSparse(true)
		}
		return mongo.IndexModel{Keys: keys, Options: o}
	}

	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			unique(bson.D{{Key: "email", Value: 1}}, true),
			unique(bson.D{{Key: "phone", Value: 1}}, true),
			unique(bson.D{{Key: "googleId", Value: 1}}, true),
		},
		CollectionProducts: {
			unique(bson.D{{Key: "sku", Value: 1}}, true),
			unique(bson.D{{Key: "name", Value: 1}, {Key: "category", Value: 1}}, false),
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		CollectionCategories: {
			unique(bson.D{{Key: "title", Value: 1}}, false),
			unique(bson.D{{Key: "value", Value: 1}}, false),
		},
		CollectionBanners: {
			unique(bson.D{{Key: "order", Value: 1}}, false),
		},
		CollectionBlacklistedTokens: {
			unique(bson.D{{Key: "token", Value: 1}}, false),
			{
				Keys: bson.D{{Key: "createdAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(
					int32(BlacklistRetention.Seconds()),
				),
			},
		},
	}

	for coll, models := range indexes {
		if _, err := d.Collection(coll).Indexes().CreateMany(idxCtx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}

	return nil
}

func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// ParseObjectID maps malformed hex ids onto ErrInvalidID so handlers can
// answer 404 without special-casing the driver error.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("parse id %q: %w", id, ErrInvalidID)
	}
	return oid, nil
}
