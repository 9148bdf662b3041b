// AngelaMos | 2026
// entity.go

package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlacklistedToken is a revoked access token. A TTL index on createdAt
// expires the record after the retention window.
type BlacklistedToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token"         json:"token"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
