// AngelaMos | 2026
// entity.go

package category

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a catalog group. Value is the machine slug derived from
// the title; both are unique.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"id"`
	Title     string             `bson:"title"               json:"title"`
	Value     string             `bson:"value"               json:"value"`
	Logo      string             `bson:"logo,omitempty"      json:"logo,omitempty"`
	Thumbnail string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"           json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"           json:"updatedAt"`
}
