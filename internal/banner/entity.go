// AngelaMos | 2026
// entity.go

package banner

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a homepage carousel slide. Order is unique and assigned
// sequentially at creation; the image is attached afterwards via update.
type Banner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title"         json:"title"`
	Image     string             `bson:"image"         json:"image"`
	Order     int                `bson:"order"         json:"order"`
	IsActive  bool               `bson:"isActive"      json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// BannerImage is a standalone image listed from the remote banners
// folder, not tied to a banner document.
type BannerImage struct {
	ImageURL string `json:"imageURL"`
	PublicID string `json:"public_id"`
}
