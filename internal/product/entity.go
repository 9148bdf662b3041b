// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lalonstore/lalon-store-api/internal/category"
)

// Product is a catalog item. SKU is assigned at creation and never
// changes; the images slice always holds at least one URL.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"         json:"id"`
	Name          string             `bson:"name"                  json:"name"`
	Price         float64            `bson:"price"                 json:"price"`
	Discount      float64            `bson:"discount,omitempty"    json:"discount,omitempty"`
	FinalPrice    float64            `bson:"finalPrice"            json:"finalPrice"`
	Quantity      string             `bson:"quantity"              json:"quantity"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Stock         int                `bson:"stock"                 json:"stock"`
	Images        []string           `bson:"images"                json:"images"`
	SKU           string             `bson:"sku,omitempty"         json:"sku,omitempty"`
	IsActive      bool               `bson:"isActive"              json:"isActive"`
	Category      primitive.ObjectID `bson:"category"              json:"category"`
	IsWeekendDeal bool               `bson:"isWeekendDeal"         json:"isWeekendDeal"`
	IsFeatured    bool               `bson:"isFeatured"            json:"isFeatured"`
	CreatedAt     time.Time          `bson:"createdAt"             json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"             json:"updatedAt"`
}

// PopulatedProduct swaps the category reference for the full document
// on read paths.
type PopulatedProduct struct {
	*Product
	Category *category.Category `json:"category"`
}
