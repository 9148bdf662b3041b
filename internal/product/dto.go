// AngelaMos | 2026
// dto.go

package product

type CreateProductRequest struct {
	Name          string   `json:"name"          validate:"required,max=255"`
	Price         float64  `json:"price"         validate:"gte=0"`
	Discount      *float64 `json:"discount"      validate:"omitempty,gte=0,lte=100"`
	Quantity      string   `json:"quantity"      validate:"required,max=50"`
	Description   string   `json:"description"   validate:"omitempty,max=1000"`
	Stock         *int     `json:"stock"         validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"isActive"`
	IsWeekendDeal *bool    `json:"isWeekendDeal"`
	IsFeatured    *bool    `json:"isFeatured"`
	Category      string   `json:"category"      validate:"required"`
}

// UpdateProductRequest accepts any subset of product fields. A SKU in
// the payload is rejected outright.
type UpdateProductRequest struct {
	Name          string   `json:"name"          validate:"omitempty,max=255"`
	Price         *float64 `json:"price"         validate:"omitempty,gte=0"`
	Discount      *float64 `json:"discount"      validate:"omitempty,gte=0,lte=100"`
	Quantity      string   `json:"quantity"      validate:"omitempty,max=50"`
	Description   string   `json:"description"   validate:"omitempty,max=1000"`
	Stock         *int     `json:"stock"         validate:"omitempty,gte=0"`
	SKU           string   `json:"sku"`
	IsActive      *bool    `json:"isActive"`
	IsWeekendDeal *bool    `json:"isWeekendDeal"`
	IsFeatured    *bool    `json:"isFeatured"`
	Category      string   `json:"category"`
}

type ListProductsParams struct {
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
	Name          string
	SKU           string
	Price         *float64
	Category      string
	IsActive      *bool
	IsWeekendDeal *bool
	IsFeatured    *bool
}

type DeleteImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
}

type BatchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// FinalPrice applies a percentage discount to a price.
func FinalPrice(price, discount float64) float64 {
	if discount == 0 {
		return price
	}
	return price - (price*discount)/100
}
