package product

import "time"

// Lifecycle state of a product. Archived products are hidden from the
// storefront but restorable; only the permanent-delete path removes rows.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusDeleted:
		return true
	}
	return false
}

type Size string

const (
	SizeXS      Size = "XS"
	SizeS       Size = "S"
	SizeM       Size = "M"
	SizeL       Size = "L"
	SizeXL      Size = "XL"
	SizeXXL     Size = "XXL"
	SizeOneSize Size = "One Size"
)

func (s Size) Valid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeOneSize:
		return true
	}
	return false
}

type Product struct {
	ID            int64     `json:"id"`
	CategoryID    int64     `json:"category_id"`
	Category      string    `json:"category,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Image         string    `json:"image,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	SalePrice     *float64  `json:"sale_price,omitempty"`
	OnSale        bool      `json:"on_sale"`
	Tags          []string  `json:"tags,omitempty"`
	Featured      bool      `json:"featured"`
	Status        Status    `json:"status"`
	TotalStock    int       `json:"total_stock"`
	Rating        float64   `json:"rating"`
	NumReviews    int       `json:"num_reviews"`
	CreatedBy     *int64    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Variants      []Variant `json:"variants,omitempty"`
	Reviews       []Review  `json:"reviews,omitempty"`
}

type Variant struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Size      Size      `json:"size"`
	Color     string    `json:"color"`
	ColorCode string    `json:"color_code,omitempty"`
	Stock     int       `json:"stock"`
	SKU       *string   `json:"sku,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TotalStock is the denormalized aggregate stored on the product row.
// Recomputed on every write that touches variants.
func TotalStock(variants []Variant) int {
	total := 0
	for _, v := range variants {
		total += v.Stock
	}
	return total
}

// ReviewAggregate returns (mean rating, count); (0, 0) when there are no
// reviews.
func ReviewAggregate(reviews []Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}
