package cart

type Cart struct {
	ID     int64      `json:"id"`
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ID        int64   `json:"id"`
	VariantID int64   `json:"variant_id"`
	Qty       int     `json:"qty"`
	ProductID int64   `json:"product_id"`
	Product   string  `json:"product"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type WishlistItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Product   string  `json:"product"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	InStock   bool    `json:"in_stock"`
}
