package wishlist

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/cart"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, userID, productID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1,$2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *Repo) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

func (r *Repo) List(ctx context.Context, userID int64) ([]cart.WishlistItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
		  w.id, p.id, p.name, p.image,
		  CASE WHEN p.on_sale AND p.sale_price IS NOT NULL THEN p.sale_price ELSE p.price END,
		  p.total_stock > 0
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1 AND p.status = 'active'
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cart.WishlistItem
	for rows.Next() {
		var it cart.WishlistItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Product, &it.Image, &it.Price, &it.InStock); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
