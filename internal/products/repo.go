package products

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/product"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type CreateProductInput struct {
	CategoryID    int64
	Name          string
	Description   string
	Brand         string
	Image         string
	Price         float64
	OriginalPrice *float64
	DiscountPrice *float64
	SalePrice     *float64
	OnSale        bool
	Tags          []string
	Featured      bool
	CreatedBy     int64

	Variants []VariantInput
}

type VariantInput struct {
	Size      product.Size
	Color     string
	ColorCode string
	Stock     int
	SKU       *string
}

type UpdateProductInput struct {
	CategoryID    *int64
	Name          *string
	Description   *string
	Brand         *string
	Image         *string
	Price         *float64
	OriginalPrice *float64
	DiscountPrice *float64
	SalePrice     *float64
	OnSale        *bool
	Tags          []string
	Featured      *bool

	// Non-nil replaces the whole variant set and recomputes total stock.
	Variants []VariantInput
}

type ListFilter struct {
	CategorySlug string
	Search       string
	Featured     *bool
	OnSale       *bool
}

const prodCols = `p.id, p.category_id, p.name, p.description, p.brand, p.image,
	p.price, p.original_price, p.discount_price, p.sale_price, p.on_sale,
	p.tags, p.featured, p.status, p.total_stock, p.rating, p.num_reviews,
	p.created_by, p.created_at, p.updated_at`

func scanProduct(row interface{ Scan(...any) error }, withCategory bool) (product.Product, error) {
	var p product.Product
	dest := []any{
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Brand, &p.Image,
		&p.Price, &p.OriginalPrice, &p.DiscountPrice, &p.SalePrice, &p.OnSale,
		&p.Tags, &p.Featured, &p.Status, &p.TotalStock, &p.Rating, &p.NumReviews,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	}
	if withCategory {
		dest = append(dest, &p.Category)
	}
	err := row.Scan(dest...)
	return p, err
}

func (r *Repo) Create(ctx context.Context, in CreateProductInput) (product.Product, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return product.Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if in.Tags == nil {
		in.Tags = []string{}
	}
	p, err := scanProduct(tx.QueryRow(ctx, `
		INSERT INTO products
		  (category_id, name, description, brand, image, price, original_price,
		   discount_price, sale_price, on_sale, tags, featured, created_by, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,'active')
		RETURNING `+prodCols,
		in.CategoryID, in.Name, in.Description, in.Brand, in.Image, in.Price, in.OriginalPrice,
		in.DiscountPrice, in.SalePrice, in.OnSale, in.Tags, in.Featured, in.CreatedBy,
	), false)
	if err != nil {
		return product.Product{}, err
	}

	if err := insertVariants(ctx, tx, p.ID, in.Variants); err != nil {
		return product.Product{}, err
	}
	if err := recomputeTotalStock(ctx, tx, p.ID); err != nil {
		return product.Product{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return product.Product{}, err
	}
	return r.AdminGet(ctx, p.ID)
}

func (r *Repo) Update(ctx context.Context, id int64, in UpdateProductInput) (product.Product, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return product.Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = scanProduct(tx.QueryRow(ctx, `
		UPDATE products p
		SET
		  category_id = COALESCE($2, category_id),
		  name = COALESCE($3, name),
		  description = COALESCE($4, description),
		  brand = COALESCE($5, brand),
		  image = COALESCE($6, image),
		  price = COALESCE($7, price),
		  original_price = COALESCE($8, original_price),
		  discount_price = COALESCE($9, discount_price),
		  sale_price = COALESCE($10, sale_price),
		  on_sale = COALESCE($11, on_sale),
		  tags = COALESCE($12, tags),
		  featured = COALESCE($13, featured),
		  updated_at = now()
		WHERE id = $1 AND status <> 'deleted'
		RETURNING `+prodCols,
		id, in.CategoryID, in.Name, in.Description, in.Brand, in.Image, in.Price,
		in.OriginalPrice, in.DiscountPrice, in.SalePrice, in.OnSale, in.Tags, in.Featured,
	), false)
	if err != nil {
		return product.Product{}, err
	}

	if in.Variants != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, id); err != nil {
			return product.Product{}, err
		}
		if err := insertVariants(ctx, tx, id, in.Variants); err != nil {
			return product.Product{}, err
		}
		if err := recomputeTotalStock(ctx, tx, id); err != nil {
			return product.Product{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return product.Product{}, err
	}
	return r.AdminGet(ctx, id)
}

func insertVariants(ctx context.Context, tx pgx.Tx, productID int64, variants []VariantInput) error {
	for _, v := range variants {
		if !v.Size.Valid() {
			return fmt.Errorf("invalid size %q", v.Size)
		}
		if v.Stock < 0 {
			return fmt.Errorf("negative stock for size %s color %s", v.Size, v.Color)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO product_variants (product_id, size, color, color_code, stock, sku)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, productID, v.Size, v.Color, v.ColorCode, v.Stock, v.SKU)
		if err != nil {
			return fmt.Errorf("variant insert failed: %w", err)
		}
	}
	return nil
}

// total_stock must always equal the sum of variant stocks; every write
// path that touches variants runs this inside the same transaction.
func recomputeTotalStock(ctx context.Context, tx pgx.Tx, productID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE products
		SET total_stock = (
			SELECT COALESCE(SUM(stock), 0) FROM product_variants WHERE product_id = $1
		), updated_at = now()
		WHERE id = $1
	`, productID)
	return err
}

func (r *Repo) ListPublic(ctx context.Context, f ListFilter) ([]product.Product, error) {
	q := `
		SELECT ` + prodCols + `, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.status = 'active' AND c.is_active = true
	`
	args := []any{}
	n := 0
	next := func() string { n++; return fmt.Sprintf("$%d", n) }

	if f.CategorySlug != "" {
		q += " AND c.slug = " + next()
		args = append(args, f.CategorySlug)
	}
	if f.Search != "" {
		ph := next()
		q += " AND (p.name ILIKE " + ph + " OR p.brand ILIKE " + ph + ")"
		args = append(args, "%"+f.Search+"%")
	}
	if f.Featured != nil {
		q += " AND p.featured = " + next()
		args = append(args, *f.Featured)
	}
	if f.OnSale != nil {
		q += " AND p.on_sale = " + next()
		args = append(args, *f.OnSale)
	}
	q += " ORDER BY p.created_at DESC"

	return r.queryProducts(ctx, q, args...)
}

func (r *Repo) AdminList(ctx context.Context, status product.Status) ([]product.Product, error) {
	q := `
		SELECT ` + prodCols + `, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
	`
	args := []any{}
	if status != "" {
		q += " WHERE p.status = $1"
		args = append(args, status)
	}
	q += " ORDER BY p.created_at DESC"
	return r.queryProducts(ctx, q, args...)
}

func (r *Repo) queryProducts(ctx context.Context, q string, args ...any) ([]product.Product, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		p, err := scanProduct(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetPublic(ctx context.Context, id int64) (product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+prodCols+`, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.status = 'active' AND c.is_active = true
	`, id), true)
	if err != nil {
		return product.Product{}, err
	}
	return r.attachDetails(ctx, p)
}

func (r *Repo) AdminGet(ctx context.Context, id int64) (product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+prodCols+`, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id), true)
	if err != nil {
		return product.Product{}, err
	}
	return r.attachDetails(ctx, p)
}

func (r *Repo) attachDetails(ctx context.Context, p product.Product) (product.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, size, color, color_code, stock, sku, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id ASC
	`, p.ID)
	if err != nil {
		return product.Product{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var v product.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.ColorCode, &v.Stock, &v.SKU, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return product.Product{}, err
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return product.Product{}, err
	}

	rrows, err := r.db.Query(ctx, `
		SELECT rv.id, rv.product_id, rv.user_id, u.name, rv.rating, rv.comment, rv.created_at
		FROM product_reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
		ORDER BY rv.created_at DESC
	`, p.ID)
	if err != nil {
		return product.Product{}, err
	}
	defer rrows.Close()
	for rrows.Next() {
		var rev product.Review
		if err := rrows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return product.Product{}, err
		}
		p.Reviews = append(p.Reviews, rev)
	}
	return p, rrows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status product.Status) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE products SET status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repo) PermanentDelete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddReview inserts the review and refreshes the product's rating and
// num_reviews aggregates in one transaction.
func (r *Repo) AddReview(ctx context.Context, productID, userID int64, rating int, comment string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO product_reviews (product_id, user_id, rating, comment)
		VALUES ($1,$2,$3,$4)
	`, productID, userID, rating, comment)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE products
		SET rating = COALESCE((
		      SELECT ROUND(AVG(rating)::numeric, 2) FROM product_reviews WHERE product_id = $1
		    ), 0),
		    num_reviews = (
		      SELECT count(*) FROM product_reviews WHERE product_id = $1
		    ),
		    updated_at = now()
		WHERE id = $1
	`, productID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
