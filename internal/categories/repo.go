package categories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/category"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/util"
)

// InUseError blocks category deletion while products still reference it.
type InUseError struct {
	CategoryID int64
	Products   int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("category is referenced by %d product(s) and cannot be deleted", e.Products)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const catCols = `id, name, slug, description, image, is_active, sort_order, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repo) ListActive(ctx context.Context) ([]category.Category, error) {
	return r.list(ctx, `
		SELECT `+catCols+` FROM categories
		WHERE is_active = true
		ORDER BY sort_order ASC, name ASC
	`)
}

func (r *Repo) AdminListAll(ctx context.Context) ([]category.Category, error) {
	return r.list(ctx, `
		SELECT `+catCols+` FROM categories
		ORDER BY sort_order ASC, name ASC
	`)
}

func (r *Repo) list(ctx context.Context, q string) ([]category.Category, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name, description, image string, sortOrder int) (category.Category, error) {
	slug := util.Slugify(name)
	return scanCategory(r.db.QueryRow(ctx, `
		INSERT INTO categories (name, slug, description, image, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING `+catCols+`
	`, name, slug, description, image, sortOrder))
}

func (r *Repo) Update(ctx context.Context, id int64, name, description, image *string, sortOrder *int, isActive *bool) (category.Category, error) {
	// Keep slug synced with name if name updated (simple approach)
	var newSlug any
	if name != nil {
		newSlug = util.Slugify(*name)
	}
	return scanCategory(r.db.QueryRow(ctx, `
		UPDATE categories
		SET
		  name = COALESCE($2, name),
		  slug = CASE WHEN $2 IS NULL THEN slug ELSE $7 END,
		  description = COALESCE($3, description),
		  image = COALESCE($4, image),
		  sort_order = COALESCE($5, sort_order),
		  is_active = COALESCE($6, is_active),
		  updated_at = now()
		WHERE id = $1
		RETURNING `+catCols+`
	`, id, name, description, image, sortOrder, isActive, newSlug))
}

// Delete refuses while any non-deleted product references the category.
// The count check and the delete are not one atomic statement; a racing
// product insert can slip through, acceptable at this scale.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM products
		WHERE category_id = $1 AND status <> 'deleted'
	`, id).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return &InUseError{CategoryID: id, Products: n}
	}

	ct, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("category %d not found", id)
	}
	return nil
}
