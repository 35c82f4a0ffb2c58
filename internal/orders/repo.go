package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/config"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/order"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/util"
)

var (
	ErrEmptyOrder  = errors.New("order must contain at least one item")
	ErrNotEditable = errors.New("shipping address can only be changed while the order is pending")
	ErrUnavailable = errors.New("product is not available for purchase")
	ErrAlreadyPaid = errors.New("order is already marked paid")
)

// InsufficientStockError reports the variant that could not cover the
// requested quantity. The whole order rolls back.
type InsufficientStockError struct {
	ProductName string
	Size        string
	Color       string
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s/%s): requested %d",
		e.ProductName, e.Size, e.Color, e.Requested)
}

type Repo struct {
	db      *pgxpool.Pool
	pricing config.Pricing
}

func NewRepo(db *pgxpool.Pool, pricing config.Pricing) *Repo {
	return &Repo{db: db, pricing: pricing}
}

type CreateItemInput struct {
	ProductID int64
	VariantID int64
	Quantity  int
}

type CreateOrderInput struct {
	UserID        *int64
	GuestEmail    *string
	PaymentMethod string
	Shipping      order.Address
	Items         []CreateItemInput
}

// Create places an order in one transaction: price lookup from the
// catalog, conditional stock decrement per line, item snapshot, totals,
// and the first status-history row. Totals come from current variant
// prices, never from the caller.
func (r *Repo) Create(ctx context.Context, in CreateOrderInput) (order.Order, error) {
	if len(in.Items) == 0 {
		return order.Order{}, ErrEmptyOrder
	}
	if missing := in.Shipping.MissingFields(); len(missing) > 0 {
		return order.Order{}, fmt.Errorf("missing address fields: %v", missing)
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return order.Order{}, fmt.Errorf("quantity must be at least 1")
		}
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	type snapshot struct {
		in    CreateItemInput
		name  string
		image string
		price float64
		size  string
		color string
		sku   *string
	}

	var (
		snaps    []snapshot
		subtotal float64
		touched  = map[int64]struct{}{}
	)
	for _, item := range in.Items {
		var (
			s         snapshot
			salePrice *float64
			onSale    bool
			status    string
		)
		s.in = item
		err := tx.QueryRow(ctx, `
			SELECT p.name, p.image, p.price, p.sale_price, p.on_sale, p.status,
			       v.size, v.color, v.sku
			FROM product_variants v
			JOIN products p ON p.id = v.product_id
			WHERE v.id = $1 AND v.product_id = $2
			FOR UPDATE OF v
		`, item.VariantID, item.ProductID).Scan(
			&s.name, &s.image, &s.price, &salePrice, &onSale, &status,
			&s.size, &s.color, &s.sku,
		)
		if err != nil {
			return order.Order{}, err
		}
		if status != "active" {
			return order.Order{}, ErrUnavailable
		}
		if onSale && salePrice != nil {
			s.price = *salePrice
		}

		// Conditional decrement: zero rows means the shelf is short.
		ct, err := tx.Exec(ctx, `
			UPDATE product_variants
			SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2
		`, item.VariantID, item.Quantity)
		if err != nil {
			return order.Order{}, err
		}
		if ct.RowsAffected() == 0 {
			return order.Order{}, &InsufficientStockError{
				ProductName: s.name,
				Size:        s.size,
				Color:       s.color,
				Requested:   item.Quantity,
			}
		}

		subtotal += s.price * float64(item.Quantity)
		touched[item.ProductID] = struct{}{}
		snaps = append(snaps, s)
	}
	subtotal = round2(subtotal)

	for productID := range touched {
		if _, err := tx.Exec(ctx, `
			UPDATE products
			SET total_stock = (
				SELECT COALESCE(SUM(stock), 0) FROM product_variants WHERE product_id = $1
			), updated_at = now()
			WHERE id = $1
		`, productID); err != nil {
			return order.Order{}, err
		}
	}

	shipping, tax, total := Quote(r.pricing, subtotal)
	number := util.OrderNumber(time.Now())

	var orderID int64
	a := in.Shipping
	err = tx.QueryRow(ctx, `
		INSERT INTO orders
		  (order_number, user_id, guest_email, payment_method,
		   ship_first_name, ship_last_name, ship_email, ship_phone,
		   ship_street, ship_city, ship_state, ship_zip, ship_country,
		   subtotal, shipping, tax, total, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,'pending')
		RETURNING id
	`, number, in.UserID, in.GuestEmail, in.PaymentMethod,
		a.FirstName, a.LastName, a.Email, a.Phone,
		a.Street, a.City, a.State, a.Zip, a.Country,
		subtotal, shipping, tax, total,
	).Scan(&orderID)
	if err != nil {
		return order.Order{}, err
	}

	for _, s := range snaps {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items
			  (order_id, product_id, variant_id, name, image, price, quantity, size, color, sku)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, orderID, s.in.ProductID, s.in.VariantID, s.name, s.image, s.price, s.in.Quantity, s.size, s.color, s.sku)
		if err != nil {
			return order.Order{}, fmt.Errorf("item snapshot failed: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, status, note, updated_by)
		VALUES ($1, 'pending', 'order placed', $2)
	`, orderID, in.UserID); err != nil {
		return order.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	return r.Get(ctx, orderID)
}

// UpdateStatus applies one legal transition and appends exactly one
// history row. Illegal pairs are rejected before anything is written.
func (r *Repo) UpdateStatus(ctx context.Context, orderID int64, to order.Status, note string, adminID int64) (order.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var from order.Status
	if err := tx.QueryRow(ctx, `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&from); err != nil {
		return order.Order{}, err
	}

	if err := order.Transition(from, to); err != nil {
		return order.Order{}, err
	}

	if to == order.StatusDelivered {
		_, err = tx.Exec(ctx, `
			UPDATE orders
			SET status = $2, is_delivered = true, delivered_at = now(), updated_at = now()
			WHERE id = $1
		`, orderID, to)
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
		`, orderID, to)
	}
	if err != nil {
		return order.Order{}, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, status, note, updated_by)
		VALUES ($1,$2,$3,$4)
	`, orderID, to, note, adminID); err != nil {
		return order.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	return r.Get(ctx, orderID)
}

// UpdateAddress edits the shipping address while the order is still
// pending. Both the customer and admin paths go through here so the
// guard holds uniformly.
func (r *Repo) UpdateAddress(ctx context.Context, orderID int64, a order.Address) (order.Order, error) {
	if missing := a.MissingFields(); len(missing) > 0 {
		return order.Order{}, fmt.Errorf("missing address fields: %v", missing)
	}

	ct, err := r.db.Exec(ctx, `
		UPDATE orders
		SET ship_first_name=$2, ship_last_name=$3, ship_email=$4, ship_phone=$5,
		    ship_street=$6, ship_city=$7, ship_state=$8, ship_zip=$9, ship_country=$10,
		    updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`, orderID, a.FirstName, a.LastName, a.Email, a.Phone,
		a.Street, a.City, a.State, a.Zip, a.Country)
	if err != nil {
		return order.Order{}, err
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, orderID).Scan(&exists); err != nil {
			return order.Order{}, err
		}
		if !exists {
			return order.Order{}, pgx.ErrNoRows
		}
		return order.Order{}, ErrNotEditable
	}
	return r.Get(ctx, orderID)
}

func (r *Repo) MarkPaid(ctx context.Context, orderID int64) (order.Order, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE orders SET is_paid = true, paid_at = now(), updated_at = now()
		WHERE id = $1 AND NOT is_paid
	`, orderID)
	if err != nil {
		return order.Order{}, err
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, orderID).Scan(&exists); err != nil {
			return order.Order{}, err
		}
		if !exists {
			return order.Order{}, pgx.ErrNoRows
		}
		return order.Order{}, ErrAlreadyPaid
	}
	return r.Get(ctx, orderID)
}

const orderCols = `id, order_number, user_id, guest_email, payment_method,
	ship_first_name, ship_last_name, ship_email, ship_phone,
	ship_street, ship_city, ship_state, ship_zip, ship_country,
	subtotal, shipping, tax, total, is_paid, paid_at,
	is_delivered, delivered_at, status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.GuestEmail, &o.PaymentMethod,
		&o.Shipping.FirstName, &o.Shipping.LastName, &o.Shipping.Email, &o.Shipping.Phone,
		&o.Shipping.Street, &o.Shipping.City, &o.Shipping.State, &o.Shipping.Zip, &o.Shipping.Country,
		&o.Subtotal, &o.ShippingFee, &o.Tax, &o.Total, &o.IsPaid, &o.PaidAt,
		&o.IsDelivered, &o.DeliveredAt, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *Repo) Get(ctx context.Context, id int64) (order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return order.Order{}, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, variant_id, name, image, price, quantity, size, color, sku
		FROM order_items WHERE order_id = $1 ORDER BY id ASC
	`, id)
	if err != nil {
		return order.Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var it order.LineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Name, &it.Image, &it.Price, &it.Quantity, &it.Size, &it.Color, &it.SKU); err != nil {
			return order.Order{}, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return order.Order{}, err
	}

	hrows, err := r.db.Query(ctx, `
		SELECT id, order_id, status, note, updated_by, updated_at
		FROM order_status_history WHERE order_id = $1 ORDER BY id ASC
	`, id)
	if err != nil {
		return order.Order{}, err
	}
	defer hrows.Close()
	for hrows.Next() {
		var h order.HistoryEntry
		if err := hrows.Scan(&h.ID, &h.OrderID, &h.Status, &h.Note, &h.UpdatedBy, &h.UpdatedAt); err != nil {
			return order.Order{}, err
		}
		o.History = append(o.History, h)
	}
	return o, hrows.Err()
}

type ListFilter struct {
	UserID *int64
	Status order.Status
	Search string
	Page   int
	Limit  int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]order.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders WHERE 1=1`
	args := []any{}
	n := 0
	next := func() string { n++; return fmt.Sprintf("$%d", n) }

	if f.UserID != nil {
		q += " AND user_id = " + next()
		args = append(args, *f.UserID)
	}
	if f.Status != "" {
		q += " AND status = " + next()
		args = append(args, f.Status)
	}
	if f.Search != "" {
		ph := next()
		q += " AND (order_number ILIKE " + ph +
			" OR ship_email ILIKE " + ph +
			" OR COALESCE(guest_email,'') ILIKE " + ph + ")"
		args = append(args, "%"+f.Search+"%")
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q += " ORDER BY created_at DESC"
	q += " LIMIT " + next()
	args = append(args, limit)
	q += " OFFSET " + next()
	args = append(args, (page-1)*limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
