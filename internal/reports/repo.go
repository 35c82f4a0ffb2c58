package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type DashboardStats struct {
	Orders         int64            `json:"orders"`
	Revenue        float64          `json:"revenue"`
	Products       int64            `json:"products"`
	Customers      int64            `json:"customers"`
	Subscribers    int64            `json:"subscribers"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}

// Dashboard aggregates the admin landing numbers. Revenue counts paid
// orders only.
func (r *Repo) Dashboard(ctx context.Context) (DashboardStats, error) {
	s := DashboardStats{OrdersByStatus: map[string]int64{}}

	err := r.db.QueryRow(ctx, `
		SELECT
		  (SELECT count(*) FROM orders),
		  (SELECT COALESCE(SUM(total), 0) FROM orders WHERE is_paid),
		  (SELECT count(*) FROM products WHERE status = 'active'),
		  (SELECT count(*) FROM users WHERE role = 'user'),
		  (SELECT count(*) FROM newsletter_subscribers WHERE is_active)
	`).Scan(&s.Orders, &s.Revenue, &s.Products, &s.Customers, &s.Subscribers)
	if err != nil {
		return DashboardStats{}, err
	}

	rows, err := r.db.Query(ctx, `SELECT status, count(*) FROM orders GROUP BY status`)
	if err != nil {
		return DashboardStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return DashboardStats{}, err
		}
		s.OrdersByStatus[status] = n
	}
	return s, rows.Err()
}

type MonthlyRow struct {
	Month   int     `json:"month"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
	Items   int64   `json:"items"`
}

// Monthly rolls revenue up per calendar month for one year. Cancelled
// and refunded orders are excluded; revenue counts paid orders.
func (r *Repo) Monthly(ctx context.Context, year int) ([]MonthlyRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month,
		       count(*),
		       COALESCE(SUM(total) FILTER (WHERE is_paid), 0)
		FROM orders
		WHERE EXTRACT(YEAR FROM created_at)::int = $1
		  AND status NOT IN ('cancelled','refunded')
		GROUP BY 1
		ORDER BY 1
	`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRow
	for rows.Next() {
		var m MonthlyRow
		if err := rows.Scan(&m.Month, &m.Orders, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	irows, err := r.db.Query(ctx, `
		SELECT EXTRACT(MONTH FROM o.created_at)::int, COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE EXTRACT(YEAR FROM o.created_at)::int = $1
		  AND o.status NOT IN ('cancelled','refunded')
		GROUP BY 1
	`, year)
	if err != nil {
		return nil, err
	}
	defer irows.Close()
	itemCounts := map[int]int64{}
	for irows.Next() {
		var month int
		var items int64
		if err := irows.Scan(&month, &items); err != nil {
			return nil, err
		}
		itemCounts[month] = items
	}
	if err := irows.Err(); err != nil {
		return nil, err
	}
	mergeMonthlyItems(out, itemCounts)
	return out, nil
}

// mergeMonthlyItems writes item counts onto the rows in place, by month
// number. Rows without a count keep zero.
func mergeMonthlyItems(rows []MonthlyRow, counts map[int]int64) {
	for i := range rows {
		if n, ok := counts[rows[i].Month]; ok {
			rows[i].Items = n
		}
	}
}

type YearlyRow struct {
	Year    int     `json:"year"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

func (r *Repo) Yearly(ctx context.Context) ([]YearlyRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(YEAR FROM created_at)::int AS year,
		       count(*),
		       COALESCE(SUM(total) FILTER (WHERE is_paid), 0)
		FROM orders
		WHERE status NOT IN ('cancelled','refunded')
		GROUP BY 1
		ORDER BY 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []YearlyRow
	for rows.Next() {
		var y YearlyRow
		if err := rows.Scan(&y.Year, &y.Orders, &y.Revenue); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

type ExportRow struct {
	OrderNumber string
	CreatedAt   time.Time
	Email       string
	Status      string
	IsPaid      bool
	Subtotal    float64
	Shipping    float64
	Tax         float64
	Total       float64
}

func (r *Repo) OrdersBetween(ctx context.Context, from, to time.Time) ([]ExportRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT order_number, created_at, ship_email, status, is_paid,
		       subtotal, shipping, tax, total
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var e ExportRow
		if err := rows.Scan(&e.OrderNumber, &e.CreatedAt, &e.Email, &e.Status, &e.IsPaid,
			&e.Subtotal, &e.Shipping, &e.Tax, &e.Total); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
