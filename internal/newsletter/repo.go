package newsletter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/newsletter"
)

var ErrAlreadySubscribed = errors.New("email is already subscribed")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const subCols = `id, email, is_active, source, pref_promotions, pref_new_products, pref_sales, subscribed_at, unsubscribed_at`

func scanSubscriber(row interface{ Scan(...any) error }) (newsletter.Subscriber, error) {
	var s newsletter.Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.IsActive, &s.Source,
		&s.Preferences.Promotions, &s.Preferences.NewProducts, &s.Preferences.Sales,
		&s.SubscribedAt, &s.UnsubscribedAt)
	return s, err
}

// Subscribe inserts a new subscriber or reactivates an unsubscribed one
// in a single statement. An already-active email yields
// ErrAlreadySubscribed; no duplicate rows are ever created.
func (r *Repo) Subscribe(ctx context.Context, email string, source newsletter.Source, prefs newsletter.Preferences) (newsletter.Subscriber, error) {
	s, err := scanSubscriber(r.db.QueryRow(ctx, `
		INSERT INTO newsletter_subscribers
		  (email, source, pref_promotions, pref_new_products, pref_sales)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (email) DO UPDATE SET
		  is_active = true,
		  source = EXCLUDED.source,
		  pref_promotions = EXCLUDED.pref_promotions,
		  pref_new_products = EXCLUDED.pref_new_products,
		  pref_sales = EXCLUDED.pref_sales,
		  subscribed_at = now(),
		  unsubscribed_at = NULL
		WHERE newsletter_subscribers.is_active = false
		RETURNING `+subCols,
		email, source, prefs.Promotions, prefs.NewProducts, prefs.Sales))
	if errors.Is(err, pgx.ErrNoRows) {
		// conflict action filtered out: the row exists and is active
		return newsletter.Subscriber{}, ErrAlreadySubscribed
	}
	return s, err
}

func (r *Repo) Unsubscribe(ctx context.Context, email string) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE newsletter_subscribers
		SET is_active = false, unsubscribed_at = now()
		WHERE email = $1 AND is_active = true
	`, email)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type ListFilter struct {
	Active *bool
	Source newsletter.Source
	Page   int
	Limit  int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]newsletter.Subscriber, error) {
	q := `SELECT ` + subCols + ` FROM newsletter_subscribers WHERE 1=1`
	args := []any{}
	n := 0
	next := func() string { n++; return fmt.Sprintf("$%d", n) }

	if f.Active != nil {
		q += " AND is_active = " + next()
		args = append(args, *f.Active)
	}
	if f.Source != "" {
		q += " AND source = " + next()
		args = append(args, f.Source)
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q += " ORDER BY subscribed_at DESC LIMIT " + next()
	args = append(args, limit)
	q += " OFFSET " + next()
	args = append(args, (page-1)*limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []newsletter.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type Stats struct {
	Total        int64            `json:"total"`
	Active       int64            `json:"active"`
	Unsubscribed int64            `json:"unsubscribed"`
	BySource     map[string]int64 `json:"by_source"`
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	s := Stats{BySource: map[string]int64{}}
	err := r.db.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE is_active),
		       count(*) FILTER (WHERE NOT is_active)
		FROM newsletter_subscribers
	`).Scan(&s.Total, &s.Active, &s.Unsubscribed)
	if err != nil {
		return Stats{}, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT source, count(*) FROM newsletter_subscribers
		WHERE is_active GROUP BY source
	`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var src string
		var n int64
		if err := rows.Scan(&src, &n); err != nil {
			return Stats{}, err
		}
		s.BySource[src] = n
	}
	return s, rows.Err()
}
