package order

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal states accept no further transitions.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Legal (from -> to) pairs. The happy path moves forward only; a pending
// order may ship directly when fulfilment skips the processing step.
// Cancelled and refunded are reachable from any non-terminal state.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusShipped, StatusCancelled, StatusRefunded},
	StatusProcessing: {StatusShipped, StatusCancelled, StatusRefunded},
	StatusShipped:    {StatusDelivered, StatusCancelled, StatusRefunded},
	StatusDelivered:  {},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// Transition validates the change without applying it. Use it before any
// status write so illegal pairs never reach the store.
func Transition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("unknown order status %q", to)
	}
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// MissingFields lists the required address fields that are empty.
func (a Address) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, val string
	}{
		{"first_name", a.FirstName},
		{"last_name", a.LastName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zip", a.Zip},
		{"country", a.Country},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// LineItem freezes what was bought at order time. Later product edits do
// not touch historical orders.
type LineItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	VariantID int64   `json:"variant_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	SKU       *string `json:"sku,omitempty"`
}

type HistoryEntry struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Status    Status    `json:"status"`
	Note      string    `json:"note,omitempty"`
	UpdatedBy *int64    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Order struct {
	ID            int64          `json:"id"`
	OrderNumber   string         `json:"order_number"`
	UserID        *int64         `json:"user_id,omitempty"`
	GuestEmail    *string        `json:"guest_email,omitempty"`
	Items         []LineItem     `json:"items"`
	Shipping      Address        `json:"shipping_address"`
	PaymentMethod string         `json:"payment_method"`
	Subtotal      float64        `json:"subtotal"`
	ShippingFee   float64        `json:"shipping"`
	Tax           float64        `json:"tax"`
	Total         float64        `json:"total"`
	IsPaid        bool           `json:"is_paid"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	IsDelivered   bool           `json:"is_delivered"`
	DeliveredAt   *time.Time     `json:"delivered_at,omitempty"`
	Status        Status         `json:"status"`
	History       []HistoryEntry `json:"status_history,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
