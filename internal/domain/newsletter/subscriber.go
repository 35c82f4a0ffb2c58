package newsletter

import "time"

type Source string

const (
	SourceWebsite  Source = "website"
	SourceCheckout Source = "checkout"
	SourceFooter   Source = "footer"
	SourceAdmin    Source = "admin"
)

func (s Source) Valid() bool {
	switch s {
	case SourceWebsite, SourceCheckout, SourceFooter, SourceAdmin:
		return true
	}
	return false
}

type Preferences struct {
	Promotions  bool `json:"promotions"`
	NewProducts bool `json:"new_products"`
	Sales       bool `json:"sales"`
}

type Subscriber struct {
	ID             int64       `json:"id"`
	Email          string      `json:"email"`
	IsActive       bool        `json:"is_active"`
	Source         Source      `json:"source"`
	Preferences    Preferences `json:"preferences"`
	SubscribedAt   time.Time   `json:"subscribed_at"`
	UnsubscribedAt *time.Time  `json:"unsubscribed_at,omitempty"`
}
