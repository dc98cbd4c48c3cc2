package commerce

import "time"

// OrderStatuses lists every status the backend accepts, in display order.
var OrderStatuses = []string{OrderPending, OrderPaid, OrderFailed, OrderRefunded, OrderCancelled}

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderFailed    = "failed"
	OrderRefunded  = "refunded"
	OrderCancelled = "cancelled"
)

type OrderItem struct {
	Product        string `json:"product"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Order struct {
	ID         string      `json:"id"`
	User       string      `json:"user"`
	UserEmail  string      `json:"user_email"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
	TotalCents int64       `json:"total_cents"`
	Currency   string      `json:"currency"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (o Order) IsPending() bool { return o.Status == OrderPending }

type Membership struct {
	ID          string     `json:"id"`
	Product     string     `json:"product"`
	ProductName string     `json:"product_name"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsActive    bool       `json:"is_active"`
}

// Balance summarizes what the customer can spend.
type Balance struct {
	CreditsAvailable     int        `json:"credits_available"`
	HasActiveMembership  bool       `json:"has_active_membership"`
	MembershipEndsAt     *time.Time `json:"membership_ends_at"`
	NextCreditExpiration *time.Time `json:"next_credit_expiration"`
}

type OrderForm struct {
	Product  string `form:"product" binding:"required"`
	Quantity int    `form:"quantity" binding:"required,min=1"`
}
