package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusOrderReceived Status = "Order Received"
	StatusCargoPacked   Status = "Cargo Packed"
	StatusCargoOnRoute  Status = "Cargo on Route"
	StatusDelivered     Status = "Delivered"
	StatusCancelled     Status = "Cancelled"
)

// PaymentStatus tracks settlement state independently of fulfillment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

type PaymentMethod string

const (
	PaymentMethodCOD         PaymentMethod = "cod"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
}

// Customer is a point-in-time snapshot of the buyer's contact details,
// never re-derived from a profile after creation.
type Customer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// Item is a snapshot of a catalog product at order time. Catalog changes
// afterward must not alter historical orders.
type Item struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
}

type Order struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	Customer      Customer        `json:"customer"`
	Items         []Item          `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Status        Status          `json:"status"`
	// Cancellable is denormalized from Status; recomputed on every status change.
	Cancellable bool      `json:"cancellable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Patch is a partial field update applied atomically to one order row.
// Nil fields are left untouched.
type Patch struct {
	Status        *Status
	PaymentStatus *PaymentStatus
	Cancellable   *bool
}
