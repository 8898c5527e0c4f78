package order

import "github.com/shopspring/decimal"

// CreateOrderItem is one line item of a creation request. Name and
// unit_price may be omitted when product_id is set; they are then filled
// from the catalog snapshot.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string          `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Name      string          `json:"name"       example:"Shirt"`
	UnitPrice decimal.Decimal `json:"unit_price" example:"1000"`
	Quantity  int             `json:"quantity"   example:"2"`
	Size      string          `json:"size"       example:"M"`
	Image     string          `json:"image"`
}

// DeliveryInfo is the contact snapshot captured with the order.
// swagger:model DeliveryInfo
type DeliveryInfo struct {
	FirstName  string `json:"first_name" example:"Ada"`
	LastName   string `json:"last_name"  example:"Okafor"`
	Email      string `json:"email"      example:"ada@example.com"`
	Phone      string `json:"phone"      example:"+2348012345678"`
	Street     string `json:"street"     example:"12 Marina Rd"`
	City       string `json:"city"       example:"Lagos"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"    example:"NG"`
}

// CreateOrderRequest is the order creation payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items         []CreateOrderItem `json:"items"`
	TotalAmount   decimal.Decimal   `json:"total_amount" example:"2000"`
	PaymentMethod string            `json:"payment_method" example:"cod"`
	Delivery      DeliveryInfo      `json:"delivery_info"`
}

// UpdateStatusRequest sets a new fulfillment status.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"Cargo Packed"`
}

// UpdatePaymentStatusRequest sets a new payment status.
// swagger:model UpdatePaymentStatusRequest
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" example:"Paid"`
}

// ListResponse wraps a listing of orders.
// swagger:model OrderListResponse
type ListResponse struct {
	Orders []Order `json:"orders"`
	Count  int     `json:"count"`
}

// CheckResponse reports whether the caller owns any orders.
// swagger:model OrderCheckResponse
type CheckResponse struct {
	HasOrders bool `json:"has_orders"`
	Count     int  `json:"count"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: order not found
	Error string `json:"error"`
}
