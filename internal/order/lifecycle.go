package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation        = errors.New("invalid order")
	ErrInvalidTransition = errors.New("invalid transition")
)

var statuses = []Status{
	StatusOrderReceived,
	StatusCargoPacked,
	StatusCargoOnRoute,
	StatusDelivered,
	StatusCancelled,
}

var paymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s Status) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidPaymentStatus reports whether s is a member of the payment enum.
func ValidPaymentStatus(s PaymentStatus) bool {
	for _, v := range paymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// cancellableFor derives the cancellable flag from a status. An order can
// be cancelled by its owner until it leaves the warehouse.
func cancellableFor(s Status) bool {
	return s == StatusOrderReceived || s == StatusCargoPacked
}

// ValidateCreation checks a creation request and, on success, returns the
// initial order state. ID, item IDs and timestamps are assigned by the
// caller; this function does no I/O.
func ValidateCreation(ownerID string, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be greater than zero", ErrValidation)
	}

	computed := decimal.Zero
	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Name == "" || it.UnitPrice.LessThanOrEqual(decimal.Zero) || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: all items must have name, price, and quantity", ErrValidation)
		}
		computed = computed.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Size:      it.Size,
			ImageURL:  it.Image,
		})
	}
	if !computed.Equal(req.TotalAmount) {
		return nil, fmt.Errorf("%w: total amount %s does not match item total %s",
			ErrValidation, req.TotalAmount, computed)
	}

	name := strings.TrimSpace(req.Delivery.FirstName + " " + req.Delivery.LastName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if req.Delivery.Phone == "" {
		return nil, fmt.Errorf("%w: contact phone is required", ErrValidation)
	}
	if req.Delivery.Street == "" || req.Delivery.City == "" || req.Delivery.Country == "" {
		return nil, fmt.Errorf("%w: delivery address requires street, city and country", ErrValidation)
	}

	method := PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = PaymentMethodCOD
	}
	if method != PaymentMethodCOD && method != PaymentMethodMobileMoney {
		return nil, fmt.Errorf("%w: unsupported payment method %q", ErrValidation, req.PaymentMethod)
	}

	return &Order{
		OwnerID: ownerID,
		Customer: Customer{
			Name:  name,
			Email: req.Delivery.Email,
			Phone: req.Delivery.Phone,
			Address: Address{
				Street:     req.Delivery.Street,
				City:       req.Delivery.City,
				State:      req.Delivery.State,
				PostalCode: req.Delivery.PostalCode,
				Country:    req.Delivery.Country,
			},
		},
		Items:         items,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: method,
		PaymentStatus: PaymentPending,
		Status:        StatusOrderReceived,
		Cancellable:   true,
	}, nil
}

// NextStatus validates a requested status change and returns the
// cancellable flag the order must carry afterwards. Membership is the
// only check: an administrator may set any recognized status directly,
// which allows manual correction of mis-ordered fulfillment events.
func NextStatus(current, requested Status) (bool, error) {
	if !ValidStatus(requested) {
		return false, fmt.Errorf("%w: status must be one of: %s", ErrInvalidTransition, joinStatuses())
	}
	return cancellableFor(requested), nil
}

// NextPaymentStatus validates a requested payment status change. There is
// no ordering constraint between payment states.
func NextPaymentStatus(current, requested PaymentStatus) error {
	if !ValidPaymentStatus(requested) {
		return fmt.Errorf("%w: payment status must be one of: %s, %s, %s",
			ErrInvalidTransition, PaymentPaid, PaymentPending, PaymentFailed)
	}
	return nil
}

// CanCancel reports whether an order may still be cancelled by its owner.
// The stored cancellable flag is a cached derivation; the live status
// check keeps a stale flag from ever authorizing cancellation of a
// terminal order.
func CanCancel(o *Order) bool {
	if o.Status == StatusDelivered || o.Status == StatusCancelled {
		return false
	}
	return o.Cancellable
}

// ApplyCancellation moves an order to its terminal cancelled state. The
// record is retained for audit history, not deleted.
func ApplyCancellation(o *Order) {
	o.Status = StatusCancelled
	o.Cancellable = false
}

func joinStatuses() string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
