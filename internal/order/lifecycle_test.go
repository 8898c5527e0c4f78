package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validDraft() CreateOrderRequest {
	return CreateOrderRequest{
		Items: []CreateOrderItem{
			{Name: "Shirt", UnitPrice: decimal.NewFromInt(1000), Quantity: 2},
		},
		TotalAmount: decimal.NewFromInt(2000),
		Delivery: DeliveryInfo{
			FirstName: "Ada",
			LastName:  "Okafor",
			Phone:     "+2348012345678",
			Street:    "12 Marina Rd",
			City:      "Lagos",
			Country:   "NG",
		},
	}
}

func TestValidateCreation_InitialState(t *testing.T) {
	t.Parallel()

	o, err := ValidateCreation("user-1", validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != StatusOrderReceived {
		t.Fatalf("status=%q, want %q", o.Status, StatusOrderReceived)
	}
	if o.PaymentStatus != PaymentPending {
		t.Fatalf("payment status=%q, want %q", o.PaymentStatus, PaymentPending)
	}
	if !o.Cancellable {
		t.Fatalf("new order must be cancellable")
	}
	if o.OwnerID != "user-1" {
		t.Fatalf("owner=%q, want user-1", o.OwnerID)
	}
	if o.PaymentMethod != PaymentMethodCOD {
		t.Fatalf("payment method=%q, want default cod", o.PaymentMethod)
	}
	if o.Customer.Name != "Ada Okafor" {
		t.Fatalf("customer name=%q", o.Customer.Name)
	}
	if len(o.Items) != 1 || o.Items[0].Name != "Shirt" {
		t.Fatalf("items not snapshotted: %+v", o.Items)
	}
}

func TestValidateCreation_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"empty items", func(r *CreateOrderRequest) { r.Items = nil }},
		{"zero total", func(r *CreateOrderRequest) { r.TotalAmount = decimal.Zero }},
		{"negative total", func(r *CreateOrderRequest) { r.TotalAmount = decimal.NewFromInt(-5) }},
		{"item without name", func(r *CreateOrderRequest) { r.Items[0].Name = "" }},
		{"item without price", func(r *CreateOrderRequest) { r.Items[0].UnitPrice = decimal.Zero }},
		{"item without quantity", func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"total mismatch", func(r *CreateOrderRequest) { r.TotalAmount = decimal.NewFromInt(1500) }},
		{"missing customer name", func(r *CreateOrderRequest) { r.Delivery.FirstName, r.Delivery.LastName = "", "" }},
		{"missing phone", func(r *CreateOrderRequest) { r.Delivery.Phone = "" }},
		{"missing street", func(r *CreateOrderRequest) { r.Delivery.Street = "" }},
		{"missing city", func(r *CreateOrderRequest) { r.Delivery.City = "" }},
		{"missing country", func(r *CreateOrderRequest) { r.Delivery.Country = "" }},
		{"unknown payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "credits" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := validDraft()
			tc.mutate(&req)
			if _, err := ValidateCreation("user-1", req); !errors.Is(err, ErrValidation) {
				t.Fatalf("err=%v, want ErrValidation", err)
			}
		})
	}
}

func TestNextStatus_MembershipAndCancellable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		requested       Status
		wantCancellable bool
	}{
		{StatusOrderReceived, true},
		{StatusCargoPacked, true},
		{StatusCargoOnRoute, false},
		{StatusDelivered, false},
		{StatusCancelled, false},
	}
	for _, tc := range cases {
		cancellable, err := NextStatus(StatusOrderReceived, tc.requested)
		if err != nil {
			t.Fatalf("NextStatus(%q): %v", tc.requested, err)
		}
		if cancellable != tc.wantCancellable {
			t.Fatalf("NextStatus(%q) cancellable=%v, want %v", tc.requested, cancellable, tc.wantCancellable)
		}
	}

	// direct jumps are permitted for operational correction
	if _, err := NextStatus(StatusDelivered, StatusOrderReceived); err != nil {
		t.Fatalf("direct jump rejected: %v", err)
	}

	if _, err := NextStatus(StatusOrderReceived, "wtf"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err=%v, want ErrInvalidTransition", err)
	}
}

func TestNextPaymentStatus(t *testing.T) {
	t.Parallel()

	for _, ps := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed} {
		if err := NextPaymentStatus(PaymentPending, ps); err != nil {
			t.Fatalf("NextPaymentStatus(%q): %v", ps, err)
		}
	}
	if err := NextPaymentStatus(PaymentPending, "Refunded"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err=%v, want ErrInvalidTransition", err)
	}
}

func TestCanCancel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status      Status
		cancellable bool
		want        bool
	}{
		{StatusOrderReceived, true, true},
		{StatusCargoPacked, true, true},
		{StatusCargoOnRoute, false, false},
		{StatusDelivered, false, false},
		{StatusCancelled, false, false},
		// a stale cached flag must never authorize cancelling a terminal order
		{StatusDelivered, true, false},
		{StatusCancelled, true, false},
		{StatusOrderReceived, false, false},
	}
	for _, tc := range cases {
		o := &Order{Status: tc.status, Cancellable: tc.cancellable}
		if got := CanCancel(o); got != tc.want {
			t.Fatalf("CanCancel(status=%q cancellable=%v)=%v, want %v", tc.status, tc.cancellable, got, tc.want)
		}
	}
}

func TestApplyCancellation(t *testing.T) {
	t.Parallel()

	o := &Order{Status: StatusCargoPacked, Cancellable: true}
	ApplyCancellation(o)
	if o.Status != StatusCancelled {
		t.Fatalf("status=%q, want Cancelled", o.Status)
	}
	if o.Cancellable {
		t.Fatalf("cancelled order must not be cancellable")
	}
}
