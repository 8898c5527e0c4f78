package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/forevershop/orders-ecom/internal/auth"
	"github.com/forevershop/orders-ecom/internal/catalog"
	"github.com/forevershop/orders-ecom/internal/events"
	"github.com/forevershop/orders-ecom/internal/metrics"
)

// ErrDependency marks a failure of an external collaborator (catalog).
// Callers may retry once the dependency recovers.
var ErrDependency = errors.New("upstream dependency unavailable")

// CatalogClient looks up product snapshots at creation time.
type CatalogClient interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// EventPublisher emits lifecycle events. Failures are logged, never
// surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Service implements the boundary operations: every mutation follows
// lookup, authorization gate, state machine, then one atomic store write.
type Service struct {
	repo    Repository
	catalog CatalogClient  // optional
	events  EventPublisher // optional
}

func NewService(repo Repository, cat CatalogClient, pub EventPublisher) *Service {
	return &Service{repo: repo, catalog: cat, events: pub}
}

// Create validates a draft, snapshots items (filling gaps from the
// catalog) and persists the initial order state.
func (s *Service) Create(ctx context.Context, ident auth.Identity, req CreateOrderRequest) (*Order, error) {
	if err := Authorize(ident, OpCreate, nil); err != nil {
		return nil, err
	}

	if err := s.enrichItems(ctx, req.Items); err != nil {
		return nil, err
	}

	o, err := ValidateCreation(ident.Subject, req)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	now := time.Now().UTC()
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now
	for i := range o.Items {
		o.Items[i].ID = uuid.NewString()
		o.Items[i].OrderID = o.ID
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersTotal.WithLabelValues("created").Inc()
	log.WithFields(log.Fields{
		"order_id": o.ID,
		"owner_id": o.OwnerID,
		"items":    len(o.Items),
		"total":    o.TotalAmount.String(),
	}).Info("Order created")

	s.publish(ctx, o.ID, events.OrderCreated{
		Kind:        events.KindOrderCreated,
		OrderID:     o.ID,
		OwnerID:     o.OwnerID,
		TotalAmount: o.TotalAmount.String(),
		ItemCount:   len(o.Items),
		Timestamp:   now,
	})
	return o, nil
}

// GetByID returns a single order, visible to its owner or an administrator.
func (s *Service) GetByID(ctx context.Context, ident auth.Identity, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ident, OpGet, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ListMine returns the caller's orders, newest first.
func (s *Service) ListMine(ctx context.Context, ident auth.Identity) ([]Order, error) {
	if err := Authorize(ident, OpListMine, nil); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ident.Subject)
}

// ListAll returns every order, newest first. Administrators only.
func (s *Service) ListAll(ctx context.Context, ident auth.Identity) ([]Order, error) {
	if err := Authorize(ident, OpListAll, nil); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// HasOrders reports whether the caller owns any orders, and how many.
func (s *Service) HasOrders(ctx context.Context, ident auth.Identity) (int, error) {
	if err := Authorize(ident, OpListMine, nil); err != nil {
		return 0, err
	}
	return s.repo.CountByOwner(ctx, ident.Subject)
}

// UpdateStatus sets a new fulfillment status and recomputes the
// cancellable flag. Administrators only; any recognized status is
// accepted so mis-ordered fulfillment events can be corrected manually.
func (s *Service) UpdateStatus(ctx context.Context, ident auth.Identity, id string, requested Status) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ident, OpUpdateStatus, o); err != nil {
		return nil, err
	}
	cancellable, err := NextStatus(o.Status, requested)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateFields(ctx, id, Patch{Status: &requested, Cancellable: &cancellable})
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(o.Status), string(requested)).Inc()
	log.WithFields(log.Fields{
		"order_id": id,
		"from":     o.Status,
		"to":       requested,
	}).Info("Order status updated")

	s.publish(ctx, id, events.StatusChanged{
		Kind:      events.KindStatusChanged,
		OrderID:   id,
		From:      string(o.Status),
		To:        string(requested),
		Timestamp: updated.UpdatedAt,
	})
	return updated, nil
}

// UpdatePaymentStatus records a new payment status. Administrators only;
// the payment-callback sink reports through this same operation.
func (s *Service) UpdatePaymentStatus(ctx context.Context, ident auth.Identity, id string, requested PaymentStatus) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ident, OpUpdatePayment, o); err != nil {
		return nil, err
	}
	if err := NextPaymentStatus(o.PaymentStatus, requested); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateFields(ctx, id, Patch{PaymentStatus: &requested})
	if err != nil {
		return nil, err
	}

	metrics.PaymentStatusTotal.WithLabelValues(string(requested)).Inc()
	log.WithFields(log.Fields{
		"order_id": id,
		"from":     o.PaymentStatus,
		"to":       requested,
	}).Info("Payment status updated")

	s.publish(ctx, id, events.PaymentStatusChanged{
		Kind:      events.KindPaymentStatusChanged,
		OrderID:   id,
		From:      string(o.PaymentStatus),
		To:        string(requested),
		Timestamp: updated.UpdatedAt,
	})
	return updated, nil
}

// Cancel moves an owner's order to its terminal cancelled state. The
// record is retained for audit history.
func (s *Service) Cancel(ctx context.Context, ident auth.Identity, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ident, OpCancel, o); err != nil {
		return nil, err
	}
	if !CanCancel(o) {
		return nil, fmt.Errorf("%w: order with status %q can no longer be cancelled", ErrInvalidTransition, o.Status)
	}

	prior := o.Status
	ApplyCancellation(o)
	updated, err := s.repo.UpdateFields(ctx, id, Patch{Status: &o.Status, Cancellable: &o.Cancellable})
	if err != nil {
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues("cancelled").Inc()
	metrics.StatusTransitions.WithLabelValues(string(prior), string(StatusCancelled)).Inc()
	log.WithFields(log.Fields{
		"order_id": id,
		"owner_id": o.OwnerID,
	}).Info("Order cancelled by owner")

	s.publish(ctx, id, events.StatusChanged{
		Kind:      events.KindOrderCancelled,
		OrderID:   id,
		From:      string(prior),
		To:        string(StatusCancelled),
		Timestamp: updated.UpdatedAt,
	})
	return updated, nil
}

// enrichItems fills missing snapshot fields from the catalog when only a
// product id was supplied. Items that already carry a full snapshot are
// left untouched.
func (s *Service) enrichItems(ctx context.Context, items []CreateOrderItem) error {
	if s.catalog == nil {
		return nil
	}
	for i := range items {
		it := &items[i]
		if it.ProductID == "" || (it.Name != "" && it.UnitPrice.IsPositive()) {
			continue
		}
		p, err := s.catalog.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("%w: unknown product %s", ErrValidation, it.ProductID)
			}
			return fmt.Errorf("%w: %v", ErrDependency, err)
		}
		if it.Name == "" {
			it.Name = p.Name
		}
		if !it.UnitPrice.IsPositive() {
			it.UnitPrice = p.Price
		}
		if it.Image == "" {
			it.Image = p.Image
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, key string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, event); err != nil {
		log.WithFields(log.Fields{
			"order_id": key,
			"error":    err,
		}).Warn("Failed to publish order event")
	}
}
