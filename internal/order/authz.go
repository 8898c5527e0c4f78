package order

import (
	"errors"
	"fmt"

	"github.com/forevershop/orders-ecom/internal/auth"
)

var ErrForbidden = errors.New("forbidden")

// Op identifies a boundary operation for authorization purposes.
type Op string

const (
	OpCreate        Op = "create"
	OpGet           Op = "get"
	OpListMine      Op = "list_mine"
	OpListAll       Op = "list_all"
	OpUpdateStatus  Op = "update_status"
	OpUpdatePayment Op = "update_payment_status"
	OpCancel        Op = "cancel"
)

// Authorize maps (identity, operation, target order) to allow/deny.
// The target may be nil for operations that do not act on a single
// order. An absent role claim simply means "not an administrator".
func Authorize(ident auth.Identity, op Op, target *Order) error {
	if ident.Subject == "" {
		return fmt.Errorf("%w: an authenticated identity is required", ErrForbidden)
	}

	switch op {
	case OpCreate, OpListMine:
		// Any authenticated caller; listings are scoped to the caller.
		return nil
	case OpGet:
		if ident.IsAdmin() || isOwner(ident, target) {
			return nil
		}
		return fmt.Errorf("%w: only the order owner or an administrator may view this order", ErrForbidden)
	case OpListAll, OpUpdateStatus, OpUpdatePayment:
		if ident.IsAdmin() {
			return nil
		}
		return fmt.Errorf("%w: administrator role required", ErrForbidden)
	case OpCancel:
		// Administrators cancel through update-status instead.
		if isOwner(ident, target) {
			return nil
		}
		return fmt.Errorf("%w: only the order owner may cancel", ErrForbidden)
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrForbidden, op)
	}
}

func isOwner(ident auth.Identity, target *Order) bool {
	return target != nil && target.OwnerID == ident.Subject
}
