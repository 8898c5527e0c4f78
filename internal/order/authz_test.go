package order

import (
	"errors"
	"testing"

	"github.com/forevershop/orders-ecom/internal/auth"
)

func TestAuthorize_DecisionTable(t *testing.T) {
	t.Parallel()

	owner := auth.Identity{Subject: "u1"}
	stranger := auth.Identity{Subject: "u2"}
	admin := auth.Identity{Subject: "u3", Role: auth.RoleAdmin}
	anon := auth.Identity{}
	target := &Order{ID: "o1", OwnerID: "u1"}

	cases := []struct {
		name  string
		ident auth.Identity
		op    Op
		allow bool
	}{
		{"create/owner", owner, OpCreate, true},
		{"create/admin", admin, OpCreate, true},
		{"create/other authenticated", stranger, OpCreate, true},
		{"create/anonymous", anon, OpCreate, false},

		{"get/owner", owner, OpGet, true},
		{"get/admin", admin, OpGet, true},
		{"get/stranger", stranger, OpGet, false},
		{"get/anonymous", anon, OpGet, false},

		{"list-mine/owner", owner, OpListMine, true},
		{"list-mine/stranger", stranger, OpListMine, true},
		{"list-mine/anonymous", anon, OpListMine, false},

		{"list-all/admin", admin, OpListAll, true},
		{"list-all/owner", owner, OpListAll, false},
		{"list-all/stranger", stranger, OpListAll, false},
		{"list-all/anonymous", anon, OpListAll, false},

		{"update-status/admin", admin, OpUpdateStatus, true},
		{"update-status/owner", owner, OpUpdateStatus, false},
		{"update-status/stranger", stranger, OpUpdateStatus, false},

		{"update-payment/admin", admin, OpUpdatePayment, true},
		{"update-payment/owner", owner, OpUpdatePayment, false},
		{"update-payment/stranger", stranger, OpUpdatePayment, false},

		{"cancel/owner", owner, OpCancel, true},
		{"cancel/admin non-owner", admin, OpCancel, false},
		{"cancel/stranger", stranger, OpCancel, false},
		{"cancel/anonymous", anon, OpCancel, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Authorize(tc.ident, tc.op, target)
			if tc.allow && err != nil {
				t.Fatalf("denied, want allow: %v", err)
			}
			if !tc.allow {
				if !errors.Is(err, ErrForbidden) {
					t.Fatalf("err=%v, want ErrForbidden", err)
				}
			}
		})
	}
}

func TestAuthorize_MissingRoleIsNotAdmin(t *testing.T) {
	t.Parallel()

	// an unrecognized role claim is treated as "not an administrator", never an error
	ident := auth.Identity{Subject: "u9", Role: "support"}
	if err := Authorize(ident, OpListAll, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v, want ErrForbidden", err)
	}
	if err := Authorize(ident, OpCreate, nil); err != nil {
		t.Fatalf("create with odd role claim should be allowed: %v", err)
	}
}
