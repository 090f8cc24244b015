package order

import (
	"time"

	"github.com/clearmart/oms/order/internal/service/errs"
)

// Status is the lifecycle state of an order. Transitions are validated
// against a fixed graph; anything not listed in transitions is rejected.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusReturned   Status = "RETURNED"
)

// transitions is the exhaustive set of legal status edges. CANCELLED and
// RETURNED are terminal. A delivered order cannot be cancelled, only
// returned.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusReturned},
	StatusCancelled:  {},
	StatusReturned:   {},
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
		StatusCancelled, StatusReturned:
		return Status(s), nil
	default:
		return "", errs.New(errs.CodeValidation, "unknown order status %q", s)
	}
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the edge s -> target is in the graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// RestoresStock reports whether entering the status reverses the order's
// stock reservations.
func (s Status) RestoresStock() bool {
	return s == StatusCancelled || s == StatusReturned
}

// TransitionOptions carries the side fields a transition may record.
type TransitionOptions struct {
	TrackingNumber string
	CancelReason   string
}

// ApplyTransition validates the requested transition and mutates the order's
// status plus the derived fields owned by that transition. The order is not
// modified on error. The caller persists the result and performs any stock
// restoration in the same unit of work.
func (o *Order) ApplyTransition(target Status, now time.Time, opts TransitionOptions) error {
	if !o.Status.CanTransitionTo(target) {
		return errs.NewIllegalTransition(o.Status.String(), target.String())
	}

	if target == StatusCancelled && opts.CancelReason == "" {
		return errs.New(errs.CodeValidation, "cancellation requires a reason")
	}

	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusShipped:
		t := now
		o.ShippedAt = &t
		if opts.TrackingNumber != "" {
			o.TrackingNumber = opts.TrackingNumber
		}
	case StatusDelivered:
		t := now
		o.DeliveredAt = &t
	case StatusCancelled:
		t := now
		o.CancelledAt = &t
		o.CancelReason = opts.CancelReason
	}

	return nil
}

// PaymentStatus tracks payment state independently of the order lifecycle.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded,
		PaymentPartiallyRefunded:
		return PaymentStatus(s), nil
	default:
		return "", errs.New(errs.CodeValidation, "unknown payment status %q", s)
	}
}

func (p PaymentStatus) String() string {
	return string(p)
}

// CanTransitionTo validates payment status changes. Only refunds are
// constrained: they require a prior PAID.
func (p PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch target {
	case PaymentRefunded, PaymentPartiallyRefunded:
		return p == PaymentPaid || p == PaymentPartiallyRefunded
	default:
		return true
	}
}
