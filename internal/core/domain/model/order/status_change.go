package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrStatusChangeIsNotConstructed is returned when a StatusChange was not
	// created through NewStatusChange.
	ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created via NewStatusChange constructor")

	// ErrStatusChangeIsNoOp is returned when old and new status are identical.
	ErrStatusChangeIsNoOp = errors.New("status change must alter the status")

	// ErrChangedAtIsRequired is returned when the change timestamp is zero.
	ErrChangedAtIsRequired = errors.New("changedAt is required")
)

// StatusChange is the audit record appended whenever the status sync actually
// flips an order's cached status. Records are append-only.
type StatusChange struct {
	id        kernel.UUID
	orderID   kernel.UUID
	from      Status
	to        Status
	changedAt time.Time

	isConstructed bool
}

// NewStatusChange creates an audit record for an order status transition.
// The from and to statuses must both be valid and must differ.
func NewStatusChange(
	id kernel.UUID,
	orderID kernel.UUID,
	from Status,
	to Status,
	changedAt time.Time,
) (*StatusChange, error) {
	change := &StatusChange{isConstructed: true}

	if err := errors.Join(
		change.setID(id),
		change.setOrderID(orderID),
		from.Validate(),
		to.Validate(),
	); err != nil {
		return nil, err
	}
	if from == to {
		return nil, ErrStatusChangeIsNoOp
	}
	if changedAt.IsZero() {
		return nil, ErrChangedAtIsRequired
	}

	change.from = from
	change.to = to
	change.changedAt = changedAt
	return change, nil
}

// Validate ensures the StatusChange was created through its constructor.
func (c *StatusChange) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrStatusChangeIsNotConstructed
	}
	return nil
}

// ID returns the audit record's unique identifier.
func (c *StatusChange) ID() kernel.UUID {
	return c.id
}

// OrderID returns the order whose status changed.
func (c *StatusChange) OrderID() kernel.UUID {
	return c.orderID
}

// From returns the previous cached status.
func (c *StatusChange) From() Status {
	return c.from
}

// To returns the new cached status.
func (c *StatusChange) To() Status {
	return c.to
}

// ChangedAt returns when the transition was recorded.
func (c *StatusChange) ChangedAt() time.Time {
	return c.changedAt
}

func (c *StatusChange) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *StatusChange) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
