// Package allocation contains the allocation aggregate: the many-to-many
// bookkeeping between order lines and delivery lines. Each record states how
// many units of one order line were satisfied by one delivery line.
//
// Allocations have stable identity and a soft-delete lifecycle. They are
// never physically removed, so historical fulfillment can be reconstructed
// after deliveries are deleted.
package allocation

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrAllocationIsNotConstructed is returned when an Allocation instance was
// not created through the NewAllocation factory method.
var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// Allocation records that quantity units of the order line were fulfilled by
// the delivery line. At most one live allocation exists per
// (orderLineID, deliveryLineID) pair.
type Allocation struct {
	id             kernel.UUID
	orderLineID    kernel.UUID
	deliveryLineID kernel.UUID
	quantity       int

	isConstructed bool
}

// NewAllocation creates a validated allocation linking an order line to a
// delivery line. Quantity must be positive; whether it fits into the order
// line's remaining quantity is decided by the fulfillment calculator inside
// the delivery transaction, not here.
func NewAllocation(
	id kernel.UUID,
	orderLineID kernel.UUID,
	deliveryLineID kernel.UUID,
	quantity int,
) (*Allocation, error) {
	alloc := &Allocation{isConstructed: true}

	if err := errors.Join(
		alloc.setID(id),
		alloc.setOrderLineID(orderLineID),
		alloc.setDeliveryLineID(deliveryLineID),
		alloc.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return alloc, nil
}

// RestoreAllocation reconstructs an allocation from persistence.
func RestoreAllocation(
	id kernel.UUID,
	orderLineID kernel.UUID,
	deliveryLineID kernel.UUID,
	quantity int,
) (*Allocation, error) {
	return NewAllocation(id, orderLineID, deliveryLineID, quantity)
}

// Validate ensures the Allocation was created through a constructor.
func (a *Allocation) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAllocationIsNotConstructed
	}
	return nil
}

// ID returns the allocation's unique identifier.
func (a *Allocation) ID() kernel.UUID {
	return a.id
}

// OrderLineID returns the fulfilled order line.
func (a *Allocation) OrderLineID() kernel.UUID {
	return a.orderLineID
}

// DeliveryLineID returns the fulfilling delivery line.
func (a *Allocation) DeliveryLineID() kernel.UUID {
	return a.deliveryLineID
}

// Quantity returns how many units this allocation fulfills.
func (a *Allocation) Quantity() int {
	return a.quantity
}

// ChangeQuantity updates the allocated quantity in place.
// Used when an edited delivery re-targets its own allocations.
func (a *Allocation) ChangeQuantity(quantity int) error {
	return a.setQuantity(quantity)
}

// ReassignOrderLine points the allocation at a different order line. Used
// when an order edit replaces an allocated line with a fresh row and the
// delivered history must follow it.
func (a *Allocation) ReassignOrderLine(orderLineID kernel.UUID) error {
	return a.setOrderLineID(orderLineID)
}

func (a *Allocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Allocation) setOrderLineID(orderLineID kernel.UUID) error {
	if err := orderLineID.Validate(); err != nil {
		return err
	}
	a.orderLineID = orderLineID
	return nil
}

func (a *Allocation) setDeliveryLineID(deliveryLineID kernel.UUID) error {
	if err := deliveryLineID.Validate(); err != nil {
		return err
	}
	a.deliveryLineID = deliveryLineID
	return nil
}

func (a *Allocation) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	a.quantity = quantity
	return nil
}
