package services

import (
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// FulfillmentCalculator derives fulfillment progress from allocation records.
// It is a pure domain service with no side effects, used both for display and
// as the admission-control gate when new allocations are requested.
//
// Callers pass the live (non-deleted) allocations relevant to the lines in
// question; the calculator never loads anything itself. When validating an
// edited delivery, the caller filters out that delivery's own allocations
// first, so the delivery is checked against "remaining as if its prior
// contribution did not exist".
type FulfillmentCalculator struct{}

// NewFulfillmentCalculator creates a fulfillment calculator.
func NewFulfillmentCalculator() *FulfillmentCalculator {
	return &FulfillmentCalculator{}
}

// LineProgress is the derived fulfillment state of one order line.
type LineProgress struct {
	Line      *order.Line
	Delivered int
	Remaining int
	Status    order.LineStatus
}

// Delivered returns the total quantity of the order line fulfilled by the
// given allocations. Allocations for other lines are ignored.
func (c *FulfillmentCalculator) Delivered(lineID kernel.UUID, allocations []*allocation.Allocation) int {
	delivered := 0
	for _, alloc := range allocations {
		if alloc.OrderLineID().IsEqual(lineID) {
			delivered += alloc.Quantity()
		}
	}
	return delivered
}

// Remaining returns the ordered quantity minus the delivered quantity.
// In every reachable state this is non-negative; the admission check in the
// delivery transaction is what keeps it that way.
func (c *FulfillmentCalculator) Remaining(line *order.Line, allocations []*allocation.Allocation) int {
	return line.Quantity() - c.Delivered(line.ID(), allocations)
}

// LineStatus derives the fulfillment status of a single order line:
// 未納品 with nothing delivered, 一部納品 with a partial quantity, 完了 once
// delivered covers the ordered quantity.
func (c *FulfillmentCalculator) LineStatus(line *order.Line, allocations []*allocation.Allocation) order.LineStatus {
	delivered := c.Delivered(line.ID(), allocations)
	switch {
	case delivered <= 0:
		return order.NotDelivered
	case delivered < line.Quantity():
		return order.PartiallyDelivered
	default:
		return order.FullyDelivered
	}
}

// OrderStatus derives the completion status of an order: 完了 iff the order
// has at least one live line and every live line is fully delivered. An
// order with zero live lines is never vacuously complete.
func (c *FulfillmentCalculator) OrderStatus(o *order.Order, allocations []*allocation.Allocation) order.Status {
	lines := o.Lines()
	if len(lines) == 0 {
		return order.Incomplete
	}
	for _, line := range lines {
		if c.Delivered(line.ID(), allocations) < line.Quantity() {
			return order.Incomplete
		}
	}
	return order.Complete
}

// Progress derives the per-line fulfillment state for every live line of an
// order, in line order. Used by the listing and document views.
func (c *FulfillmentCalculator) Progress(o *order.Order, allocations []*allocation.Allocation) []LineProgress {
	lines := o.Lines()
	progress := make([]LineProgress, 0, len(lines))
	for _, line := range lines {
		delivered := c.Delivered(line.ID(), allocations)
		progress = append(progress, LineProgress{
			Line:      line,
			Delivered: delivered,
			Remaining: line.Quantity() - delivered,
			Status:    c.LineStatus(line, allocations),
		})
	}
	return progress
}
