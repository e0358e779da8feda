package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// lineOwnership indexes the live lines of a set of orders and which order
// owns each line. Built once per delivery transaction after the line rows
// have been locked.
type lineOwnership struct {
	lines  map[kernel.UUID]*order.Line
	owners map[kernel.UUID]*order.Order
}

func indexLines(orders []*order.Order) lineOwnership {
	ownership := lineOwnership{
		lines:  make(map[kernel.UUID]*order.Line),
		owners: make(map[kernel.UUID]*order.Order),
	}
	for _, o := range orders {
		for _, line := range o.Lines() {
			ownership.lines[line.ID()] = line
			ownership.owners[line.ID()] = o
		}
	}
	return ownership
}

// validateAdmission is the admission-control gate of the delivery
// transaction: every requested order line must exist, belong to the
// delivery's customer, and have enough remaining quantity for the request.
// The allocations passed in are the live ones that count against remaining;
// for an edit, the delivery's own prior allocations are already filtered out.
func validateAdmission(
	calc *services.FulfillmentCalculator,
	ownership lineOwnership,
	allocations []*allocation.Allocation,
	requests []AllocationRequest,
	customerID kernel.UUID,
) error {
	for _, request := range requests {
		line, ok := ownership.lines[request.OrderLineID()]
		if !ok {
			return errs.NewObjectNotFoundError("orderLine", request.OrderLineID().String())
		}
		if owner := ownership.owners[request.OrderLineID()]; !owner.CustomerID().IsEqual(customerID) {
			return errs.NewObjectOutOfScopeError("orderLine", request.OrderLineID().String())
		}
		remaining := calc.Remaining(line, allocations)
		if request.Quantity() > remaining {
			return errs.NewValueIsOutOfRangeError("allocatedQuantity", request.Quantity(), 0, remaining)
		}
	}
	return nil
}

// lineInputs maps allocation requests onto the delivery aggregate's
// ungrouped line inputs.
func lineInputs(requests []AllocationRequest) []delivery.LineInput {
	inputs := make([]delivery.LineInput, 0, len(requests))
	for _, request := range requests {
		inputs = append(inputs, delivery.LineInput{
			ProductName: request.ProductName(),
			UnitPrice:   request.UnitPrice(),
			Quantity:    request.Quantity(),
		})
	}
	return inputs
}

// syncOrderStatuses re-derives and persists the cached status of every given
// order, appending an audit record per actual transition. Idempotent: an
// order whose derived status matches the stored one is left untouched.
// Must run inside the same transaction as the allocation writes it reacts to.
func syncOrderStatuses(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	allocationRepo ports.AllocationRepository,
	clk ports.Clock,
	orders []*order.Order,
) error {
	calc := services.NewFulfillmentCalculator()
	synced := make(map[kernel.UUID]struct{}, len(orders))

	for _, o := range orders {
		if _, ok := synced[o.ID()]; ok {
			continue
		}
		synced[o.ID()] = struct{}{}

		allocations, err := allocationRepo.GetByOrderLineIDs(ctx, o.LineIDs())
		if err != nil {
			return err
		}

		previous := o.Status()
		changed, err := o.ChangeStatus(calc.OrderStatus(o, allocations))
		if err != nil {
			return err
		}
		if !changed {
			continue
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}

		change, err := order.NewStatusChange(kernel.NewUUID(), o.ID(), previous, o.Status(), clk.Now())
		if err != nil {
			return err
		}
		if err = orderRepo.AddStatusChange(ctx, change); err != nil {
			return err
		}
	}

	return nil
}
