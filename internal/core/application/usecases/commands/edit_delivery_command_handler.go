package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// EditDeliveryCommandHandler rewrites a delivery's date, note and allocation
// set as one atomic transaction.
//
// The delivery's own existing allocations are treated as withdrawn for the
// admission check: new requests are validated against remaining quantity as
// if this delivery's prior contribution did not exist, so a delivery can
// shrink, grow, or re-target its own allocations without double-counting or
// falsely rejecting itself. Allocations are then reconciled in place:
// updated where the (order line, product) pairing survives, soft-deleted
// where withdrawn, created where new.
type EditDeliveryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	clock      ports.Clock
}

// NewEditDeliveryCommandHandler creates a handler for delivery edits.
func NewEditDeliveryCommandHandler(uowFactory FulfillmentUoWFactory, clock ports.Clock) EditDeliveryCommandHandler {
	return EditDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the delivery edit command.
func (h *EditDeliveryCommandHandler) Handle(ctx context.Context, cmd EditDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dlv, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	customer, err := uow.CustomerRepository().Get(ctx, dlv.CustomerID())
	if err != nil {
		return err
	}
	if !customer.InStore(cmd.StoreID()) {
		return errs.NewObjectOutOfScopeError("delivery", dlv.ID().String())
	}

	deliveryLineIDs := make([]kernel.UUID, 0, len(dlv.Lines()))
	for _, line := range dlv.Lines() {
		deliveryLineIDs = append(deliveryLineIDs, line.ID())
	}
	ownAllocations, err := uow.AllocationRepository().GetByDeliveryLineIDs(ctx, deliveryLineIDs)
	if err != nil {
		return err
	}

	// Lock every order line the edit touches: the newly requested ones and
	// the ones the delivery currently fulfills.
	touchedLineIDs := make([]kernel.UUID, 0, len(cmd.Allocations())+len(ownAllocations))
	for _, request := range cmd.Allocations() {
		touchedLineIDs = append(touchedLineIDs, request.OrderLineID())
	}
	for _, alloc := range ownAllocations {
		touchedLineIDs = append(touchedLineIDs, alloc.OrderLineID())
	}
	orders, err := uow.OrderRepository().GetByLineIDs(ctx, touchedLineIDs, true)
	if err != nil {
		return err
	}
	ownership := indexLines(orders)

	allAllocations, err := uow.AllocationRepository().GetByOrderLineIDs(ctx, touchedLineIDs)
	if err != nil {
		return err
	}

	// Remaining quantity as if this delivery's prior contribution did not exist.
	ownIDs := make(map[kernel.UUID]struct{}, len(ownAllocations))
	for _, alloc := range ownAllocations {
		ownIDs[alloc.ID()] = struct{}{}
	}
	foreign := allAllocations[:0:0]
	for _, alloc := range allAllocations {
		if _, ok := ownIDs[alloc.ID()]; !ok {
			foreign = append(foreign, alloc)
		}
	}

	calc := services.NewFulfillmentCalculator()
	if err = validateAdmission(calc, ownership, foreign, cmd.Allocations(), dlv.CustomerID()); err != nil {
		return err
	}

	if err = dlv.Reschedule(cmd.DeliveryDate(), cmd.Note()); err != nil {
		return err
	}
	if err = dlv.ReplaceLines(lineInputs(cmd.Allocations())); err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Update(ctx, dlv); err != nil {
		return err
	}

	if err = h.reconcileAllocations(ctx, uow, dlv.LineByProduct, ownAllocations, cmd.Allocations()); err != nil {
		return err
	}

	if err = syncOrderStatuses(ctx, uow.OrderRepository(), uow.AllocationRepository(), h.clock, orders); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// reconcileAllocations aligns the stored allocation rows with the edited
// request set. An order line keeps its allocation row (quantity updated in
// place) when it still maps onto the same delivery line; it gets a fresh row
// when it maps onto a different product; rows for withdrawn order lines are
// soft-deleted.
func (h *EditDeliveryCommandHandler) reconcileAllocations(
	ctx context.Context,
	uow FulfillmentUoW,
	lineByProduct func(string) (*delivery.Line, bool),
	ownAllocations []*allocation.Allocation,
	requests []AllocationRequest,
) error {
	ownByOrderLine := make(map[kernel.UUID]*allocation.Allocation, len(ownAllocations))
	for _, alloc := range ownAllocations {
		ownByOrderLine[alloc.OrderLineID()] = alloc
	}

	matched := make(map[kernel.UUID]struct{}, len(requests))
	for _, request := range requests {
		line, ok := lineByProduct(request.ProductName())
		if !ok {
			return errs.NewObjectNotFoundError("deliveryLine", request.ProductName())
		}

		existing, ok := ownByOrderLine[request.OrderLineID()]
		if ok && existing.DeliveryLineID().IsEqual(line.ID()) {
			matched[existing.ID()] = struct{}{}
			if err := existing.ChangeQuantity(request.Quantity()); err != nil {
				return err
			}
			if err := uow.AllocationRepository().Update(ctx, existing); err != nil {
				return err
			}
			continue
		}

		alloc, err := allocation.NewAllocation(kernel.NewUUID(), request.OrderLineID(), line.ID(), request.Quantity())
		if err != nil {
			return err
		}
		if err = uow.AllocationRepository().Add(ctx, alloc); err != nil {
			return err
		}
	}

	for _, alloc := range ownAllocations {
		if _, ok := matched[alloc.ID()]; ok {
			continue
		}
		if err := uow.AllocationRepository().Delete(ctx, alloc.ID()); err != nil {
			return err
		}
	}

	return nil
}
