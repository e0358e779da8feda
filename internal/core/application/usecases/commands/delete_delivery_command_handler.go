package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DeleteDeliveryCommandHandler soft-deletes a delivery, its lines and its
// allocations in one transaction, then re-derives the status of every order
// whose lines the delivery fulfilled. The freed quantity immediately counts
// as remaining again; the rows stay in storage for historical reconstruction.
type DeleteDeliveryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	clock      ports.Clock
}

// NewDeleteDeliveryCommandHandler creates a handler for delivery deletion.
func NewDeleteDeliveryCommandHandler(uowFactory FulfillmentUoWFactory, clock ports.Clock) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the delivery deletion command.
func (h *DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
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

	orderLineIDs := make([]kernel.UUID, 0, len(ownAllocations))
	for _, alloc := range ownAllocations {
		orderLineIDs = append(orderLineIDs, alloc.OrderLineID())
	}
	orders, err := uow.OrderRepository().GetByLineIDs(ctx, orderLineIDs, true)
	if err != nil {
		return err
	}

	for _, alloc := range ownAllocations {
		if err = uow.AllocationRepository().Delete(ctx, alloc.ID()); err != nil {
			return err
		}
	}
	if err = uow.DeliveryRepository().Delete(ctx, dlv.ID()); err != nil {
		return err
	}

	if err = syncOrderStatuses(ctx, uow.OrderRepository(), uow.AllocationRepository(), h.clock, orders); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
