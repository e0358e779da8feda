package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeleteOrderCommandHandler soft-deletes an order and its lines. An order
// that deliveries have already been allocated against cannot be deleted;
// the deliveries must be edited or deleted first.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	customer, err := uow.CustomerRepository().Get(ctx, ord.CustomerID())
	if err != nil {
		return err
	}
	if !customer.InStore(cmd.StoreID()) {
		return errs.NewObjectOutOfScopeError("order", ord.ID().String())
	}

	if len(ord.LineIDs()) > 0 {
		if _, err = uow.OrderRepository().GetByLineIDs(ctx, ord.LineIDs(), true); err != nil {
			return err
		}
		allocations, allocErr := uow.AllocationRepository().GetByOrderLineIDs(ctx, ord.LineIDs())
		if allocErr != nil {
			return allocErr
		}
		if len(allocations) > 0 {
			return errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("order %s has deliveries allocated against it", ord.ID()))
		}
	}

	if err = uow.OrderRepository().Delete(ctx, ord.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
