package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SyncOrderStatusCommandHandler re-derives one order's completion status
// from its live allocations. Delivery commands already sync the orders they
// touch inside their own transaction; this handler exists as a standalone
// repair path and is idempotent, so re-running it never produces a second
// audit record for the same transition.
type SyncOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewSyncOrderStatusCommandHandler creates a handler for order status sync.
func NewSyncOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) SyncOrderStatusCommandHandler {
	return SyncOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the status sync command.
func (h *SyncOrderStatusCommandHandler) Handle(ctx context.Context, cmd SyncOrderStatusCommand) error {
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

	if err = syncOrderStatuses(ctx, uow.OrderRepository(), uow.AllocationRepository(), h.clock, []*order.Order{ord}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
