package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler records a new order with its lines.
// New orders start incomplete; no allocations can exist yet, so there is
// nothing to sync.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the new order's
// identifier.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !customer.InStore(cmd.StoreID()) {
		return kernel.UUID{}, errs.NewObjectOutOfScopeError("customer", customer.ID().String())
	}

	lines := make([]*order.Line, 0, len(cmd.Lines()))
	for _, request := range cmd.Lines() {
		line, lineErr := order.NewLine(kernel.NewUUID(), request.ProductName(), request.UnitPrice(), request.Quantity())
		if lineErr != nil {
			return kernel.UUID{}, lineErr
		}
		lines = append(lines, line)
	}

	orderID := kernel.NewUUID()
	ord, err := order.NewOrder(orderID, cmd.CustomerID(), cmd.OrderDate(), cmd.Note(), lines)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, ord); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return orderID, nil
}
