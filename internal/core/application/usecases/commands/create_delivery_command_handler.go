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

// CreateDeliveryCommandHandler records a new delivery and its allocations as
// one atomic transaction.
//
// The transaction encloses both the remaining-quantity read and the
// allocation write: the targeted order line rows are locked before remaining
// quantities are computed, so two concurrent deliveries cannot both observe
// sufficient remaining quantity and jointly over-allocate a line. Any
// precondition failure aborts the whole transaction; no partial delivery,
// delivery line, or allocation row survives.
type CreateDeliveryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	clock      ports.Clock
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory FulfillmentUoWFactory, clock ports.Clock) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the delivery creation command and returns the new
// delivery's identifier.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (kernel.UUID, error) {
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

	lineIDs := make([]kernel.UUID, 0, len(cmd.Allocations()))
	for _, request := range cmd.Allocations() {
		lineIDs = append(lineIDs, request.OrderLineID())
	}

	// Lock the targeted order lines for the duration of the transaction.
	orders, err := uow.OrderRepository().GetByLineIDs(ctx, lineIDs, true)
	if err != nil {
		return kernel.UUID{}, err
	}
	ownership := indexLines(orders)

	existing, err := uow.AllocationRepository().GetByOrderLineIDs(ctx, lineIDs)
	if err != nil {
		return kernel.UUID{}, err
	}

	calc := services.NewFulfillmentCalculator()
	if err = validateAdmission(calc, ownership, existing, cmd.Allocations(), cmd.CustomerID()); err != nil {
		return kernel.UUID{}, err
	}

	deliveryID := kernel.NewUUID()
	dlv, err := delivery.NewDelivery(deliveryID, cmd.CustomerID(), cmd.DeliveryDate(), cmd.Note(), lineInputs(cmd.Allocations()))
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.DeliveryRepository().Add(ctx, dlv); err != nil {
		return kernel.UUID{}, err
	}

	for _, request := range cmd.Allocations() {
		line, ok := dlv.LineByProduct(request.ProductName())
		if !ok {
			return kernel.UUID{}, errs.NewObjectNotFoundError("deliveryLine", request.ProductName())
		}
		alloc, allocErr := allocation.NewAllocation(kernel.NewUUID(), request.OrderLineID(), line.ID(), request.Quantity())
		if allocErr != nil {
			return kernel.UUID{}, allocErr
		}
		if err = uow.AllocationRepository().Add(ctx, alloc); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = syncOrderStatuses(ctx, uow.OrderRepository(), uow.AllocationRepository(), h.clock, orders); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return deliveryID, nil
}
