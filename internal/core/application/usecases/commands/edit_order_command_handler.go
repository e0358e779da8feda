package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// EditOrderCommandHandler rewrites an order's date, note and line set as one
// atomic transaction, respecting what has already been delivered:
//
//   - a line nothing was delivered against is updated in place, keeping its
//     identity;
//   - a changed line with deliveries is soft-deleted and recreated under a
//     fresh identity, and its live allocations follow the new row, so the
//     old version stays reconstructible while the delivered history keeps
//     counting against the line;
//   - no line may shrink below its delivered quantity, and a line with
//     deliveries cannot be removed at all.
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewEditOrderCommandHandler creates a handler for order edits.
func NewEditOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the order edit command.
func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
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

	// Lock the order's line rows so a concurrent delivery cannot allocate
	// against a line version this edit is about to retire.
	if len(ord.LineIDs()) > 0 {
		if _, err = uow.OrderRepository().GetByLineIDs(ctx, ord.LineIDs(), true); err != nil {
			return err
		}
	}

	allocations, err := uow.AllocationRepository().GetByOrderLineIDs(ctx, ord.LineIDs())
	if err != nil {
		return err
	}

	lines, err := h.buildLines(ctx, uow, ord, allocations, cmd.Lines())
	if err != nil {
		return err
	}

	if err = ord.UpdateDetails(cmd.OrderDate(), cmd.Note()); err != nil {
		return err
	}
	if err = ord.ReplaceLines(lines); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	// Quantity changes can flip the order over or under the completion
	// threshold, so re-derive the cached status before committing.
	if err = syncOrderStatuses(ctx, uow.OrderRepository(), uow.AllocationRepository(), h.clock, []*order.Order{ord}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// buildLines maps the requested line set onto order line aggregates,
// applying the delivered-quantity rules and re-pointing allocations when a
// delivered line is replaced.
func (h *EditOrderCommandHandler) buildLines(
	ctx context.Context,
	uow OrderUoW,
	ord *order.Order,
	allocations []*allocation.Allocation,
	requests []OrderLineRequest,
) ([]*order.Line, error) {
	calc := services.NewFulfillmentCalculator()

	lines := make([]*order.Line, 0, len(requests))
	referenced := make(map[kernel.UUID]struct{}, len(requests))

	for _, request := range requests {
		lineID, hasLineID := request.LineID()
		if !hasLineID {
			line, err := order.NewLine(kernel.NewUUID(), request.ProductName(), request.UnitPrice(), request.Quantity())
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
			continue
		}

		if _, ok := referenced[lineID]; ok {
			return nil, order.ErrDuplicateLine
		}
		referenced[lineID] = struct{}{}

		existing, ok := ord.Line(lineID)
		if !ok {
			return nil, errs.NewObjectNotFoundError("orderLine", lineID.String())
		}

		delivered := calc.Delivered(lineID, allocations)
		if request.Quantity() < delivered {
			return nil, errs.NewValueIsOutOfRangeError("quantity", request.Quantity(), delivered, maxOrderLineQuantity)
		}

		if !lineChanged(existing, request) {
			lines = append(lines, existing)
			continue
		}

		id := lineID
		if delivered > 0 {
			// Replace, never mutate, a line that deliveries already count
			// against; the live allocations follow the fresh row.
			id = kernel.NewUUID()
			if err := h.reassignAllocations(ctx, uow, allocations, lineID, id); err != nil {
				return nil, err
			}
		}
		line, err := order.NewLine(id, request.ProductName(), request.UnitPrice(), request.Quantity())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	// Lines absent from the request set are removed, which only works while
	// nothing has been delivered against them.
	for _, existing := range ord.Lines() {
		if _, ok := referenced[existing.ID()]; ok {
			continue
		}
		if calc.Delivered(existing.ID(), allocations) > 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("orderLines",
				fmt.Errorf("line %s has deliveries allocated against it", existing.ID()))
		}
	}

	return lines, nil
}

func (h *EditOrderCommandHandler) reassignAllocations(
	ctx context.Context,
	uow OrderUoW,
	allocations []*allocation.Allocation,
	from kernel.UUID,
	to kernel.UUID,
) error {
	for _, alloc := range allocations {
		if !alloc.OrderLineID().IsEqual(from) {
			continue
		}
		if err := alloc.ReassignOrderLine(to); err != nil {
			return err
		}
		if err := uow.AllocationRepository().Update(ctx, alloc); err != nil {
			return err
		}
	}
	return nil
}

func lineChanged(existing *order.Line, request OrderLineRequest) bool {
	return existing.ProductName() != request.ProductName() ||
		!existing.UnitPrice().Equal(request.UnitPrice()) ||
		existing.Quantity() != request.Quantity()
}
