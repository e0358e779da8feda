package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// RecalculateStatisticsCommandHandler recomputes the statistics of every
// customer in a store, each in its own transaction so one customer's failure
// does not roll back the rest.
type RecalculateStatisticsCommandHandler struct {
	uowFactory StatisticsUoWFactory
	clock      ports.Clock
}

// NewRecalculateStatisticsCommandHandler creates a handler for store-wide recalculation.
func NewRecalculateStatisticsCommandHandler(
	uowFactory StatisticsUoWFactory,
	clock ports.Clock,
) RecalculateStatisticsCommandHandler {
	return RecalculateStatisticsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the recalculation command and returns the number of
// customers whose statistics were recomputed.
func (h *RecalculateStatisticsCommandHandler) Handle(ctx context.Context, cmd RecalculateStatisticsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	customers, err := h.listCustomers(ctx, cmd)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, customerID := range customers {
		if err = h.refreshOne(ctx, customerID); err != nil {
			return refreshed, err
		}
		refreshed++
	}

	return refreshed, nil
}

func (h *RecalculateStatisticsCommandHandler) listCustomers(
	ctx context.Context,
	cmd RecalculateStatisticsCommand,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customers, err := uow.CustomerRepository().GetByStore(ctx, cmd.StoreID())
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func (h *RecalculateStatisticsCommandHandler) refreshOne(ctx context.Context, customerID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := refreshCustomerStatistics(ctx, uow, h.clock, customerID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
