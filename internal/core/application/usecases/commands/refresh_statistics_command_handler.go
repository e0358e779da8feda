package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RefreshStatisticsCommandHandler recomputes one customer's statistics from
// their live ledgers and upserts the cached row stamped with the current
// time. Both the stale-read path and the forced store-wide recalculation end
// up here.
type RefreshStatisticsCommandHandler struct {
	uowFactory StatisticsUoWFactory
	clock      ports.Clock
}

// NewRefreshStatisticsCommandHandler creates a handler for statistics refresh.
func NewRefreshStatisticsCommandHandler(uowFactory StatisticsUoWFactory, clock ports.Clock) RefreshStatisticsCommandHandler {
	return RefreshStatisticsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the statistics refresh command.
func (h *RefreshStatisticsCommandHandler) Handle(ctx context.Context, cmd RefreshStatisticsCommand) error {
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

	customer, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}
	if !customer.InStore(cmd.StoreID()) {
		return errs.NewObjectOutOfScopeError("customer", customer.ID().String())
	}

	if err = refreshCustomerStatistics(ctx, uow, h.clock, cmd.CustomerID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// refreshCustomerStatistics recomputes and upserts one customer's statistics
// row inside an already-begun unit of work.
func refreshCustomerStatistics(ctx context.Context, uow StatisticsUoW, clk ports.Clock, customerID kernel.UUID) error {
	orders, err := uow.OrderRepository().GetByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	deliveries, err := uow.DeliveryRepository().GetByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	calc := services.NewStatisticsCalculator()
	stats, err := calc.Calculate(customerID, orders, deliveries, clk.Now())
	if err != nil {
		return err
	}

	return uow.StatisticsRepository().Upsert(ctx, stats)
}
