package cmd

import (
	"log/slog"
	"os"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      systemClock{},
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateEditDeliveryCommandHandler() commands.EditDeliveryCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditDeliveryCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteDeliveryCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateSyncOrderStatusCommandHandler() commands.SyncOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncOrderStatusCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRefreshStatisticsCommandHandler() commands.RefreshStatisticsCommandHandler {
	var f commands.StatisticsUoWFactory = FuncStatisticsUoWFactory(func() commands.StatisticsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshStatisticsCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRecalculateStatisticsCommandHandler() commands.RecalculateStatisticsCommandHandler {
	var f commands.StatisticsUoWFactory = FuncStatisticsUoWFactory(func() commands.StatisticsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecalculateStatisticsCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateGetRemainingQuantityQueryHandler() queries.GetRemainingQuantityQueryHandler {
	return queries.NewGetRemainingQuantityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	refresher := c.CreateRefreshStatisticsCommandHandler()
	return queries.NewGetStatisticsQueryHandler(c.gormDB, &refresher, c.clock)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerDeliveriesQueryHandler() queries.GetCustomerDeliveriesQueryHandler {
	return queries.NewGetCustomerDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveStoresQueryHandler() queries.GetActiveStoresQueryHandler {
	return queries.NewGetActiveStoresQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetActiveStoresQueryHandler(),
		c.CreateRecalculateStatisticsCommandHandler(),
		c.config.StatisticsSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncStatisticsUoWFactory func() commands.StatisticsUoW

func (f FuncStatisticsUoWFactory) Create() commands.StatisticsUoW {
	return f()
}

// systemClock is the production ports.Clock backed by the wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
