package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)
	ord, line := orderWithLine(t, cust.ID(), 10)

	cmd, err := commands.NewDeleteOrderCommand(storeID, ord.ID())
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockUnitOfWork)

	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	orderRepo.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}, true).Return([]*order.Order{ord}, nil).Once()
	allocationRepo.On("GetByOrderLineIDs", ctx, []kernel.UUID{line.ID()}).
		Return([]*allocation.Allocation{}, nil).Once()
	orderRepo.On("Delete", ctx, ord.ID()).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_BlockedByAllocations(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)
	ord, line := orderWithLine(t, cust.ID(), 10)

	cmd, err := commands.NewDeleteOrderCommand(storeID, ord.ID())
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockUnitOfWork)

	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	orderRepo.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}, true).Return([]*order.Order{ord}, nil).Once()
	allocationRepo.On("GetByOrderLineIDs", ctx, []kernel.UUID{line.ID()}).
		Return([]*allocation.Allocation{allocationFor(t, line.ID(), 4)}, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	orderRepo.AssertNotCalled(t, "Delete", ctx, ord.ID())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDeleteOrderCommandHandler_Handle_OrderOutOfScope(t *testing.T) {
	ctx := t.Context()
	cust := storeCustomer(t, kernel.NewUUID())
	ord, _ := orderWithLine(t, cust.ID(), 10)

	cmd, err := commands.NewDeleteOrderCommand(kernel.NewUUID(), ord.ID())
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectOutOfScope)
}
