package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteDeliveryCommandHandler_Handle_RevertsOrderToIncomplete(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)

	line, err := order.NewLine(kernel.NewUUID(), "widget", decimal.NewFromInt(100), 10)
	require.NoError(t, err)
	ord, err := order.RestoreOrder(kernel.NewUUID(), cust.ID(), testOrderDate, "", order.Complete, []*order.Line{line})
	require.NoError(t, err)

	dlv := deliveryWithLine(t, cust.ID(), 10)
	deliveryLineID := dlv.Lines()[0].ID()
	ownAlloc, err := allocation.NewAllocation(kernel.NewUUID(), line.ID(), deliveryLineID, 10)
	require.NoError(t, err)

	cmd, err := commands.NewDeleteDeliveryCommand(storeID, dlv.ID())
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockUnitOfWork)

	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	allocationRepo.On("GetByDeliveryLineIDs", ctx, []kernel.UUID{deliveryLineID}).
		Return([]*allocation.Allocation{ownAlloc}, nil).Once()
	orderRepo.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}, true).Return([]*order.Order{ord}, nil).Once()

	allocationRepo.On("Delete", ctx, ownAlloc.ID()).Return(nil).Once()
	deliveryRepo.On("Delete", ctx, dlv.ID()).Return(nil).Once()

	// With the allocation gone the order is no longer covered.
	allocationRepo.On("GetByOrderLineIDs", ctx, []kernel.UUID{line.ID()}).
		Return([]*allocation.Allocation{}, nil).Once()
	orderRepo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.IsEqual(ord) && o.Status() == order.Incomplete
	})).Return(nil).Once()
	orderRepo.On("AddStatusChange", ctx, mock.MatchedBy(func(change *order.StatusChange) bool {
		return change.From() == order.Complete && change.To() == order.Incomplete
	})).Return(nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	allocationRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestDeleteDeliveryCommandHandler_Handle_DeliveryNotFound(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewDeleteDeliveryCommand(kernel.NewUUID(), deliveryID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUnitOfWork)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("Get", ctx, deliveryID).
		Return(nil, errs.NewObjectNotFoundError("delivery", deliveryID.String())).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}
