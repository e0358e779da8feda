package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEditDeliveryCommandHandler_Handle_GrowWithinOwnContribution(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)
	ord, line := orderWithLine(t, cust.ID(), 10)

	dlv := deliveryWithLine(t, cust.ID(), 4)
	deliveryLineID := dlv.Lines()[0].ID()
	ownAlloc, err := allocation.NewAllocation(kernel.NewUUID(), line.ID(), deliveryLineID, 4)
	require.NoError(t, err)

	// The delivery currently contributes 4 of 10 and grows to the full 10.
	// Its own allocation is withdrawn for the admission check, so the edit
	// is validated against a remaining quantity of 10, not 6.
	cmd, err := commands.NewEditDeliveryCommand(storeID, dlv.ID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, line.ID(), 10)})
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

	touched := []kernel.UUID{line.ID(), line.ID()}
	orderRepo.On("GetByLineIDs", ctx, touched, true).Return([]*order.Order{ord}, nil).Once()
	allocationRepo.On("GetByOrderLineIDs", ctx, touched).
		Return([]*allocation.Allocation{ownAlloc}, nil).Once()

	deliveryRepo.On("Update", ctx, mock.MatchedBy(func(d *delivery.Delivery) bool {
		return d.IsEqual(dlv) && d.TotalQuantity() == 10
	})).Return(nil).Once()

	// The surviving (order line, product) pairing keeps its allocation row.
	allocationRepo.On("Update", ctx, mock.MatchedBy(func(a *allocation.Allocation) bool {
		return a.ID().IsEqual(ownAlloc.ID()) && a.Quantity() == 10
	})).Return(nil).Once()

	// Full coverage flips the order to complete.
	allocationRepo.On("GetByOrderLineIDs", ctx, []kernel.UUID{line.ID()}).
		Return([]*allocation.Allocation{ownAlloc}, nil).Once()
	orderRepo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.IsEqual(ord) && o.Status() == order.Complete
	})).Return(nil).Once()
	orderRepo.On("AddStatusChange", ctx, mock.AnythingOfType("*order.StatusChange")).Return(nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEditDeliveryCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	allocationRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestEditDeliveryCommandHandler_Handle_ForeignAllocationsStillCount(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)
	ord, line := orderWithLine(t, cust.ID(), 10)

	dlv := deliveryWithLine(t, cust.ID(), 4)
	deliveryLineID := dlv.Lines()[0].ID()
	ownAlloc, err := allocation.NewAllocation(kernel.NewUUID(), line.ID(), deliveryLineID, 4)
	require.NoError(t, err)
	foreignAlloc := allocationFor(t, line.ID(), 5)

	// Another delivery holds 5 of the 10, so this one may grow to at most 5.
	cmd, err := commands.NewEditDeliveryCommand(storeID, dlv.ID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, line.ID(), 7)})
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
	uow.On("Rollback", ctx).Return(nil).Once()

	deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	allocationRepo.On("GetByDeliveryLineIDs", ctx, []kernel.UUID{deliveryLineID}).
		Return([]*allocation.Allocation{ownAlloc}, nil).Once()

	touched := []kernel.UUID{line.ID(), line.ID()}
	orderRepo.On("GetByLineIDs", ctx, touched, true).Return([]*order.Order{ord}, nil).Once()
	allocationRepo.On("GetByOrderLineIDs", ctx, touched).
		Return([]*allocation.Allocation{ownAlloc, foreignAlloc}, nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEditDeliveryCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, 4, ownAlloc.Quantity())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestEditDeliveryCommandHandler_Handle_DeliveryOutOfScope(t *testing.T) {
	ctx := t.Context()
	cust := storeCustomer(t, kernel.NewUUID())
	dlv := deliveryWithLine(t, cust.ID(), 4)

	cmd, err := commands.NewEditDeliveryCommand(kernel.NewUUID(), dlv.ID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, kernel.NewUUID(), 1)})
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUnitOfWork)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEditDeliveryCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectOutOfScope)
}

func TestEditDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockFulfillmentUoWFactory)

	h := commands.NewEditDeliveryCommandHandler(factory, fixedClock{now: testNow})
	err := h.Handle(ctx, commands.EditDeliveryCommand{})

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
