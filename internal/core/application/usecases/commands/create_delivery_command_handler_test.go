package commands_test

import (
	"errors"
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

func TestCreateDeliveryCommandHandler_Handle_PartialThenComplete(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)
	ord, line := orderWithLine(t, cust.ID(), 10)

	// 4 of 10 already delivered; this delivery brings the remaining 6.
	existing := []*allocation.Allocation{allocationFor(t, line.ID(), 4)}
	afterWrite := append(existing, allocationFor(t, line.ID(), 6))

	cmd, err := commands.NewCreateDeliveryCommand(storeID, cust.ID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, line.ID(), 6)})
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

	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	orderRepo.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}, true).Return([]*order.Order{ord}, nil).Once()
	allocationRepo.On("GetByOrderLineIDs", ctx, []kernel.UUID{line.ID()}).Return(existing, nil).Once()

	deliveryRepo.On("Add", ctx, mock.MatchedBy(func(d *delivery.Delivery) bool {
		return d.TotalQuantity() == 6 && len(d.Lines()) == 1
	})).Return(nil).Once()
	allocationRepo.On("Add", ctx, mock.MatchedBy(func(a *allocation.Allocation) bool {
		return a.OrderLineID().IsEqual(line.ID()) && a.Quantity() == 6
	})).Return(nil).Once()

	// Status sync sees the full allocation set and flips the order to complete.
	allocationRepo.On("GetByOrderLineIDs", ctx, []kernel.UUID{line.ID()}).Return(afterWrite, nil).Once()
	orderRepo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.IsEqual(ord) && o.Status() == order.Complete
	})).Return(nil).Once()
	orderRepo.On("AddStatusChange", ctx, mock.MatchedBy(func(change *order.StatusChange) bool {
		return change.OrderID().IsEqual(ord.ID()) &&
			change.From() == order.Incomplete &&
			change.To() == order.Complete &&
			change.ChangedAt().Equal(testNow)
	})).Return(nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, fixedClock{now: testNow})
	deliveryID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, deliveryID.Validate())
	for _, m := range []*mock.Mock{&uow.Mock, &customerRepo.Mock, &orderRepo.Mock, &deliveryRepo.Mock, &allocationRepo.Mock, &factory.Mock} {
		m.AssertExpectations(t)
	}
}

func TestCreateDeliveryCommandHandler_Handle_OverAllocationRejected(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)
	ord, line := orderWithLine(t, cust.ID(), 10)

	// 4 of 10 already delivered; 7 more would overshoot the line.
	existing := []*allocation.Allocation{allocationFor(t, line.ID(), 4)}

	cmd, err := commands.NewCreateDeliveryCommand(storeID, cust.ID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, line.ID(), 7)})
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

	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	orderRepo.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}, true).Return([]*order.Order{ord}, nil).Once()
	allocationRepo.On("GetByOrderLineIDs", ctx, []kernel.UUID{line.ID()}).Return(existing, nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, fixedClock{now: testNow})
	_, err = h.Handle(ctx, cmd)

	// The whole transaction aborts: no delivery, no delivery line, no
	// allocation write was attempted, and the first delivery's allocation
	// still stands untouched.
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, 4, existing[0].Quantity())
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
	allocationRepo.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_UnknownOrderLine(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)

	cmd, err := commands.NewCreateDeliveryCommand(storeID, cust.ID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, kernel.NewUUID(), 1)})
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

	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	orderRepo.On("GetByLineIDs", ctx, mock.Anything, true).Return([]*order.Order{}, nil).Once()
	allocationRepo.On("GetByOrderLineIDs", ctx, mock.Anything).Return([]*allocation.Allocation{}, nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, fixedClock{now: testNow})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateDeliveryCommandHandler_Handle_CustomerOutOfScope(t *testing.T) {
	ctx := t.Context()
	cust := storeCustomer(t, kernel.NewUUID())

	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), cust.ID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, kernel.NewUUID(), 1)})
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	uow := new(MockUnitOfWork)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, fixedClock{now: testNow})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectOutOfScope)
}

func TestCreateDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockFulfillmentUoWFactory)

	h := commands.NewCreateDeliveryCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, commands.CreateDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrCreateDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateDeliveryCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), kernel.NewUUID(), testDeliveryDate, "",
		[]commands.AllocationRequest{allocationRequest(t, kernel.NewUUID(), 1)})
	require.NoError(t, err)

	uow := new(MockUnitOfWork)
	factory := new(MockFulfillmentUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateDeliveryCommandHandler(factory, fixedClock{now: testNow})
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}
