package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderLineRequest(t *testing.T, productName string, price int64, quantity int) commands.OrderLineRequest {
	t.Helper()
	request, err := commands.NewOrderLineRequest(productName, decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	return request
}

func TestNewCreateOrderCommand(t *testing.T) {
	storeID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(storeID, customerID, testOrderDate, "rush",
			[]commands.OrderLineRequest{orderLineRequest(t, "widget", 100, 5)})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.StoreID().IsEqual(storeID))
		assert.Equal(t, testOrderDate, cmd.OrderDate())
		assert.Len(t, cmd.Lines(), 1)
	})

	t.Run("should fail without lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(storeID, customerID, testOrderDate, "", nil)

		require.ErrorIs(t, err, commands.ErrEmptyOrderLines)
	})

	t.Run("should fail with zero order date", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(storeID, customerID, time.Time{}, "",
			[]commands.OrderLineRequest{orderLineRequest(t, "widget", 100, 5)})

		require.ErrorIs(t, err, order.ErrOrderDateIsRequired)
	})

	t.Run("should fail with unconstructed line request", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(storeID, customerID, testOrderDate, "",
			[]commands.OrderLineRequest{{}})

		require.ErrorIs(t, err, commands.ErrOrderLineRequestIsNotConstructed)
	})
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)

	cmd, err := commands.NewCreateOrderCommand(storeID, cust.ID(), testOrderDate, "rush",
		[]commands.OrderLineRequest{
			orderLineRequest(t, "widget", 100, 5),
			orderLineRequest(t, "gadget", 50, 2),
		})
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)

	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.CustomerID().IsEqual(cust.ID()) &&
			o.Status() == order.Incomplete &&
			len(o.Lines()) == 2
	})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	orderID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, orderID.Validate())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CustomerOutOfScope(t *testing.T) {
	ctx := t.Context()
	cust := storeCustomer(t, kernel.NewUUID())

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), cust.ID(), testOrderDate, "",
		[]commands.OrderLineRequest{orderLineRequest(t, "widget", 100, 5)})
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	uow := new(MockUnitOfWork)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectOutOfScope)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cust := storeCustomer(t, storeID)

	cmd, err := commands.NewCreateOrderCommand(storeID, cust.ID(), testOrderDate, "",
		[]commands.OrderLineRequest{orderLineRequest(t, "widget", 100, 5)})
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	customerRepo.On("Get", ctx, cust.ID()).Return(cust, nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("insert failed")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}
