package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	testOrderDate    = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testDeliveryDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	testNow          = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
)

func storeCustomer(t *testing.T, storeID kernel.UUID) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), storeID, "Acme Foods")
	require.NoError(t, err)
	return c
}

func orderWithLine(t *testing.T, customerID kernel.UUID, quantity int) (*order.Order, *order.Line) {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), "widget", decimal.NewFromInt(100), quantity)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, testOrderDate, "", []*order.Line{line})
	require.NoError(t, err)
	return o, line
}

func allocationFor(t *testing.T, orderLineID kernel.UUID, quantity int) *allocation.Allocation {
	t.Helper()
	alloc, err := allocation.NewAllocation(kernel.NewUUID(), orderLineID, kernel.NewUUID(), quantity)
	require.NoError(t, err)
	return alloc
}

func allocationRequest(t *testing.T, orderLineID kernel.UUID, quantity int) commands.AllocationRequest {
	t.Helper()
	request, err := commands.NewAllocationRequest(orderLineID, "widget", decimal.NewFromInt(100), quantity)
	require.NoError(t, err)
	return request
}

func deliveryWithLine(t *testing.T, customerID kernel.UUID, quantity int) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), customerID, testDeliveryDate, "", []delivery.LineInput{
		{ProductName: "widget", UnitPrice: decimal.NewFromInt(100), Quantity: quantity},
	})
	require.NoError(t, err)
	return d
}
