package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetRemainingQuantityQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		storeID := kernel.NewUUID()
		orderLineID := kernel.NewUUID()

		q, err := queries.NewGetRemainingQuantityQuery(storeID, orderLineID)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.True(t, q.StoreID().IsEqual(storeID))
		assert.True(t, q.OrderLineID().IsEqual(orderLineID))
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := queries.NewGetRemainingQuantityQuery(invalid, kernel.NewUUID())

		require.Error(t, err)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var q queries.GetRemainingQuantityQuery

		require.Error(t, q.Validate())
	})
}

func TestNewGetOrderStatusQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		q, err := queries.NewGetOrderStatusQuery(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("should fail with invalid order identifier", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := queries.NewGetOrderStatusQuery(kernel.NewUUID(), invalid)

		require.Error(t, err)
	})
}

func TestNewGetStatisticsQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		q, err := queries.NewGetStatisticsQuery(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var q queries.GetStatisticsQuery

		require.ErrorIs(t, q.Validate(), queries.ErrGetStatisticsQueryIsNotConstructed)
	})
}

func TestNewGetCustomerOrdersQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		q, err := queries.NewGetCustomerOrdersQuery(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("should fail with invalid customer identifier", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := queries.NewGetCustomerOrdersQuery(kernel.NewUUID(), invalid)

		require.Error(t, err)
	})
}

func TestNewGetCustomerDeliveriesQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		q, err := queries.NewGetCustomerDeliveriesQuery(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("should fail with invalid store identifier", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := queries.NewGetCustomerDeliveriesQuery(invalid, kernel.NewUUID())

		require.Error(t, err)
	})
}

func TestNewGetActiveStoresQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		q := queries.NewGetActiveStoresQuery()

		require.NoError(t, q.Validate())
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var q queries.GetActiveStoresQuery

		require.ErrorIs(t, q.Validate(), queries.ErrGetActiveStoresQueryIsNotConstructed)
	})
}
