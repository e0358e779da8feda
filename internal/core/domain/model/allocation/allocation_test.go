package allocation_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllocation(t *testing.T) {
	validID := kernel.NewUUID()
	validOrderLineID := kernel.NewUUID()
	validDeliveryLineID := kernel.NewUUID()

	t.Run("should create valid allocation", func(t *testing.T) {
		alloc, err := allocation.NewAllocation(validID, validOrderLineID, validDeliveryLineID, 4)

		require.NoError(t, err)
		require.NoError(t, alloc.Validate())
		assert.True(t, alloc.ID().IsEqual(validID))
		assert.True(t, alloc.OrderLineID().IsEqual(validOrderLineID))
		assert.True(t, alloc.DeliveryLineID().IsEqual(validDeliveryLineID))
		assert.Equal(t, 4, alloc.Quantity())
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID

		alloc, err := allocation.NewAllocation(invalidID, validOrderLineID, validDeliveryLineID, 4)

		require.Error(t, err)
		assert.Nil(t, alloc)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		alloc, err := allocation.NewAllocation(validID, validOrderLineID, validDeliveryLineID, 0)

		require.Error(t, err)
		assert.Nil(t, alloc)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		alloc, err := allocation.NewAllocation(validID, validOrderLineID, validDeliveryLineID, -3)

		require.Error(t, err)
		assert.Nil(t, alloc)
		assert.Contains(t, err.Error(), "-3 is not greater than 0")
	})
}

func TestAllocation_ChangeQuantity(t *testing.T) {
	alloc, err := allocation.NewAllocation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 4)
	require.NoError(t, err)

	t.Run("should update quantity in place", func(t *testing.T) {
		require.NoError(t, alloc.ChangeQuantity(7))

		assert.Equal(t, 7, alloc.Quantity())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		require.Error(t, alloc.ChangeQuantity(0))

		assert.Equal(t, 7, alloc.Quantity())
	})
}

func TestAllocation_ReassignOrderLine(t *testing.T) {
	alloc, err := allocation.NewAllocation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 4)
	require.NoError(t, err)

	t.Run("should point at the new order line", func(t *testing.T) {
		replacement := kernel.NewUUID()

		require.NoError(t, alloc.ReassignOrderLine(replacement))

		assert.True(t, alloc.OrderLineID().IsEqual(replacement))
	})

	t.Run("should reject invalid identifier", func(t *testing.T) {
		var invalid kernel.UUID

		require.Error(t, alloc.ReassignOrderLine(invalid))
	})
}

func TestAllocation_Validate(t *testing.T) {
	t.Run("should fail for zero value allocation", func(t *testing.T) {
		var alloc allocation.Allocation

		require.ErrorIs(t, alloc.Validate(), allocation.ErrAllocationIsNotConstructed)
	})
}
