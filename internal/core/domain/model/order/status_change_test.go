package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusChange(t *testing.T) {
	validID := kernel.NewUUID()
	validOrderID := kernel.NewUUID()
	changedAt := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	t.Run("should create valid status change", func(t *testing.T) {
		change, err := order.NewStatusChange(validID, validOrderID, order.Incomplete, order.Complete, changedAt)

		require.NoError(t, err)
		require.NoError(t, change.Validate())
		assert.True(t, change.ID().IsEqual(validID))
		assert.True(t, change.OrderID().IsEqual(validOrderID))
		assert.Equal(t, order.Incomplete, change.From())
		assert.Equal(t, order.Complete, change.To())
		assert.Equal(t, changedAt, change.ChangedAt())
	})

	t.Run("should record the reverse transition", func(t *testing.T) {
		change, err := order.NewStatusChange(validID, validOrderID, order.Complete, order.Incomplete, changedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Complete, change.From())
		assert.Equal(t, order.Incomplete, change.To())
	})

	t.Run("should reject identical from and to", func(t *testing.T) {
		change, err := order.NewStatusChange(validID, validOrderID, order.Complete, order.Complete, changedAt)

		require.Error(t, err)
		assert.Nil(t, change)
		require.ErrorIs(t, err, order.ErrStatusChangeIsNoOp)
	})

	t.Run("should reject invalid from status", func(t *testing.T) {
		change, err := order.NewStatusChange(validID, validOrderID, order.Unknown, order.Complete, changedAt)

		require.Error(t, err)
		assert.Nil(t, change)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject zero timestamp", func(t *testing.T) {
		change, err := order.NewStatusChange(validID, validOrderID, order.Incomplete, order.Complete, time.Time{})

		require.Error(t, err)
		assert.Nil(t, change)
		require.ErrorIs(t, err, order.ErrChangedAtIsRequired)
	})
}

func TestStatusChange_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var change order.StatusChange

		require.ErrorIs(t, change.Validate(), order.ErrStatusChangeIsNotConstructed)
	})
}
