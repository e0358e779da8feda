package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
)

// AllocationRepository defines the persistence contract for allocation records.
// All read methods return live (non-deleted) allocations only; Delete is a
// soft delete, keeping the rows for historical fulfillment reconstruction.
type AllocationRepository interface {
	// Add persists a new allocation record.
	Add(ctx context.Context, aggregate *allocation.Allocation) error

	// Update persists an in-place quantity change.
	Update(ctx context.Context, aggregate *allocation.Allocation) error

	// GetByOrderLineIDs retrieves the live allocations fulfilling any of the
	// given order lines. Input for the fulfillment calculator.
	GetByOrderLineIDs(ctx context.Context, lineIDs []kernel.UUID) ([]*allocation.Allocation, error)

	// GetByDeliveryLineIDs retrieves the live allocations carried by any of
	// the given delivery lines. Used to establish an edited or deleted
	// delivery's prior contribution.
	GetByDeliveryLineIDs(ctx context.Context, lineIDs []kernel.UUID) ([]*allocation.Allocation, error)

	// Delete soft-deletes a single allocation record.
	Delete(ctx context.Context, id kernel.UUID) error
}
