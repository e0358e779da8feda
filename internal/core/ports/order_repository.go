package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Loaded aggregates carry only live (non-deleted) lines; soft-deleted lines
// stay in storage for historical reconstruction but never surface here.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order: its row, its cached
	// status, and its line set. Lines missing from the aggregate are
	// soft-deleted; new lines are inserted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves a live order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByLineIDs retrieves the live orders owning the given live line IDs.
	// With lock set, the matched order line rows are locked FOR UPDATE so
	// that the remaining-quantity read and the allocation write of a
	// delivery transaction cannot interleave with a concurrent one.
	// Line IDs that resolve to no live order are simply not represented in
	// the result; callers that require every ID to resolve check ownership
	// themselves.
	GetByLineIDs(ctx context.Context, lineIDs []kernel.UUID, lock bool) ([]*order.Order, error)

	// GetByCustomer retrieves all live orders of a customer with their lines.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// Delete soft-deletes an order and its lines.
	Delete(ctx context.Context, id kernel.UUID) error

	// AddStatusChange appends an audit record for a cached-status transition.
	AddStatusChange(ctx context.Context, change *order.StatusChange) error
}
