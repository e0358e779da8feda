package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate with its lines.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery: its row, its cached
	// totals, and its line set. Lines missing from the aggregate are
	// soft-deleted; surviving lines keep their identity.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a live delivery by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByCustomer retrieves all live deliveries of a customer with their lines.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*delivery.Delivery, error)

	// Delete soft-deletes a delivery and its lines.
	Delete(ctx context.Context, id kernel.UUID) error
}
