package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
// Customers act as the customer/store directory used for scope validation.
type CustomerRepository interface {
	// Add persists a new customer aggregate to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a live customer by its unique identifier.
	// Soft-deleted customers are reported as not found.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByStore retrieves all live customers belonging to a store.
	// Used by the forced statistics recalculation.
	GetByStore(ctx context.Context, storeID kernel.UUID) ([]*customer.Customer, error)
}
