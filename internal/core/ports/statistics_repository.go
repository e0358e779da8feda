package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/statistics"
)

// StatisticsRepository defines the persistence contract for the per-customer
// statistics cache. Exactly one row exists per customer once computed.
type StatisticsRepository interface {
	// Get retrieves the cached statistics row for a customer.
	// Returns an ObjectNotFoundError when no row has been computed yet.
	Get(ctx context.Context, customerID kernel.UUID) (*statistics.Statistics, error)

	// Upsert inserts or replaces the customer's statistics row.
	Upsert(ctx context.Context, aggregate *statistics.Statistics) error
}
