package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveStoresQueryHandler lists every store that currently has at least
// one live customer.
type GetActiveStoresQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveStoresQueryHandler creates a handler for active store queries.
func NewGetActiveStoresQueryHandler(db *gorm.DB) GetActiveStoresQueryHandler {
	return GetActiveStoresQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by store ID for consistent output.
func (h GetActiveStoresQueryHandler) Handle(
	ctx context.Context,
	query GetActiveStoresQuery,
) ([]GetActiveStoresQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stores := make([]GetActiveStoresQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT store_id
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY store_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		storeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		stores = append(stores, GetActiveStoresQueryResponse{StoreID: storeID})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stores, nil
}
