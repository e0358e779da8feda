package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRemainingQuantityQueryHandler computes an order line's remaining
// quantity straight off storage: ordered quantity minus the sum of its live
// allocations. The same arithmetic the fulfillment calculator applies to
// loaded aggregates, expressed as one aggregate query.
type GetRemainingQuantityQueryHandler struct {
	db *gorm.DB
}

// NewGetRemainingQuantityQueryHandler creates a handler for remaining-quantity queries.
func NewGetRemainingQuantityQueryHandler(db *gorm.DB) GetRemainingQuantityQueryHandler {
	return GetRemainingQuantityQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the line,
// its order, or its customer is absent or soft-deleted, and an
// ObjectOutOfScopeError when the line belongs to another store.
func (h GetRemainingQuantityQueryHandler) Handle(
	ctx context.Context,
	query GetRemainingQuantityQuery,
) (GetRemainingQuantityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRemainingQuantityQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			c.store_id,
			ol.quantity,
			COALESCE(SUM(a.quantity), 0) AS delivered
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id AND o.deleted_at IS NULL
		JOIN customers c ON c.id = o.customer_id AND c.deleted_at IS NULL
		LEFT JOIN allocations a ON a.order_line_id = ol.id AND a.deleted_at IS NULL
		WHERE ol.id = ? AND ol.deleted_at IS NULL
		GROUP BY c.store_id, ol.quantity
	`, query.OrderLineID().String()).Row()

	var storeID uuid.UUID
	var quantity, delivered int
	if err := row.Scan(&storeID, &quantity, &delivered); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetRemainingQuantityQueryResponse{},
				errs.NewObjectNotFoundError("orderLine", query.OrderLineID().String())
		}
		return GetRemainingQuantityQueryResponse{}, err
	}

	if storeID.String() != query.StoreID().String() {
		return GetRemainingQuantityQueryResponse{},
			errs.NewObjectOutOfScopeError("orderLine", query.OrderLineID().String())
	}

	return GetRemainingQuantityQueryResponse{
		OrderLineID: query.OrderLineID(),
		Quantity:    quantity,
		Delivered:   delivered,
		Remaining:   quantity - delivered,
	}, nil
}
