package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads an order's cached completion status.
// The cache is kept current by the status sync inside every delivery
// transaction, so no recomputation happens here.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			c.store_id,
			o.status
		FROM orders o
		JOIN customers c ON c.id = o.customer_id AND c.deleted_at IS NULL
		WHERE o.id = ? AND o.deleted_at IS NULL
	`, query.OrderID().String()).Row()

	var storeID uuid.UUID
	var status int
	if err := row.Scan(&storeID, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderStatusQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderStatusQueryResponse{}, err
	}

	if storeID.String() != query.StoreID().String() {
		return GetOrderStatusQueryResponse{},
			errs.NewObjectOutOfScopeError("order", query.OrderID().String())
	}

	return GetOrderStatusQueryResponse{
		OrderID: query.OrderID(),
		Status:  order.Status(status).String(),
	}, nil
}
