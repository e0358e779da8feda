package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler lists a customer's live orders with each
// line's delivered and remaining quantity folded in by the database.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order listings.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are sorted by order date, oldest first;
// lines keep insertion order within each order.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := checkCustomerScope(ctx, h.db, query.StoreID(), query.CustomerID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_date,
			o.note,
			o.status,
			ol.id,
			ol.product_name,
			ol.unit_price,
			ol.quantity,
			COALESCE(SUM(a.quantity), 0) AS delivered
		FROM orders o
		JOIN order_lines ol ON ol.order_id = o.id AND ol.deleted_at IS NULL
		LEFT JOIN allocations a ON a.order_line_id = ol.id AND a.deleted_at IS NULL
		WHERE o.customer_id = ? AND o.deleted_at IS NULL
		GROUP BY o.id, o.order_date, o.note, o.status, ol.id, ol.product_name, ol.unit_price, ol.quantity, ol.created_at
		ORDER BY o.order_date, o.id, ol.created_at
	`, query.CustomerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetCustomerOrdersQueryResponse, 0)
	index := make(map[kernel.UUID]int)

	for rows.Next() {
		var orderRow struct {
			id        uuid.UUID
			orderDate sql.NullTime
			note      string
			status    int
		}
		var lineRow struct {
			id          uuid.UUID
			productName string
			unitPrice   decimal.Decimal
			quantity    int
			delivered   int
		}

		err = rows.Scan(
			&orderRow.id,
			&orderRow.orderDate,
			&orderRow.note,
			&orderRow.status,
			&lineRow.id,
			&lineRow.productName,
			&lineRow.unitPrice,
			&lineRow.quantity,
			&lineRow.delivered,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(orderRow.id[:])
		if idErr != nil {
			return nil, idErr
		}
		lineID, idErr := kernel.UUIDFromBytes(lineRow.id[:])
		if idErr != nil {
			return nil, idErr
		}

		pos, ok := index[orderID]
		if !ok {
			orders = append(orders, GetCustomerOrdersQueryResponse{
				ID:        orderID,
				OrderDate: orderRow.orderDate.Time,
				Note:      orderRow.note,
				Status:    order.Status(orderRow.status).String(),
			})
			pos = len(orders) - 1
			index[orderID] = pos
		}

		orders[pos].Lines = append(orders[pos].Lines, OrderLineReadModel{
			ID:          lineID,
			ProductName: lineRow.productName,
			UnitPrice:   lineRow.unitPrice,
			Quantity:    lineRow.quantity,
			Delivered:   lineRow.delivered,
			Remaining:   lineRow.quantity - lineRow.delivered,
			Status:      lineStatusOf(lineRow.quantity, lineRow.delivered),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func lineStatusOf(quantity, delivered int) string {
	switch {
	case delivered <= 0:
		return order.NotDelivered.String()
	case delivered < quantity:
		return order.PartiallyDelivered.String()
	default:
		return order.FullyDelivered.String()
	}
}

// checkCustomerScope resolves the customer and verifies it belongs to the
// caller's store. Shared by the customer-scoped listing queries.
func checkCustomerScope(ctx context.Context, db *gorm.DB, storeID, customerID kernel.UUID) error {
	row := db.WithContext(ctx).Raw(`
		SELECT store_id FROM customers WHERE id = ? AND deleted_at IS NULL
	`, customerID.String()).Row()

	var customerStoreID uuid.UUID
	if err := row.Scan(&customerStoreID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("customer", customerID.String())
		}
		return err
	}
	if customerStoreID.String() != storeID.String() {
		return errs.NewObjectOutOfScopeError("customer", customerID.String())
	}
	return nil
}
