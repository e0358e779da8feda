package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCustomerDeliveriesQueryHandler lists a customer's live deliveries with
// their lines. Totals come from the cached columns maintained by the
// delivery aggregate, not from re-summing lines here.
type GetCustomerDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerDeliveriesQueryHandler creates a handler for customer delivery listings.
func NewGetCustomerDeliveriesQueryHandler(db *gorm.DB) GetCustomerDeliveriesQueryHandler {
	return GetCustomerDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Deliveries are sorted by delivery date, oldest
// first; lines keep insertion order within each delivery.
func (h GetCustomerDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerDeliveriesQuery,
) ([]GetCustomerDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := checkCustomerScope(ctx, h.db, query.StoreID(), query.CustomerID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.delivery_date,
			d.note,
			d.total_amount,
			d.total_quantity,
			dl.id,
			dl.product_name,
			dl.unit_price,
			dl.quantity
		FROM deliveries d
		JOIN delivery_lines dl ON dl.delivery_id = d.id AND dl.deleted_at IS NULL
		WHERE d.customer_id = ? AND d.deleted_at IS NULL
		ORDER BY d.delivery_date, d.id, dl.created_at
	`, query.CustomerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetCustomerDeliveriesQueryResponse, 0)
	index := make(map[kernel.UUID]int)

	for rows.Next() {
		var deliveryRow struct {
			id            uuid.UUID
			deliveryDate  sql.NullTime
			note          string
			totalAmount   decimal.Decimal
			totalQuantity int
		}
		var lineRow struct {
			id          uuid.UUID
			productName string
			unitPrice   decimal.Decimal
			quantity    int
		}

		err = rows.Scan(
			&deliveryRow.id,
			&deliveryRow.deliveryDate,
			&deliveryRow.note,
			&deliveryRow.totalAmount,
			&deliveryRow.totalQuantity,
			&lineRow.id,
			&lineRow.productName,
			&lineRow.unitPrice,
			&lineRow.quantity,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(deliveryRow.id[:])
		if idErr != nil {
			return nil, idErr
		}
		lineID, idErr := kernel.UUIDFromBytes(lineRow.id[:])
		if idErr != nil {
			return nil, idErr
		}

		pos, ok := index[deliveryID]
		if !ok {
			deliveries = append(deliveries, GetCustomerDeliveriesQueryResponse{
				ID:            deliveryID,
				DeliveryDate:  deliveryRow.deliveryDate.Time,
				Note:          deliveryRow.note,
				TotalAmount:   deliveryRow.totalAmount,
				TotalQuantity: deliveryRow.totalQuantity,
			})
			pos = len(deliveries) - 1
			index[deliveryID] = pos
		}

		deliveries[pos].Lines = append(deliveries[pos].Lines, DeliveryLineReadModel{
			ID:          lineID,
			ProductName: lineRow.productName,
			UnitPrice:   lineRow.unitPrice,
			Quantity:    lineRow.quantity,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
