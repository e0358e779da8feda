// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. An order row carries its cached completion status; line
// rows are soft-deleted on replacement so every historical line version stays
// in the table. Status transitions are appended to an audit table.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	OrderDate  time.Time
	Note       string
	Status     int
	Lines      []OrderLineDTO `gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one order line row. A soft-deleted row is a retired
// line version; live rows make up the aggregate's current line set.
type OrderLineDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductName string
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)"`
	Quantity    int
	CreatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// StatusChangeDTO represents one audit record of a cached-status transition.
// Append-only; rows are never updated or deleted.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	ChangedAt  time.Time
}

// TableName specifies the database table name for status change records.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, lineFromDomain(aggregate.ID(), line))
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		OrderDate:  aggregate.OrderDate(),
		Note:       aggregate.Note(),
		Status:     int(aggregate.Status()),
		Lines:      lines,
	}
}

func lineFromDomain(orderID kernel.UUID, line *order.Line) OrderLineDTO {
	return OrderLineDTO{
		ID:          line.ID().Bytes(),
		OrderID:     orderID.Bytes(),
		ProductName: line.ProductName(),
		UnitPrice:   line.UnitPrice(),
		Quantity:    line.Quantity(),
	}
}

func changeFromDomain(change *order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:         change.ID().Bytes(),
		OrderID:    change.OrderID().Bytes(),
		FromStatus: int(change.From()),
		ToStatus:   int(change.To()),
		ChangedAt:  change.ChangedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, customerID, dto.OrderDate, dto.Note, order.Status(dto.Status), lines)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(id, dto.ProductName, dto.UnitPrice, dto.Quantity)
}
