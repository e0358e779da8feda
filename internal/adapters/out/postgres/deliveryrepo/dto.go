// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. Delivery rows carry the cached totals maintained
// by the aggregate; line rows are soft-deleted on replacement and keep their
// identity across edits when the product survives.
package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
type DeliveryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	DeliveryDate  time.Time
	Note          string
	TotalAmount   decimal.Decimal `gorm:"type:decimal(14,2)"`
	TotalQuantity int
	Lines         []DeliveryLineDTO `gorm:"foreignKey:DeliveryID"`
	CreatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// DeliveryLineDTO represents one billed delivery line row.
type DeliveryLineDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;index"`
	ProductName string
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)"`
	Quantity    int
	CreatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for delivery line entities.
func (DeliveryLineDTO) TableName() string {
	return "delivery_lines"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	lines := make([]DeliveryLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, DeliveryLineDTO{
			ID:          line.ID().Bytes(),
			DeliveryID:  aggregate.ID().Bytes(),
			ProductName: line.ProductName(),
			UnitPrice:   line.UnitPrice(),
			Quantity:    line.Quantity(),
		})
	}

	return DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		DeliveryDate:  aggregate.DeliveryDate(),
		Note:          aggregate.Note(),
		TotalAmount:   aggregate.TotalAmount(),
		TotalQuantity: aggregate.TotalQuantity(),
		Lines:         lines,
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*delivery.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromBytes(lineDTO.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := delivery.RestoreLine(lineID, lineDTO.ProductName, lineDTO.UnitPrice, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return delivery.RestoreDelivery(id, customerID, dto.DeliveryDate, dto.Note, lines)
}
