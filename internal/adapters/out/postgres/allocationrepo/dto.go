// Package allocationrepo provides data transfer objects and mapping functions
// for allocation persistence: the join rows recording how many units of an
// order line a delivery line satisfied. Rows are soft-deleted, never removed,
// so past fulfillment stays reconstructible.
package allocationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllocationDTO represents the database structure for persisting allocations.
// At most one live row exists per (order line, delivery line) pair.
type AllocationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderLineID    uuid.UUID `gorm:"type:uuid;index"`
	DeliveryLineID uuid.UUID `gorm:"type:uuid;index"`
	Quantity       int
	CreatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for allocation entities.
func (AllocationDTO) TableName() string {
	return "allocations"
}

func fromDomain(aggregate *allocation.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:             aggregate.ID().Bytes(),
		OrderLineID:    aggregate.OrderLineID().Bytes(),
		DeliveryLineID: aggregate.DeliveryLineID().Bytes(),
		Quantity:       aggregate.Quantity(),
	}
}

func toDomain(dto AllocationDTO) (*allocation.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderLineID, err := kernel.UUIDFromBytes(dto.OrderLineID[:])
	if err != nil {
		return nil, err
	}

	deliveryLineID, err := kernel.UUIDFromBytes(dto.DeliveryLineID[:])
	if err != nil {
		return nil, err
	}

	return allocation.RestoreAllocation(id, orderLineID, deliveryLineID, dto.Quantity)
}
