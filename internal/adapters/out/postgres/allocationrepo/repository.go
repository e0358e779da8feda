package allocationrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM.
// Reads return live rows only; Delete soft-deletes.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAllocationRepository creates a new GORM allocation repository.
func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new allocation to the database.
func (r *GormAllocationRepository) Add(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing allocation to the database.
func (r *GormAllocationRepository) Update(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AllocationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrderLineIDs retrieves the live allocations against the given order lines.
func (r *GormAllocationRepository) GetByOrderLineIDs(
	ctx context.Context,
	orderLineIDs []kernel.UUID,
) ([]*allocation.Allocation, error) {
	return r.getBy(ctx, "order_line_id", orderLineIDs)
}

// GetByDeliveryLineIDs retrieves the live allocations made by the given delivery lines.
func (r *GormAllocationRepository) GetByDeliveryLineIDs(
	ctx context.Context,
	deliveryLineIDs []kernel.UUID,
) ([]*allocation.Allocation, error) {
	return r.getBy(ctx, "delivery_line_id", deliveryLineIDs)
}

// Delete soft-deletes an allocation.
func (r *GormAllocationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AllocationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *GormAllocationRepository) getBy(
	ctx context.Context,
	column string,
	ids []kernel.UUID,
) ([]*allocation.Allocation, error) {
	if len(ids) == 0 {
		return []*allocation.Allocation{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []AllocationDTO
	if err := r.db.WithContext(ctx).
		Where(column+" IN ?", raw).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	allocations := make([]*allocation.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, nil
}
