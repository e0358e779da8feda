package deliveryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery with its lines to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
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

// Update saves an existing delivery to the database and reconciles its line
// rows: live rows missing from the aggregate are soft-deleted, new lines are
// inserted, surviving lines are updated in place.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).
		Select("DeliveryDate", "Note", "TotalAmount", "TotalQuantity").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.reconcileLines(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a live delivery by ID with its live lines.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("delivery_lines.created_at") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCustomer retrieves all live deliveries of a customer with their
// lines, oldest first.
func (r *GormDeliveryRepository) GetByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("delivery_lines.created_at") }).
		Order("delivery_date").
		Find(&dtos, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

// Delete soft-deletes a delivery and its lines. The delivery's allocations
// are the allocation repository's concern and are deleted by the command
// handler in the same transaction.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&DeliveryLineDTO{}, "delivery_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DeliveryDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}

	return nil
}

// reconcileLines aligns the stored live line rows with the aggregate's
// current line set.
func (r *GormDeliveryRepository) reconcileLines(ctx context.Context, dto DeliveryDTO) error {
	var existing []DeliveryLineDTO
	if err := r.db.WithContext(ctx).Find(&existing, "delivery_id = ?", dto.ID).Error; err != nil {
		return err
	}

	current := make(map[uuid.UUID]struct{}, len(dto.Lines))
	stored := make(map[uuid.UUID]struct{}, len(existing))
	for _, row := range existing {
		stored[row.ID] = struct{}{}
	}

	for _, line := range dto.Lines {
		current[line.ID] = struct{}{}

		if _, ok := stored[line.ID]; ok {
			err := r.db.WithContext(ctx).Model(&DeliveryLineDTO{}).Where("id = ?", line.ID).
				Select("ProductName", "UnitPrice", "Quantity").Updates(&line).Error
			if err != nil {
				return err
			}
			continue
		}

		line := line
		if err := r.db.WithContext(ctx).Create(&line).Error; err != nil {
			return err
		}
	}

	for _, row := range existing {
		if _, ok := current[row.ID]; ok {
			continue
		}
		if err := r.db.WithContext(ctx).Delete(&DeliveryLineDTO{}, "id = ?", row.ID).Error; err != nil {
			return err
		}
	}

	return nil
}
