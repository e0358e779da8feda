package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
// Loaded aggregates carry live lines only; soft-deleted line rows stay in
// the table but never surface.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database and reconciles its line
// rows: live rows missing from the aggregate are soft-deleted, new lines are
// inserted, surviving lines are updated in place.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).
		Select("OrderDate", "Note", "Status").Updates(&dto)
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

// Get retrieves a live order by ID with its live lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.created_at") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByLineIDs retrieves the live orders owning the given live line IDs.
// With lock set, the matched line rows are locked FOR UPDATE for the rest of
// the transaction; the admission check of a delivery transaction depends on
// this to keep remaining-quantity reads and allocation writes serialized.
func (r *GormOrderRepository) GetByLineIDs(
	ctx context.Context,
	lineIDs []kernel.UUID,
	lock bool,
) ([]*order.Order, error) {
	if len(lineIDs) == 0 {
		return []*order.Order{}, nil
	}

	raw := make([]uuid.UUID, 0, len(lineIDs))
	for _, id := range lineIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var lineRows []OrderLineDTO
	if err := query.Where("id IN ?", raw).Find(&lineRows).Error; err != nil {
		return nil, err
	}

	orderIDs := make([]uuid.UUID, 0, len(lineRows))
	seen := make(map[uuid.UUID]struct{}, len(lineRows))
	for _, row := range lineRows {
		if _, ok := seen[row.OrderID]; ok {
			continue
		}
		seen[row.OrderID] = struct{}{}
		orderIDs = append(orderIDs, row.OrderID)
	}
	if len(orderIDs) == 0 {
		return []*order.Order{}, nil
	}

	return r.loadMany(ctx, "id IN ?", orderIDs)
}

// GetByCustomer retrieves all live orders of a customer with their lines,
// oldest first.
func (r *GormOrderRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	return r.loadMany(ctx, "customer_id = ?", customerID.Bytes())
}

// Delete soft-deletes an order and its lines.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&OrderLineDTO{}, "order_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// AddStatusChange appends an audit record for a cached-status transition.
func (r *GormOrderRepository) AddStatusChange(ctx context.Context, change *order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	dto := changeFromDomain(change)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOrderRepository) loadMany(ctx context.Context, cond string, arg any) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.created_at") }).
		Order("order_date").
		Find(&dtos, cond, arg).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// reconcileLines aligns the stored live line rows with the aggregate's
// current line set.
func (r *GormOrderRepository) reconcileLines(ctx context.Context, dto OrderDTO) error {
	var existing []OrderLineDTO
	if err := r.db.WithContext(ctx).Find(&existing, "order_id = ?", dto.ID).Error; err != nil {
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
			err := r.db.WithContext(ctx).Model(&OrderLineDTO{}).Where("id = ?", line.ID).
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
		if err := r.db.WithContext(ctx).Delete(&OrderLineDTO{}, "id = ?", row.ID).Error; err != nil {
			return err
		}
	}

	return nil
}
