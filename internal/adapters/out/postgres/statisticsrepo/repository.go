package statisticsrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/statistics"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStatisticsRepository implements StatisticsRepository using GORM.
type GormStatisticsRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStatisticsRepository creates a new GORM statistics repository.
func NewGormStatisticsRepository(db *gorm.DB, tracker aggregateTracker) *GormStatisticsRepository {
	return &GormStatisticsRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves the cached statistics row for a customer.
func (r *GormStatisticsRepository) Get(ctx context.Context, customerID kernel.UUID) (*statistics.Statistics, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto StatisticsDTO
	if err := r.db.WithContext(ctx).First(&dto, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("statistics", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Upsert inserts or replaces the customer's statistics row.
func (r *GormStatisticsRepository) Upsert(ctx context.Context, aggregate *statistics.Statistics) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"average_lead_time", "total_sales", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.CustomerID(), aggregate)
	return nil
}
