// Package statisticsrepo provides data transfer objects and mapping
// functions for the per-customer statistics cache. One row per customer,
// replaced wholesale on every recomputation.
package statisticsrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/statistics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatisticsDTO represents the database structure for the statistics cache.
type StatisticsDTO struct {
	CustomerID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	AverageLeadTime int
	TotalSales      decimal.Decimal `gorm:"type:decimal(14,2)"`
	UpdatedAt       time.Time
}

// TableName specifies the database table name for statistics rows.
func (StatisticsDTO) TableName() string {
	return "statistics"
}

func fromDomain(aggregate *statistics.Statistics) StatisticsDTO {
	return StatisticsDTO{
		CustomerID:      aggregate.CustomerID().Bytes(),
		AverageLeadTime: aggregate.AverageLeadTime(),
		TotalSales:      aggregate.TotalSales(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

func toDomain(dto StatisticsDTO) (*statistics.Statistics, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return statistics.RestoreStatistics(customerID, dto.AverageLeadTime, dto.TotalSales, dto.UpdatedAt)
}
