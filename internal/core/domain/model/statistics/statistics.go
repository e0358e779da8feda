// Package statistics contains the per-customer statistics aggregate: the
// cached average fulfillment lead time and cumulative sales, refreshed under
// a time-based staleness policy.
package statistics

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// StalenessTTL is how long a statistics row stays fresh. A row older than
// this is recomputed synchronously on the next read.
const StalenessTTL = 24 * time.Hour

var (
	// ErrStatisticsIsNotConstructed is returned when a Statistics instance was
	// not created through the NewStatistics factory method.
	ErrStatisticsIsNotConstructed = errors.New("Statistics must be created via NewStatistics constructor")

	// ErrAverageLeadTimeIsNegative is returned for a negative lead time.
	ErrAverageLeadTimeIsNegative = errors.New("average lead time must not be negative")

	// ErrTotalSalesIsNegative is returned for negative cumulative sales.
	ErrTotalSalesIsNegative = errors.New("total sales must not be negative")

	// ErrUpdatedAtIsRequired is returned when the update timestamp is zero.
	ErrUpdatedAtIsRequired = errors.New("updatedAt is required")
)

// Statistics is the cached aggregate row for one customer.
//
// totalSales is recognized at order time (sum over live lines of live
// orders); averageLeadTime is the mean, in whole days rounded up, of the
// distance from each order's date to the customer's first delivery on or
// after that date. Orders without such a delivery are excluded from the
// average.
type Statistics struct {
	customerID      kernel.UUID
	averageLeadTime int
	totalSales      decimal.Decimal
	updatedAt       time.Time

	isConstructed bool
}

// NewStatistics creates a validated statistics row.
func NewStatistics(
	customerID kernel.UUID,
	averageLeadTime int,
	totalSales decimal.Decimal,
	updatedAt time.Time,
) (*Statistics, error) {
	stats := &Statistics{isConstructed: true}

	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if averageLeadTime < 0 {
		return nil, ErrAverageLeadTimeIsNegative
	}
	if totalSales.IsNegative() {
		return nil, ErrTotalSalesIsNegative
	}
	if updatedAt.IsZero() {
		return nil, ErrUpdatedAtIsRequired
	}

	stats.customerID = customerID
	stats.averageLeadTime = averageLeadTime
	stats.totalSales = totalSales
	stats.updatedAt = updatedAt
	return stats, nil
}

// RestoreStatistics reconstructs a statistics row from persistence.
func RestoreStatistics(
	customerID kernel.UUID,
	averageLeadTime int,
	totalSales decimal.Decimal,
	updatedAt time.Time,
) (*Statistics, error) {
	return NewStatistics(customerID, averageLeadTime, totalSales, updatedAt)
}

// Validate ensures the Statistics was created through a constructor.
func (s *Statistics) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStatisticsIsNotConstructed
	}
	return nil
}

// CustomerID returns the customer the row belongs to.
func (s *Statistics) CustomerID() kernel.UUID {
	return s.customerID
}

// AverageLeadTime returns the cached average fulfillment lead time in days.
func (s *Statistics) AverageLeadTime() int {
	return s.averageLeadTime
}

// TotalSales returns the cached cumulative sales amount.
func (s *Statistics) TotalSales() decimal.Decimal {
	return s.totalSales
}

// UpdatedAt returns when the row was last recomputed.
func (s *Statistics) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsStale reports whether the row must be recomputed before it may be served.
// A row is stale once StalenessTTL has elapsed since its last update.
func (s *Statistics) IsStale(now time.Time) bool {
	return now.Sub(s.updatedAt) >= StalenessTTL
}
