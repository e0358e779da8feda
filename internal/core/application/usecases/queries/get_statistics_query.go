package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetStatisticsQueryIsNotConstructed = errors.New(
	"GetStatisticsQuery must be created via NewGetStatisticsQuery constructor",
)

// GetStatisticsQuery retrieves a customer's cached statistics, recomputing
// them first when the cached row is absent or stale.
type GetStatisticsQuery struct { //nolint:recvcheck //using for validation
	storeID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStatisticsQuery creates a query for a customer's statistics.
func NewGetStatisticsQuery(storeID kernel.UUID, customerID kernel.UUID) (GetStatisticsQuery, error) {
	query := GetStatisticsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setStoreID(storeID),
		query.setCustomerID(customerID),
	); err != nil {
		return GetStatisticsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (q GetStatisticsQuery) StoreID() kernel.UUID {
	return q.storeID
}

// CustomerID returns the customer whose statistics are read.
func (q GetStatisticsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetStatisticsQuery) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	q.storeID = storeID
	return nil
}

func (q *GetStatisticsQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	q.customerID = customerID
	return nil
}

// GetStatisticsQueryResponse reports a customer's statistics: average
// fulfillment lead time in whole days, cumulative sales, and when the row
// was last recomputed.
type GetStatisticsQueryResponse struct {
	CustomerID      kernel.UUID
	AverageLeadTime int
	TotalSales      decimal.Decimal
	UpdatedAt       time.Time
}
