package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery retrieves a customer's live orders with per-line
// fulfillment progress.
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	storeID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for a customer's order list.
func NewGetCustomerOrdersQuery(storeID kernel.UUID, customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	query := GetCustomerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setStoreID(storeID),
		query.setCustomerID(customerID),
	); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (q GetCustomerOrdersQuery) StoreID() kernel.UUID {
	return q.storeID
}

// CustomerID returns the customer whose orders are listed.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetCustomerOrdersQuery) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	q.storeID = storeID
	return nil
}

func (q *GetCustomerOrdersQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	q.customerID = customerID
	return nil
}

// GetCustomerOrdersQueryResponse is one order in the customer's order list.
type GetCustomerOrdersQueryResponse struct {
	ID        kernel.UUID
	OrderDate time.Time
	Note      string
	Status    string
	Lines     []OrderLineReadModel
}

// OrderLineReadModel is one line of a listed order with its fulfillment
// numbers precomputed.
type OrderLineReadModel struct {
	ID          kernel.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Delivered   int
	Remaining   int
	Status      string
}
