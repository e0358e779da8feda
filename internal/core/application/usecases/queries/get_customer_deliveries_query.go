package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCustomerDeliveriesQueryIsNotConstructed = errors.New(
	"GetCustomerDeliveriesQuery must be created via NewGetCustomerDeliveriesQuery constructor",
)

// GetCustomerDeliveriesQuery retrieves a customer's live deliveries with
// their lines and cached totals.
type GetCustomerDeliveriesQuery struct { //nolint:recvcheck //using for validation
	storeID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerDeliveriesQuery creates a query for a customer's delivery list.
func NewGetCustomerDeliveriesQuery(storeID kernel.UUID, customerID kernel.UUID) (GetCustomerDeliveriesQuery, error) {
	query := GetCustomerDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setStoreID(storeID),
		query.setCustomerID(customerID),
	); err != nil {
		return GetCustomerDeliveriesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerDeliveriesQueryIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (q GetCustomerDeliveriesQuery) StoreID() kernel.UUID {
	return q.storeID
}

// CustomerID returns the customer whose deliveries are listed.
func (q GetCustomerDeliveriesQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetCustomerDeliveriesQuery) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	q.storeID = storeID
	return nil
}

func (q *GetCustomerDeliveriesQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	q.customerID = customerID
	return nil
}

// GetCustomerDeliveriesQueryResponse is one delivery in the customer's
// delivery list.
type GetCustomerDeliveriesQueryResponse struct {
	ID            kernel.UUID
	DeliveryDate  time.Time
	Note          string
	TotalAmount   decimal.Decimal
	TotalQuantity int
	Lines         []DeliveryLineReadModel
}

// DeliveryLineReadModel is one line of a listed delivery.
type DeliveryLineReadModel struct {
	ID          kernel.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}
