// Package queries contains read-side operations that bypass the domain
// aggregates and read directly from storage. Responses are flat read models
// shaped for the transport layer, not domain objects.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetRemainingQuantityQueryIsNotConstructed = errors.New(
	"GetRemainingQuantityQuery must be created via NewGetRemainingQuantityQuery constructor",
)

// GetRemainingQuantityQuery retrieves how many units of one order line are
// still undelivered.
type GetRemainingQuantityQuery struct { //nolint:recvcheck //using for validation
	storeID     kernel.UUID
	orderLineID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRemainingQuantityQuery creates a query for an order line's remaining quantity.
func NewGetRemainingQuantityQuery(storeID kernel.UUID, orderLineID kernel.UUID) (GetRemainingQuantityQuery, error) {
	query := GetRemainingQuantityQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setStoreID(storeID),
		query.setOrderLineID(orderLineID),
	); err != nil {
		return GetRemainingQuantityQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRemainingQuantityQuery) Validate() error {
	return q.guard.Validate(ErrGetRemainingQuantityQueryIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (q GetRemainingQuantityQuery) StoreID() kernel.UUID {
	return q.storeID
}

// OrderLineID returns the order line being inspected.
func (q GetRemainingQuantityQuery) OrderLineID() kernel.UUID {
	return q.orderLineID
}

func (q *GetRemainingQuantityQuery) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	q.storeID = storeID
	return nil
}

func (q *GetRemainingQuantityQuery) setOrderLineID(orderLineID kernel.UUID) error {
	if err := orderLineID.Validate(); err != nil {
		return err
	}
	q.orderLineID = orderLineID
	return nil
}

// GetRemainingQuantityQueryResponse reports an order line's fulfillment
// numbers: ordered, delivered so far, and still remaining.
type GetRemainingQuantityQueryResponse struct {
	OrderLineID kernel.UUID
	Quantity    int
	Delivered   int
	Remaining   int
}
