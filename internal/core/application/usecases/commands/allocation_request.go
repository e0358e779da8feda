package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrAllocationRequestIsNotConstructed = errors.New(
		"AllocationRequest must be created via NewAllocationRequest constructor",
	)
	ErrAllocationProductNameIsRequired = errors.New("product name is required")
)

// AllocationRequest is one requested contribution of a delivery: how many
// units of which order line it should fulfill, billed under which product
// and unit price. Requests for the same product are grouped into one
// delivery line by the delivery aggregate.
type AllocationRequest struct { //nolint:recvcheck //using for validation
	orderLineID kernel.UUID
	productName string
	unitPrice   decimal.Decimal
	quantity    int

	guard guard.ConstructorGuard
}

// NewAllocationRequest creates a validated allocation request.
// Quantity must be positive; whether it fits into the order line's remaining
// quantity is only decided inside the delivery transaction.
func NewAllocationRequest(
	orderLineID kernel.UUID,
	productName string,
	unitPrice decimal.Decimal,
	quantity int,
) (AllocationRequest, error) {
	request := AllocationRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		request.setOrderLineID(orderLineID),
		request.setProductName(productName),
		request.setUnitPrice(unitPrice),
		request.setQuantity(quantity),
	); err != nil {
		return AllocationRequest{}, err
	}

	return request, nil
}

// Validate ensures the request was created through the constructor.
func (r AllocationRequest) Validate() error {
	return r.guard.Validate(ErrAllocationRequestIsNotConstructed)
}

// OrderLineID returns the order line this request fulfills.
func (r AllocationRequest) OrderLineID() kernel.UUID {
	return r.orderLineID
}

// ProductName returns the billed product name.
func (r AllocationRequest) ProductName() string {
	return r.productName
}

// UnitPrice returns the billed per-unit price.
func (r AllocationRequest) UnitPrice() decimal.Decimal {
	return r.unitPrice
}

// Quantity returns the requested allocation quantity.
func (r AllocationRequest) Quantity() int {
	return r.quantity
}

func (r *AllocationRequest) setOrderLineID(orderLineID kernel.UUID) error {
	if err := orderLineID.Validate(); err != nil {
		return err
	}
	r.orderLineID = orderLineID
	return nil
}

func (r *AllocationRequest) setProductName(productName string) error {
	if productName == "" {
		return ErrAllocationProductNameIsRequired
	}
	r.productName = productName
	return nil
}

func (r *AllocationRequest) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%s is negative", unitPrice))
	}
	r.unitPrice = unitPrice
	return nil
}

func (r *AllocationRequest) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	r.quantity = quantity
	return nil
}
