package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderLineRequestIsNotConstructed is returned when an OrderLineRequest
	// was not created through a constructor.
	ErrOrderLineRequestIsNotConstructed = errors.New(
		"OrderLineRequest must be created via NewOrderLineRequest constructor",
	)

	// ErrEmptyOrderLines is returned when an order command carries no lines.
	ErrEmptyOrderLines = errors.New("order must have at least one line")
)

// OrderLineRequest is one requested order line within a create or edit order
// command. On an edit, a request may reference an existing line by its
// identifier; a request without one describes a brand-new line.
type OrderLineRequest struct { //nolint:recvcheck //using for validation
	lineID      kernel.UUID
	hasLineID   bool
	productName string
	unitPrice   decimal.Decimal
	quantity    int

	guard guard.ConstructorGuard
}

// NewOrderLineRequest creates a request describing a new order line.
func NewOrderLineRequest(productName string, unitPrice decimal.Decimal, quantity int) (OrderLineRequest, error) {
	request := OrderLineRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		request.setProductName(productName),
		request.setUnitPrice(unitPrice),
		request.setQuantity(quantity),
	); err != nil {
		return OrderLineRequest{}, err
	}

	return request, nil
}

// NewExistingOrderLineRequest creates a request that references an existing
// order line by its identifier.
func NewExistingOrderLineRequest(
	lineID kernel.UUID,
	productName string,
	unitPrice decimal.Decimal,
	quantity int,
) (OrderLineRequest, error) {
	request, err := NewOrderLineRequest(productName, unitPrice, quantity)
	if err != nil {
		return OrderLineRequest{}, err
	}

	if err = lineID.Validate(); err != nil {
		return OrderLineRequest{}, err
	}
	request.lineID = lineID
	request.hasLineID = true

	return request, nil
}

// Validate ensures the request was created through a constructor.
func (r OrderLineRequest) Validate() error {
	return r.guard.Validate(ErrOrderLineRequestIsNotConstructed)
}

// LineID returns the referenced existing line identifier, when present.
func (r OrderLineRequest) LineID() (kernel.UUID, bool) {
	return r.lineID, r.hasLineID
}

// ProductName returns the requested product name.
func (r OrderLineRequest) ProductName() string {
	return r.productName
}

// UnitPrice returns the requested per-unit price.
func (r OrderLineRequest) UnitPrice() decimal.Decimal {
	return r.unitPrice
}

// Quantity returns the requested ordered quantity.
func (r OrderLineRequest) Quantity() int {
	return r.quantity
}

func (r *OrderLineRequest) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	r.productName = productName
	return nil
}

func (r *OrderLineRequest) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidError("unitPrice")
	}
	r.unitPrice = unitPrice
	return nil
}

func (r *OrderLineRequest) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxOrderLineQuantity)
	}
	r.quantity = quantity
	return nil
}

// maxOrderLineQuantity bounds a single line's ordered quantity.
const maxOrderLineQuantity = 1_000_000

// validateOrderLineRequests checks the shared line-list rules of the order
// commands: at least one line, every request built via its constructor.
func validateOrderLineRequests(lines []OrderLineRequest) error {
	if len(lines) == 0 {
		return ErrEmptyOrderLines
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}
