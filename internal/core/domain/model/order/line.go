package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// ErrProductNameIsRequired is returned when the product name is empty.
var ErrProductNameIsRequired = errors.New("product name is required")

// Line is a single product entry within an order: what was ordered, at which
// unit price, and in which quantity.
//
// A line that deliveries have already been allocated against is never
// quantity-mutated in place; editing such a line replaces it with a fresh
// one, preserving the old row and its allocations for history.
type Line struct {
	id          kernel.UUID
	productName string
	unitPrice   decimal.Decimal
	quantity    int

	isConstructed bool
}

// NewLine creates a validated order line.
// Quantity must be positive and unit price must not be negative.
func NewLine(id kernel.UUID, productName string, unitPrice decimal.Decimal, quantity int) (*Line, error) {
	line := &Line{isConstructed: true}

	if err := errors.Join(
		line.setID(id),
		line.setProductName(productName),
		line.setUnitPrice(unitPrice),
		line.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreLine reconstructs an order line from persistence.
func RestoreLine(id kernel.UUID, productName string, unitPrice decimal.Decimal, quantity int) (*Line, error) {
	return NewLine(id, productName, unitPrice, quantity)
}

// Validate ensures the Line was created through a constructor.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductName returns the product the line refers to.
func (l *Line) ProductName() string {
	return l.productName
}

// UnitPrice returns the per-unit price agreed at order time.
func (l *Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// Quantity returns the ordered quantity.
func (l *Line) Quantity() int {
	return l.quantity
}

// Amount returns unit price multiplied by ordered quantity.
// Sales are recognized at order time, so this is the amount that feeds
// into customer statistics.
func (l *Line) Amount() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProductName(productName string) error {
	if productName == "" {
		return ErrProductNameIsRequired
	}
	l.productName = productName
	return nil
}

func (l *Line) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%s is negative", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}
