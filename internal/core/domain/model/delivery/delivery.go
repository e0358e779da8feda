package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery factory method.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrDeliveryDateIsRequired is returned when the delivery date is the zero time.
	ErrDeliveryDateIsRequired = errors.New("delivery date is required")

	// ErrDeliveryHasNoLines is returned when a delivery would end up without lines.
	ErrDeliveryHasNoLines = errors.New("delivery must have at least one line")
)

// LineInput is one requested line contribution before grouping. Several
// inputs for the same product collapse into a single billed delivery line.
type LineInput struct {
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Delivery is the aggregate root of the delivery ledger. It owns its billed
// lines and caches total amount and total quantity, both always recomputed
// from the lines inside the aggregate, never set from outside.
type Delivery struct {
	id            kernel.UUID
	customerID    kernel.UUID
	deliveryDate  time.Time
	note          string
	totalAmount   decimal.Decimal
	totalQuantity int
	lines         []*Line

	isConstructed bool
}

// NewDelivery creates a Delivery from ungrouped line inputs. Inputs are
// grouped by product name into billed lines with freshly generated line
// identifiers; unit prices within one product group must agree. At least one
// input is required.
func NewDelivery(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryDate time.Time,
	note string,
	inputs []LineInput,
) (*Delivery, error) {
	delivery := &Delivery{isConstructed: true}

	if err := errors.Join(
		delivery.setID(id),
		delivery.setCustomerID(customerID),
		delivery.setDeliveryDate(deliveryDate),
	); err != nil {
		return nil, err
	}
	delivery.note = note

	lines, err := groupIntoLines(inputs, nil)
	if err != nil {
		return nil, err
	}
	delivery.lines = lines
	delivery.recomputeTotals()

	return delivery, nil
}

// RestoreDelivery reconstructs a Delivery from persistence. Totals are
// recomputed from the lines rather than trusted from storage, so a delivery
// read back from the database always satisfies its own invariants.
func RestoreDelivery(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryDate time.Time,
	note string,
	lines []*Line,
) (*Delivery, error) {
	delivery := &Delivery{isConstructed: true}

	if err := errors.Join(
		delivery.setID(id),
		delivery.setCustomerID(customerID),
		delivery.setDeliveryDate(deliveryDate),
	); err != nil {
		return nil, err
	}
	delivery.note = note

	if len(lines) == 0 {
		return nil, ErrDeliveryHasNoLines
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}
	delivery.lines = lines
	delivery.recomputeTotals()

	return delivery, nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// CustomerID returns the identifier of the customer being delivered to.
func (d *Delivery) CustomerID() kernel.UUID {
	return d.customerID
}

// DeliveryDate returns the date the delivery took place.
func (d *Delivery) DeliveryDate() time.Time {
	return d.deliveryDate
}

// Note returns the free-form delivery note.
func (d *Delivery) Note() string {
	return d.note
}

// TotalAmount returns the cached sum of line amounts.
func (d *Delivery) TotalAmount() decimal.Decimal {
	return d.totalAmount
}

// TotalQuantity returns the cached sum of line quantities.
func (d *Delivery) TotalQuantity() int {
	return d.totalQuantity
}

// Lines returns the billed delivery lines.
func (d *Delivery) Lines() []*Line {
	return d.lines
}

// LineByProduct returns the billed line for the given product, if any.
func (d *Delivery) LineByProduct(productName string) (*Line, bool) {
	for _, line := range d.lines {
		if line.ProductName() == productName {
			return line, true
		}
	}
	return nil, false
}

// Reschedule changes the delivery date and note.
func (d *Delivery) Reschedule(deliveryDate time.Time, note string) error {
	if err := d.setDeliveryDate(deliveryDate); err != nil {
		return err
	}
	d.note = note
	return nil
}

// ReplaceLines rebuilds the billed lines from new inputs, used when a
// delivery is edited. Line identifiers are kept stable for products that
// survive the edit so that allocations pointing at those lines can be
// updated in place instead of being torn down and recreated.
func (d *Delivery) ReplaceLines(inputs []LineInput) error {
	existing := make(map[string]kernel.UUID, len(d.lines))
	for _, line := range d.lines {
		existing[line.ProductName()] = line.ID()
	}

	lines, err := groupIntoLines(inputs, existing)
	if err != nil {
		return err
	}
	d.lines = lines
	d.recomputeTotals()
	return nil
}

func (d *Delivery) recomputeTotals() {
	total := decimal.Zero
	quantity := 0
	for _, line := range d.lines {
		total = total.Add(line.Amount())
		quantity += line.Quantity()
	}
	d.totalAmount = total
	d.totalQuantity = quantity
}

// groupIntoLines collapses inputs by product name. reuseIDs maps product
// names to line identifiers that must be kept; products without an entry get
// a fresh identifier. Input order decides line order.
func groupIntoLines(inputs []LineInput, reuseIDs map[string]kernel.UUID) ([]*Line, error) {
	if len(inputs) == 0 {
		return nil, ErrDeliveryHasNoLines
	}

	type group struct {
		unitPrice decimal.Decimal
		quantity  int
	}
	groups := make(map[string]*group, len(inputs))
	productOrder := make([]string, 0, len(inputs))

	for _, input := range inputs {
		g, ok := groups[input.ProductName]
		if !ok {
			groups[input.ProductName] = &group{unitPrice: input.UnitPrice, quantity: input.Quantity}
			productOrder = append(productOrder, input.ProductName)
			continue
		}
		if !g.unitPrice.Equal(input.UnitPrice) {
			return nil, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
				fmt.Errorf("conflicting unit prices %s and %s for product %q",
					g.unitPrice, input.UnitPrice, input.ProductName))
		}
		g.quantity += input.Quantity
	}

	lines := make([]*Line, 0, len(productOrder))
	for _, productName := range productOrder {
		g := groups[productName]
		id, ok := reuseIDs[productName]
		if !ok {
			id = kernel.NewUUID()
		}
		line, err := NewLine(id, productName, g.unitPrice, g.quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	d.customerID = customerID
	return nil
}

func (d *Delivery) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return ErrDeliveryDateIsRequired
	}
	d.deliveryDate = deliveryDate
	return nil
}
