package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderDateIsRequired is returned when the order date is the zero time.
	ErrOrderDateIsRequired = errors.New("order date is required")

	// ErrOrderHasNoLines is returned when an order is created without any lines.
	ErrOrderHasNoLines = errors.New("order must have at least one line")

	// ErrDuplicateLine is returned when two lines share the same identifier.
	ErrDuplicateLine = errors.New("order lines must have distinct identifiers")
)

// Order is the aggregate root of the order ledger. It owns the live
// (non-deleted) order lines and carries a cached completion status.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer reference
//   - Must have a valid order date
//   - Lines have distinct identifiers
//   - The cached status is only ever written through ChangeStatus, which is
//     driven by the fulfillment calculator, never set ad hoc
//
// Fulfillment progress itself is not part of this aggregate: allocations are
// their own aggregate, and delivered/remaining quantities are derived from
// them by the fulfillment calculator.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	orderDate  time.Time
	note       string
	status     Status
	lines      []*Line

	isConstructed bool
}

// NewOrder creates a new Order with validation. The order starts in
// Incomplete status; at least one line is required at creation time
// (an order may only become line-less later, through line soft-deletes).
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	orderDate time.Time,
	note string,
	lines []*Line,
) (*Order, error) {
	order := &Order{
		status:        Incomplete,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setOrderDate(orderDate),
	); err != nil {
		return nil, err
	}
	order.note = note

	if len(lines) == 0 {
		return nil, ErrOrderHasNoLines
	}
	if err := order.setLines(lines); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its cached
// status. Unlike NewOrder it accepts an empty line set, which arises when all
// of an order's lines have been soft-deleted.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	orderDate time.Time,
	note string,
	status Status,
	lines []*Line,
) (*Order, error) {
	order := &Order{isConstructed: true}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setOrderDate(orderDate),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	order.note = note
	order.status = status

	if err := order.setLines(lines); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// OrderDate returns the date the order was placed.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Note returns the free-form order note.
func (o *Order) Note() string {
	return o.note
}

// Status returns the cached completion status.
func (o *Order) Status() Status {
	return o.status
}

// Lines returns the live (non-deleted) order lines.
func (o *Order) Lines() []*Line {
	return o.lines
}

// Line returns the live line with the given identifier, if any.
func (o *Order) Line(lineID kernel.UUID) (*Line, bool) {
	for _, line := range o.lines {
		if line.ID().IsEqual(lineID) {
			return line, true
		}
	}
	return nil, false
}

// LineIDs returns the identifiers of all live lines.
func (o *Order) LineIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.lines))
	for _, line := range o.lines {
		ids = append(ids, line.ID())
	}
	return ids
}

// ChangeStatus sets the cached completion status. Returns true when the
// stored value actually changed, which is what decides whether the status
// sync persists anything and appends an audit record.
func (o *Order) ChangeStatus(status Status) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if o.status == status {
		return false, nil
	}
	o.status = status
	return true, nil
}

// UpdateDetails changes the order date and note.
func (o *Order) UpdateDetails(orderDate time.Time, note string) error {
	if err := o.setOrderDate(orderDate); err != nil {
		return err
	}
	o.note = note
	return nil
}

// ReplaceLines swaps the live line set for a new one. Callers are responsible
// for the allocation-aware replacement rules (a line with live allocations is
// soft-deleted and recreated rather than mutated); the aggregate only checks
// structural validity.
func (o *Order) ReplaceLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	return o.setLines(lines)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return ErrOrderDateIsRequired
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, ok := seen[line.ID()]; ok {
			return ErrDuplicateLine
		}
		seen[line.ID()] = struct{}{}
	}
	o.lines = lines
	return nil
}
