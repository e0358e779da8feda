package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand represents a request to replace an order's date, note and
// line set. The line list fully describes the order after the edit; lines
// absent from it are removed.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	storeID   kernel.UUID
	orderID   kernel.UUID
	orderDate time.Time
	note      string
	lines     []OrderLineRequest

	guard guard.ConstructorGuard
}

// NewEditOrderCommand creates a command to edit an existing order.
func NewEditOrderCommand(
	storeID kernel.UUID,
	orderID kernel.UUID,
	orderDate time.Time,
	note string,
	lines []OrderLineRequest,
) (EditOrderCommand, error) {
	command := EditOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setStoreID(storeID),
		command.setOrderID(orderID),
		command.setOrderDate(orderDate),
		command.setLines(lines),
	); err != nil {
		return EditOrderCommand{}, err
	}
	command.note = note

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (c EditOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// OrderID returns the order being edited.
func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderDate returns the new order date.
func (c EditOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// Note returns the new order note.
func (c EditOrderCommand) Note() string {
	return c.note
}

// Lines returns the order's full line set after the edit.
func (c EditOrderCommand) Lines() []OrderLineRequest {
	return c.lines
}

func (c *EditOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *EditOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return order.ErrOrderDateIsRequired
	}
	c.orderDate = orderDate
	return nil
}

func (c *EditOrderCommand) setLines(lines []OrderLineRequest) error {
	if err := validateOrderLineRequests(lines); err != nil {
		return err
	}
	c.lines = lines
	return nil
}
