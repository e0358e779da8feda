package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to record a new order with its lines.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	storeID    kernel.UUID
	customerID kernel.UUID
	orderDate  time.Time
	note       string
	lines      []OrderLineRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to record a new order.
// At least one line is required.
func NewCreateOrderCommand(
	storeID kernel.UUID,
	customerID kernel.UUID,
	orderDate time.Time,
	note string,
	lines []OrderLineRequest,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setStoreID(storeID),
		command.setCustomerID(customerID),
		command.setOrderDate(orderDate),
		command.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	command.note = note

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// OrderDate returns the date the order was placed.
func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// Note returns the free-form order note.
func (c CreateOrderCommand) Note() string {
	return c.note
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLineRequest {
	return c.lines
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return order.ErrOrderDateIsRequired
	}
	c.orderDate = orderDate
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineRequest) error {
	if err := validateOrderLineRequests(lines); err != nil {
		return err
	}
	c.lines = lines
	return nil
}
