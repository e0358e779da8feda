package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)

	// ErrEmptyAllocations rejects a delivery without a single allocation
	// request. A delivery that fulfills nothing must not be created.
	ErrEmptyAllocations = errors.New("at least one allocation request is required")

	// ErrDuplicateOrderLine rejects two allocation requests targeting the
	// same order line within one delivery.
	ErrDuplicateOrderLine = errors.New("each order line may appear at most once per delivery")

	ErrDeliveryDateIsRequired = errors.New("delivery date is required")
)

// CreateDeliveryCommand represents a request to record a new delivery for a
// customer, fulfilling the listed order lines.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	storeID      kernel.UUID
	customerID   kernel.UUID
	deliveryDate time.Time
	note         string
	allocations  []AllocationRequest

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to record a delivery.
// The allocation list must be non-empty, each request must be constructed,
// and no order line may be targeted twice.
func NewCreateDeliveryCommand(
	storeID kernel.UUID,
	customerID kernel.UUID,
	deliveryDate time.Time,
	note string,
	allocations []AllocationRequest,
) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setStoreID(storeID),
		command.setCustomerID(customerID),
		command.setDeliveryDate(deliveryDate),
		command.setAllocations(allocations),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}
	command.note = note

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (c CreateDeliveryCommand) StoreID() kernel.UUID {
	return c.storeID
}

// CustomerID returns the customer being delivered to.
func (c CreateDeliveryCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DeliveryDate returns the date of the delivery.
func (c CreateDeliveryCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// Note returns the free-form delivery note.
func (c CreateDeliveryCommand) Note() string {
	return c.note
}

// Allocations returns the requested allocations.
func (c CreateDeliveryCommand) Allocations() []AllocationRequest {
	return c.allocations
}

func (c *CreateDeliveryCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *CreateDeliveryCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateDeliveryCommand) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return ErrDeliveryDateIsRequired
	}
	c.deliveryDate = deliveryDate
	return nil
}

func (c *CreateDeliveryCommand) setAllocations(allocations []AllocationRequest) error {
	if err := validateAllocationRequests(allocations); err != nil {
		return err
	}
	c.allocations = allocations
	return nil
}

// validateAllocationRequests enforces the shared rules for allocation lists:
// non-empty, every request constructed, order lines distinct.
func validateAllocationRequests(allocations []AllocationRequest) error {
	if len(allocations) == 0 {
		return ErrEmptyAllocations
	}
	seen := make(map[kernel.UUID]struct{}, len(allocations))
	for _, request := range allocations {
		if err := request.Validate(); err != nil {
			return err
		}
		if _, ok := seen[request.OrderLineID()]; ok {
			return ErrDuplicateOrderLine
		}
		seen[request.OrderLineID()] = struct{}{}
	}
	return nil
}
