package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrEditDeliveryCommandIsNotConstructed = errors.New(
	"EditDeliveryCommand must be created via NewEditDeliveryCommand constructor",
)

// EditDeliveryCommand represents a request to replace a delivery's date,
// note and allocation set. The new allocation list fully describes the
// delivery after the edit; allocations absent from it are withdrawn.
type EditDeliveryCommand struct { //nolint:recvcheck //using for validation
	storeID      kernel.UUID
	deliveryID   kernel.UUID
	deliveryDate time.Time
	note         string
	allocations  []AllocationRequest

	guard guard.ConstructorGuard
}

// NewEditDeliveryCommand creates a command to edit an existing delivery.
// The same allocation-list rules apply as on creation: non-empty and no
// order line targeted twice.
func NewEditDeliveryCommand(
	storeID kernel.UUID,
	deliveryID kernel.UUID,
	deliveryDate time.Time,
	note string,
	allocations []AllocationRequest,
) (EditDeliveryCommand, error) {
	command := EditDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setStoreID(storeID),
		command.setDeliveryID(deliveryID),
		command.setDeliveryDate(deliveryDate),
		command.setAllocations(allocations),
	); err != nil {
		return EditDeliveryCommand{}, err
	}
	command.note = note

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c EditDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrEditDeliveryCommandIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (c EditDeliveryCommand) StoreID() kernel.UUID {
	return c.storeID
}

// DeliveryID returns the delivery being edited.
func (c EditDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DeliveryDate returns the new delivery date.
func (c EditDeliveryCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// Note returns the new delivery note.
func (c EditDeliveryCommand) Note() string {
	return c.note
}

// Allocations returns the delivery's full allocation set after the edit.
func (c EditDeliveryCommand) Allocations() []AllocationRequest {
	return c.allocations
}

func (c *EditDeliveryCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *EditDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *EditDeliveryCommand) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return ErrDeliveryDateIsRequired
	}
	c.deliveryDate = deliveryDate
	return nil
}

func (c *EditDeliveryCommand) setAllocations(allocations []AllocationRequest) error {
	if err := validateAllocationRequests(allocations); err != nil {
		return err
	}
	c.allocations = allocations
	return nil
}
