package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSyncOrderStatusCommandIsNotConstructed = errors.New(
	"SyncOrderStatusCommand must be created via NewSyncOrderStatusCommand constructor",
)

// SyncOrderStatusCommand requests a re-derivation of one order's cached
// completion status from its live allocations.
type SyncOrderStatusCommand struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncOrderStatusCommand creates a command to sync an order's status.
func NewSyncOrderStatusCommand(storeID kernel.UUID, orderID kernel.UUID) (SyncOrderStatusCommand, error) {
	command := SyncOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setStoreID(storeID),
		command.setOrderID(orderID),
	); err != nil {
		return SyncOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrderStatusCommandIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (c SyncOrderStatusCommand) StoreID() kernel.UUID {
	return c.storeID
}

// OrderID returns the order whose status is re-derived.
func (c SyncOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *SyncOrderStatusCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *SyncOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
