package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRefreshStatisticsCommandIsNotConstructed = errors.New(
	"RefreshStatisticsCommand must be created via NewRefreshStatisticsCommand constructor",
)

// RefreshStatisticsCommand requests a recomputation of one customer's cached
// statistics regardless of how fresh the current row is.
type RefreshStatisticsCommand struct { //nolint:recvcheck //using for validation
	storeID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshStatisticsCommand creates a command to refresh a customer's statistics.
func NewRefreshStatisticsCommand(storeID kernel.UUID, customerID kernel.UUID) (RefreshStatisticsCommand, error) {
	command := RefreshStatisticsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setStoreID(storeID),
		command.setCustomerID(customerID),
	); err != nil {
		return RefreshStatisticsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshStatisticsCommand) Validate() error {
	return c.guard.Validate(ErrRefreshStatisticsCommandIsNotConstructed)
}

// StoreID returns the caller's store scope.
func (c RefreshStatisticsCommand) StoreID() kernel.UUID {
	return c.storeID
}

// CustomerID returns the customer whose statistics are recomputed.
func (c RefreshStatisticsCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *RefreshStatisticsCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *RefreshStatisticsCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}
