package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecalculateStatisticsCommandIsNotConstructed = errors.New(
	"RecalculateStatisticsCommand must be created via NewRecalculateStatisticsCommand constructor",
)

// RecalculateStatisticsCommand requests a forced statistics recomputation for
// every customer of a store.
type RecalculateStatisticsCommand struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecalculateStatisticsCommand creates a command to recalculate a store's statistics.
func NewRecalculateStatisticsCommand(storeID kernel.UUID) (RecalculateStatisticsCommand, error) {
	command := RecalculateStatisticsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setStoreID(storeID); err != nil {
		return RecalculateStatisticsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecalculateStatisticsCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateStatisticsCommandIsNotConstructed)
}

// StoreID returns the store whose customers are recomputed.
func (c RecalculateStatisticsCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c *RecalculateStatisticsCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}
