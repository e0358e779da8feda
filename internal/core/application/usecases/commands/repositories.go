// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence; every fulfillment-affecting command runs inside exactly one
// unit-of-work transaction.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// AllocationRepoFactory provides access to the allocation repository within a transaction.
	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	// StatisticsRepoFactory provides access to the statistics repository within a transaction.
	StatisticsRepoFactory interface {
		StatisticsRepository() ports.StatisticsRepository
	}

	// OrderUoW manages transactions for order ledger operations.
	// Allocations are included because the line replacement and deletion
	// rules depend on what has already been delivered.
	OrderUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		AllocationRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FulfillmentUoW manages transactions for delivery create/edit/delete.
	// These operations span the customer directory, both ledgers and the
	// allocation table, and must see all of them in one transaction.
	FulfillmentUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		DeliveryRepoFactory
		AllocationRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// StatisticsUoW manages transactions for statistics recomputation, which
	// reads both ledgers and upserts the cached statistics row.
	StatisticsUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		DeliveryRepoFactory
		StatisticsRepoFactory
	}

	// StatisticsUoWFactory creates new statistics unit of work instances.
	StatisticsUoWFactory interface {
		Create() StatisticsUoW
	}
)
