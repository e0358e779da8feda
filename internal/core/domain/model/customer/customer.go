// Package customer contains the customer aggregate. Customers are the scoping
// boundary for orders, deliveries and statistics: every one of those belongs
// to exactly one customer, and every customer belongs to exactly one store.
package customer

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through NewCustomer or RestoreCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// ErrCustomerNameIsRequired is returned when the customer name is empty.
var ErrCustomerNameIsRequired = errors.New("customer name is required")

// Customer is the aggregate root scoping all fulfillment data.
type Customer struct {
	id      kernel.UUID
	storeID kernel.UUID
	name    string

	isConstructed bool
}

// NewCustomer creates a validated Customer belonging to the given store.
func NewCustomer(id kernel.UUID, storeID kernel.UUID, name string) (*Customer, error) {
	customer := &Customer{isConstructed: true}

	if err := errors.Join(
		customer.setID(id),
		customer.setStoreID(storeID),
		customer.setName(name),
	); err != nil {
		return nil, err
	}

	return customer, nil
}

// RestoreCustomer reconstructs a Customer from persistence.
func RestoreCustomer(id kernel.UUID, storeID kernel.UUID, name string) (*Customer, error) {
	return NewCustomer(id, storeID, name)
}

// Validate ensures the Customer was created through a constructor.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// StoreID returns the identifier of the store the customer belongs to.
func (c *Customer) StoreID() kernel.UUID {
	return c.storeID
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// InStore reports whether the customer belongs to the given store.
// Used for scope validation before any fulfillment mutation.
func (c *Customer) InStore(storeID kernel.UUID) bool {
	return c.storeID.IsEqual(storeID)
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	c.name = name
	return nil
}
