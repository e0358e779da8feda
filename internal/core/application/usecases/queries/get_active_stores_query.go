package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveStoresQueryIsNotConstructed = errors.New(
	"GetActiveStoresQuery must be created via NewGetActiveStoresQuery constructor",
)

// GetActiveStoresQuery retrieves the identifiers of every store that has at
// least one live customer. Used by the scheduled statistics refresh to know
// which stores to walk.
type GetActiveStoresQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveStoresQuery creates a query for the active store list.
func NewGetActiveStoresQuery() GetActiveStoresQuery {
	return GetActiveStoresQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveStoresQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveStoresQueryIsNotConstructed)
}

// GetActiveStoresQueryResponse is one active store.
type GetActiveStoresQueryResponse struct {
	StoreID kernel.UUID
}
