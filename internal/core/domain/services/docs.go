// Package services provides domain services that derive state across
// multiple aggregates in the fulfillment system. It implements computations
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - FulfillmentCalculator: derives delivered/remaining quantities and
//     completion statuses from allocation records, and gates new allocations
//   - StatisticsCalculator: recomputes a customer's cached lead-time and
//     sales statistics from their orders and deliveries
//
// Both services are pure: they receive all inputs as arguments and perform
// no I/O, which is what lets the delivery transaction enclose the
// remaining-quantity read and the allocation write in one atomic unit.
package services
