// Package order contains the order ledger aggregate: orders, their line
// items, the cached completion status with its audit trail, and the derived
// per-line fulfillment statuses.
//
// The aggregate deliberately knows nothing about deliveries. How much of a
// line has been delivered lives in the allocation aggregate and is derived by
// the fulfillment calculator; this package only receives the result through
// ChangeStatus.
package order
