// Package delivery contains the delivery ledger aggregate: deliveries and
// their billed line items, with cached totals recomputed from the lines.
//
// A delivery line's quantity equals the sum of the allocations that target
// it, so lines are always built from allocation requests (grouped by product
// name) rather than entered directly.
package delivery
