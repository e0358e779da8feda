package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the cached completion state of an order.
//
// The status is derived state: it is 完了 (complete) exactly when the order
// has at least one live line and every live line is fully delivered. It is
// recomputed after every delivery create/edit/delete touching the order's
// lines, so transitions are legal in both directions (deleting a delivery
// moves a complete order back to incomplete).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Incomplete (未完了) is the status of an order with at least one live
	// line not yet fully delivered, or with no live lines at all.
	Incomplete

	// Complete (完了) is the status of an order whose live lines are all
	// fully delivered. Requires at least one live line.
	Complete
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Incomplete: "未完了",
		Complete:   "完了",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Incomplete: "未完了",
		Complete:   "完了",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Incomplete and Complete; Unknown (0) is invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the localized display name of the status:
// 未完了 for Incomplete, 完了 for Complete, "Unknown" otherwise.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
