package ports

import "time"

// Clock supplies the current time for date stamping and staleness checks.
// Abstracted so tests can freeze time around the 24-hour statistics TTL.
type Clock interface {
	Now() time.Time
}
