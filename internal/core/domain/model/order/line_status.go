package order

// LineStatus represents the fulfillment state of a single order line.
// It is always derived from allocation records and never stored.
type LineStatus int

const (
	// LineStatusUnknown represents an invalid or undefined line status.
	LineStatusUnknown LineStatus = iota

	// NotDelivered (未納品) means no units of the line have been delivered.
	NotDelivered

	// PartiallyDelivered (一部納品) means some but not all units have been delivered.
	PartiallyDelivered

	// FullyDelivered (完了) means delivered quantity covers the ordered quantity.
	FullyDelivered
)

// String returns the localized display name of the line status.
func (s LineStatus) String() string {
	switch s {
	case NotDelivered:
		return "未納品"
	case PartiallyDelivered:
		return "一部納品"
	case FullyDelivered:
		return "完了"
	default:
		return "Unknown"
	}
}
