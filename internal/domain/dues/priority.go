package dues

import "github.com/shopspring/decimal"

// Priority is derived from a due's amount
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var (
	mediumThreshold = decimal.NewFromInt(1000)
	highThreshold   = decimal.NewFromInt(10000)
	urgentThreshold = decimal.NewFromInt(50000)
)

// PriorityFor maps an amount to its priority band.
// Bands are closed at the lower bound: 1000 is MEDIUM, 50000 is URGENT.
func PriorityFor(amount decimal.Decimal) Priority {
	switch {
	case amount.GreaterThanOrEqual(urgentThreshold):
		return PriorityUrgent
	case amount.GreaterThanOrEqual(highThreshold):
		return PriorityHigh
	case amount.GreaterThanOrEqual(mediumThreshold):
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Rank orders priorities from LOW (0) to URGENT (3)
func (p Priority) Rank() int {
	switch p {
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	default:
		return 0
	}
}

// String returns the string representation of Priority
func (p Priority) String() string {
	return string(p)
}
