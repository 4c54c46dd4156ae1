package dues

import "fmt"

// DueType is the direction of money flow
type DueType string

const (
	DueTypeReceivable DueType = "RECEIVABLE"
	DueTypePayable    DueType = "PAYABLE"
)

// IsValid checks if the due type is valid
func (t DueType) IsValid() bool {
	return t == DueTypeReceivable || t == DueTypePayable
}

// String returns the string representation of DueType
func (t DueType) String() string {
	return string(t)
}

// DueSource identifies which origin store a due was projected from
type DueSource string

const (
	DueSourceAccountPayable    DueSource = "ACCOUNT_PAYABLE"
	DueSourceAccountReceivable DueSource = "ACCOUNT_RECEIVABLE"
	DueSourceSupplierRecurring DueSource = "SUPPLIER_RECURRING"
	DueSourceClientRecurring   DueSource = "CLIENT_RECURRING"
)

// dueSourceCount is the number of sources every exhaustive switch handles.
// Adding a source to AllDueSources without bumping this fails to compile.
const dueSourceCount = 4

// AllDueSources lists the sources in aggregation order
var AllDueSources = [dueSourceCount]DueSource{
	DueSourceAccountPayable,
	DueSourceAccountReceivable,
	DueSourceSupplierRecurring,
	DueSourceClientRecurring,
}

// IsValid checks if the source is one of the known sources
func (s DueSource) IsValid() bool {
	for _, known := range AllDueSources {
		if s == known {
			return true
		}
	}
	return false
}

// String returns the string representation of DueSource
func (s DueSource) String() string {
	return string(s)
}

// Type returns the money direction implied by the source
func (s DueSource) Type() DueType {
	switch s {
	case DueSourceAccountPayable, DueSourceSupplierRecurring:
		return DueTypePayable
	case DueSourceAccountReceivable, DueSourceClientRecurring:
		return DueTypeReceivable
	default:
		mustBeKnownSource(s)
		return ""
	}
}

// IsRecurring returns true for sources expanded from contracts
func (s DueSource) IsRecurring() bool {
	return s == DueSourceSupplierRecurring || s == DueSourceClientRecurring
}

// mustBeKnownSource panics on a source no switch handles.
// Reaching it means a source was added without updating every switch.
func mustBeKnownSource(s DueSource) {
	panic(fmt.Sprintf("dues: unhandled due source %q", string(s)))
}

// DueStatus is the unified status of a due
type DueStatus string

const (
	DueStatusPending  DueStatus = "PENDING"
	DueStatusOverdue  DueStatus = "OVERDUE"
	DueStatusPaid     DueStatus = "PAID"
	DueStatusReceived DueStatus = "RECEIVED"
)

// IsValid checks if the status is a known value
func (s DueStatus) IsValid() bool {
	switch s {
	case DueStatusPending, DueStatusOverdue, DueStatusPaid, DueStatusReceived:
		return true
	}
	return false
}

// IsSettled returns true for statuses that win over the overdue computation
func (s DueStatus) IsSettled() bool {
	return s == DueStatusPaid || s == DueStatusReceived
}

// IsSettable returns true for statuses a caller may request through SetStatus.
// OVERDUE is always derived from dates.
func (s DueStatus) IsSettable() bool {
	return s == DueStatusPending || s == DueStatusPaid || s == DueStatusReceived
}

// String returns the string representation of DueStatus
func (s DueStatus) String() string {
	return string(s)
}
