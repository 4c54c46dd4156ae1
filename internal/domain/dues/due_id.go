package dues

import (
	"fmt"
	"strconv"
	"strings"
)

// RecurrenceKind is the prefix of a synthetic recurring due id
type RecurrenceKind string

const (
	RecurrenceKindNone     RecurrenceKind = ""
	RecurrenceKindClient   RecurrenceKind = "client"
	RecurrenceKindSupplier RecurrenceKind = "supplier"
)

// DueID identifies a due within one aggregation pass.
// Direct dues reuse the origin record id. Recurring dues are synthetic:
// "{kind}-{contractID}-{year}-{month}", month 1-based without padding.
type DueID struct {
	kind     RecurrenceKind
	originID string
	year     int
	month    int
}

// NewDirectDueID wraps a native origin record id
func NewDirectDueID(originID string) DueID {
	return DueID{originID: originID}
}

// NewRecurringDueID builds the synthetic id of one monthly instance
func NewRecurringDueID(kind RecurrenceKind, contractID string, year, month int) DueID {
	return DueID{kind: kind, originID: contractID, year: year, month: month}
}

// ParseDueID parses the wire form of a due id.
// Ids starting with a recurrence prefix must carry a valid year and month.
func ParseDueID(raw string) (DueID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DueID{}, invalidDueID(raw, "empty id")
	}

	for _, kind := range []RecurrenceKind{RecurrenceKindClient, RecurrenceKindSupplier} {
		prefix := string(kind) + "-"
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		rest := strings.TrimPrefix(raw, prefix)

		monthSep := strings.LastIndex(rest, "-")
		if monthSep <= 0 {
			return DueID{}, invalidDueID(raw, "missing month")
		}
		yearSep := strings.LastIndex(rest[:monthSep], "-")
		if yearSep <= 0 {
			return DueID{}, invalidDueID(raw, "missing year")
		}

		contractID := rest[:yearSep]
		year, err := strconv.Atoi(rest[yearSep+1 : monthSep])
		if err != nil || year < 1 {
			return DueID{}, invalidDueID(raw, "bad year")
		}
		monthPart := rest[monthSep+1:]
		month, err := strconv.Atoi(monthPart)
		if err != nil || month < 1 || month > 12 || strings.HasPrefix(monthPart, "0") {
			return DueID{}, invalidDueID(raw, "bad month")
		}
		return NewRecurringDueID(kind, contractID, year, month), nil
	}

	return NewDirectDueID(raw), nil
}

func invalidDueID(raw, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidDueID, raw, reason)
}

// Kind returns the recurrence kind, empty for direct dues
func (id DueID) Kind() RecurrenceKind {
	return id.kind
}

// IsRecurring returns true for synthetic ids
func (id DueID) IsRecurring() bool {
	return id.kind != RecurrenceKindNone
}

// OriginID returns the origin record id or the contract id
func (id DueID) OriginID() string {
	return id.originID
}

// YearMonth returns the instance month of a recurring id
func (id DueID) YearMonth() (int, int) {
	return id.year, id.month
}

// IsZero returns true for the zero value
func (id DueID) IsZero() bool {
	return id.originID == ""
}

// String returns the wire form
func (id DueID) String() string {
	if !id.IsRecurring() {
		return id.originID
	}
	return fmt.Sprintf("%s-%s-%d-%d", id.kind, id.originID, id.year, id.month)
}

// MarshalText implements encoding.TextMarshaler
func (id DueID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *DueID) UnmarshalText(text []byte) error {
	parsed, err := ParseDueID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
