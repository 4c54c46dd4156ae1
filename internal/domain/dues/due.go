package dues

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialDue is the unified view of one obligation.
// Dues are never persisted; they live for one aggregation pass.
type FinancialDue struct {
	ID           DueID           `json:"id"`
	Type         DueType         `json:"type"`
	Source       DueSource       `json:"source"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	Status       DueStatus       `json:"status"`
	Priority     Priority        `json:"priority"`
	ClientName   string          `json:"client_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	// OriginalData is the origin record or contract the due was built from
	OriginalData any `json:"original_data,omitempty"`
}

// newDue fills the fields every projection derives the same way.
// Type comes from the source so no other combination can be built.
func newDue(id DueID, source DueSource, description string, amount decimal.Decimal, dueDate time.Time, status DueStatus, counterparty string, original any) FinancialDue {
	d := FinancialDue{
		ID:           id,
		Type:         source.Type(),
		Source:       source,
		Description:  description,
		Amount:       amount,
		DueDate:      dueDate,
		Status:       status,
		Priority:     PriorityFor(amount),
		OriginalData: original,
	}
	if d.Type == DueTypePayable {
		d.SupplierName = counterparty
	} else {
		d.ClientName = counterparty
	}
	return d
}

// IsPending returns true for dues still awaiting settlement and not yet late
func (d FinancialDue) IsPending() bool {
	return d.Status == DueStatusPending
}

// Counterparty returns the client or supplier name
func (d FinancialDue) Counterparty() string {
	if d.Type == DueTypePayable {
		return d.SupplierName
	}
	return d.ClientName
}

// Filter narrows an aggregated list. Zero fields match everything.
type Filter struct {
	Type   DueType
	Status DueStatus
	Source DueSource
}

// Matches returns true if the due passes every set criterion
func (f Filter) Matches(d FinancialDue) bool {
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.Source != "" && d.Source != f.Source {
		return false
	}
	return true
}

// Apply returns the dues that match, preserving order
func (f Filter) Apply(list []FinancialDue) []FinancialDue {
	if f == (Filter{}) {
		return list
	}
	out := make([]FinancialDue, 0, len(list))
	for _, d := range list {
		if f.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the due with the given id
func Find(list []FinancialDue, id DueID) (FinancialDue, bool) {
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return FinancialDue{}, false
}
