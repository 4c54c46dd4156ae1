package dues

import (
	"time"

	"github.com/erp/obligations/internal/domain/finance"
)

// ProjectPayable maps an account payable onto a due.
// today must be a date produced by Today or DateOf.
func ProjectPayable(ap finance.AccountPayable, today time.Time) FinancialDue {
	status := DueStatusPending
	if ap.Status.IsSettled() {
		status = DueStatusPaid
	}
	dueDate := DateOf(ap.DueDate, today.Location())

	return newDue(
		NewDirectDueID(ap.ID.String()),
		DueSourceAccountPayable,
		ap.Description,
		ap.TotalAmount,
		dueDate,
		applyOverdue(status, dueDate, today),
		ap.SupplierName,
		ap,
	)
}

// ProjectReceivable maps an account receivable onto a due
func ProjectReceivable(ar finance.AccountReceivable, today time.Time) FinancialDue {
	status := DueStatusPending
	if ar.Status.IsSettled() {
		status = DueStatusReceived
	}
	dueDate := DateOf(ar.DueDate, today.Location())

	return newDue(
		NewDirectDueID(ar.ID.String()),
		DueSourceAccountReceivable,
		ar.Description,
		ar.TotalAmount,
		dueDate,
		applyOverdue(status, dueDate, today),
		ar.ClientName,
		ar,
	)
}

// ProjectPayables projects a batch in input order
func ProjectPayables(list []finance.AccountPayable, today time.Time) []FinancialDue {
	out := make([]FinancialDue, 0, len(list))
	for _, ap := range list {
		out = append(out, ProjectPayable(ap, today))
	}
	return out
}

// ProjectReceivables projects a batch in input order
func ProjectReceivables(list []finance.AccountReceivable, today time.Time) []FinancialDue {
	out := make([]FinancialDue, 0, len(list))
	for _, ar := range list {
		out = append(out, ProjectReceivable(ar, today))
	}
	return out
}

// applyOverdue turns a pending status into OVERDUE when the date has passed.
// Settled statuses are returned unchanged.
func applyOverdue(status DueStatus, dueDate, today time.Time) DueStatus {
	if status.IsSettled() {
		return status
	}
	if dueDate.Before(today) {
		return DueStatusOverdue
	}
	return DueStatusPending
}
