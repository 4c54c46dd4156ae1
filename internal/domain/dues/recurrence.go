package dues

import (
	"fmt"
	"time"

	"github.com/erp/obligations/internal/domain/finance"
)

// DefaultHorizonMonths is the number of monthly instances generated per contract
const DefaultHorizonMonths = 6

// defaultDueDay is used when a contract has no day-of-month
const defaultDueDay = 1

// ExpandSupplier generates the monthly payable instances of a supplier contract
// for the months [0, horizon) starting at now's month.
// Supplier instances are never inferred settled.
func ExpandSupplier(s finance.Supplier, now time.Time, horizon int) []FinancialDue {
	if !s.HasBillableRecurrence() {
		return nil
	}
	today := Today(now)
	amount := *s.MonthlyValue
	description := fmt.Sprintf("Monthly supply - %s", s.Name)

	out := make([]FinancialDue, 0, normalizeHorizon(horizon))
	for _, dueDate := range monthlyDueDates(today, s.PaymentDay, horizon) {
		out = append(out, newDue(
			NewRecurringDueID(RecurrenceKindSupplier, s.ID.String(), dueDate.Year(), int(dueDate.Month())),
			DueSourceSupplierRecurring,
			description,
			amount,
			dueDate,
			applyOverdue(DueStatusPending, dueDate, today),
			s.Name,
			s,
		))
	}
	return out
}

// ExpandClient generates the monthly receivable instances of a client contract.
// An instance in the same month as the last payment is RECEIVED.
func ExpandClient(c finance.ClientContract, now time.Time, horizon int) []FinancialDue {
	if !c.HasBillableRecurrence() {
		return nil
	}
	today := Today(now)
	amount := *c.MonthlyValue
	description := fmt.Sprintf("Monthly fee - %s", c.ClientName)

	out := make([]FinancialDue, 0, normalizeHorizon(horizon))
	for _, dueDate := range monthlyDueDates(today, c.PaymentDay, horizon) {
		status := DueStatusPending
		if c.PaidInMonth(dueDate) {
			status = DueStatusReceived
		}
		out = append(out, newDue(
			NewRecurringDueID(RecurrenceKindClient, c.ID.String(), dueDate.Year(), int(dueDate.Month())),
			DueSourceClientRecurring,
			description,
			amount,
			dueDate,
			applyOverdue(status, dueDate, today),
			c.ClientName,
			c,
		))
	}
	return out
}

// ExpandSuppliers expands a batch in input order
func ExpandSuppliers(list []finance.Supplier, now time.Time, horizon int) []FinancialDue {
	var out []FinancialDue
	for _, s := range list {
		out = append(out, ExpandSupplier(s, now, horizon)...)
	}
	return out
}

// ExpandClients expands a batch in input order
func ExpandClients(list []finance.ClientContract, now time.Time, horizon int) []FinancialDue {
	var out []FinancialDue
	for _, c := range list {
		out = append(out, ExpandClient(c, now, horizon)...)
	}
	return out
}

func normalizeHorizon(horizon int) int {
	if horizon <= 0 {
		return DefaultHorizonMonths
	}
	return horizon
}

// monthlyDueDates returns one date per month starting at today's month.
// A day past the end of a month is clamped to the month's last day.
func monthlyDueDates(today time.Time, day *int, horizon int) []time.Time {
	dueDay := defaultDueDay
	if day != nil && *day >= 1 {
		dueDay = *day
	}

	horizon = normalizeHorizon(horizon)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	dates := make([]time.Time, 0, horizon)
	for offset := 0; offset < horizon; offset++ {
		month := first.AddDate(0, offset, 0)
		d := dueDay
		if last := daysIn(month); d > last {
			d = last
		}
		dates = append(dates, time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, today.Location()))
	}
	return dates
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
