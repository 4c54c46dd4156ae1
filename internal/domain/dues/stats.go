package dues

import (
	"time"

	"github.com/shopspring/decimal"
)

// dueThisWeekDays is the inclusive window of the due_this_week bucket
const dueThisWeekDays = 7

// Bucket is a count and amount sum over a subset of dues
type Bucket struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

func (b *Bucket) add(d FinancialDue) {
	b.Count++
	b.Amount = b.Amount.Add(d.Amount)
}

// Stats holds the five summary buckets. Buckets overlap: a pending due
// dated today counts in DueToday, DueThisWeek and its type's bucket.
type Stats struct {
	Overdue     Bucket `json:"overdue"`
	DueToday    Bucket `json:"due_today"`
	DueThisWeek Bucket `json:"due_this_week"`
	Receivables Bucket `json:"receivables"`
	Payables    Bucket `json:"payables"`
}

// ComputeStats derives the buckets from an aggregated list
func ComputeStats(list []FinancialDue, today time.Time) Stats {
	s := Stats{
		Overdue:     Bucket{Amount: decimal.Zero},
		DueToday:    Bucket{Amount: decimal.Zero},
		DueThisWeek: Bucket{Amount: decimal.Zero},
		Receivables: Bucket{Amount: decimal.Zero},
		Payables:    Bucket{Amount: decimal.Zero},
	}

	for _, d := range list {
		if d.Status == DueStatusOverdue {
			s.Overdue.add(d)
			continue
		}
		if !d.IsPending() {
			continue
		}

		days := DaysBetween(today, d.DueDate)
		if days == 0 {
			s.DueToday.add(d)
		}
		if days >= 0 && days <= dueThisWeekDays {
			s.DueThisWeek.add(d)
		}

		switch d.Type {
		case DueTypeReceivable:
			s.Receivables.add(d)
		case DueTypePayable:
			s.Payables.add(d)
		}
	}
	return s
}
