package dues

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func statDue(typ DueType, status DueStatus, dayOffset int, amount string) FinancialDue {
	source := DueSourceAccountPayable
	if typ == DueTypeReceivable {
		source = DueSourceAccountReceivable
	}
	return FinancialDue{
		Type:    typ,
		Source:  source,
		Status:  status,
		DueDate: testToday.AddDate(0, 0, dayOffset),
		Amount:  decimal.RequireFromString(amount),
	}
}

func TestComputeStats_Buckets(t *testing.T) {
	list := []FinancialDue{
		statDue(DueTypeReceivable, DueStatusPending, 0, "500"),
		statDue(DueTypePayable, DueStatusOverdue, -4, "2000"),
		statDue(DueTypePayable, DueStatusPending, 3, "100"),
	}

	s := ComputeStats(list, testToday)

	assert.Equal(t, 1, s.DueToday.Count)
	assert.True(t, decimal.NewFromInt(500).Equal(s.DueToday.Amount))
	assert.Equal(t, 1, s.Overdue.Count)
	assert.True(t, decimal.NewFromInt(2000).Equal(s.Overdue.Amount))
	assert.Equal(t, 2, s.DueThisWeek.Count)
	assert.True(t, decimal.NewFromInt(600).Equal(s.DueThisWeek.Amount))
	assert.Equal(t, 1, s.Receivables.Count)
	assert.True(t, decimal.NewFromInt(500).Equal(s.Receivables.Amount))
	assert.Equal(t, 1, s.Payables.Count)
	assert.True(t, decimal.NewFromInt(100).Equal(s.Payables.Amount))
}

func TestComputeStats_WeekWindowEdges(t *testing.T) {
	list := []FinancialDue{
		statDue(DueTypePayable, DueStatusPending, 7, "10"),
		statDue(DueTypePayable, DueStatusPending, 8, "20"),
		statDue(DueTypeReceivable, DueStatusReceived, 1, "40"),
		statDue(DueTypePayable, DueStatusPaid, 0, "80"),
	}

	s := ComputeStats(list, testToday)

	assert.Equal(t, 1, s.DueThisWeek.Count)
	assert.True(t, decimal.NewFromInt(10).Equal(s.DueThisWeek.Amount))
	assert.Equal(t, 0, s.DueToday.Count)
	assert.Equal(t, 2, s.Payables.Count, "pending payables ignore the date window")
	assert.Equal(t, 0, s.Receivables.Count, "settled dues are excluded")
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, testToday)
	assert.Equal(t, 0, s.Overdue.Count)
	assert.True(t, s.Payables.Amount.IsZero())
}
