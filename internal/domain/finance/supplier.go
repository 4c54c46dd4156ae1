package finance

import (
	"strings"

	"github.com/erp/obligations/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Supplier is a supplier record that may carry a recurring monthly obligation.
// MonthlyValue and PaymentDay are optional; the owning service does not
// enforce that recurring suppliers have them.
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string           `json:"name"`
	Document      *string          `json:"document,omitempty"`
	IsActive      bool             `json:"is_active"`
	HasRecurrence bool             `json:"has_recurrence"`
	MonthlyValue  *decimal.Decimal `json:"monthly_value,omitempty"`
	PaymentDay    *int             `json:"payment_day,omitempty"`
}

// NewSupplier creates an active supplier without recurrence
func NewSupplier(name string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		IsActive:          true,
	}, nil
}

// SetRecurrence configures the monthly obligation
func (s *Supplier) SetRecurrence(monthlyValue decimal.Decimal, paymentDay int) error {
	if paymentDay < 1 || paymentDay > 31 {
		return shared.NewDomainError("INVALID_PAYMENT_DAY", "Payment day must be between 1 and 31")
	}
	s.HasRecurrence = true
	s.MonthlyValue = &monthlyValue
	s.PaymentDay = &paymentDay
	return nil
}

// HasBillableRecurrence reports whether the supplier produces monthly dues.
// Only presence of a non-zero value is checked; the sign is not.
func (s *Supplier) HasBillableRecurrence() bool {
	return s.IsActive && s.HasRecurrence && s.MonthlyValue != nil && !s.MonthlyValue.IsZero()
}
