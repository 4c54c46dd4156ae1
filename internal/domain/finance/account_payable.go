package finance

import (
	"strings"
	"time"

	"github.com/erp/obligations/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PayableStatus is the native status vocabulary of the accounts payable store
type PayableStatus string

const (
	PayableStatusPaid    PayableStatus = "PAGO"     // Settled
	PayableStatusPending PayableStatus = "PENDENTE" // Outstanding
)

// IsSettled returns true if the payable has been paid.
// Any value other than PAGO counts as outstanding, including legacy values
// the owning service may still write.
func (s PayableStatus) IsSettled() bool {
	return s == PayableStatusPaid
}

// String returns the string representation of PayableStatus
func (s PayableStatus) String() string {
	return string(s)
}

// AccountPayable is an ad-hoc amount the organization owes to a supplier
type AccountPayable struct {
	shared.BaseAggregateRoot
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DueDate      time.Time       `json:"due_date"`
	Status       PayableStatus   `json:"status"`
	SupplierName string          `json:"supplier_name"`
	ApprovedBy   *string         `json:"approved_by,omitempty"`
	Payment      PaymentDetails  `json:"payment"`
}

// NewAccountPayable creates a new pending account payable
func NewAccountPayable(description, supplierName string, totalAmount decimal.Decimal, dueDate time.Time) (*AccountPayable, error) {
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if strings.TrimSpace(supplierName) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	return &AccountPayable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Description:       description,
		TotalAmount:       totalAmount,
		DueDate:           dueDate,
		Status:            PayableStatusPending,
		SupplierName:      supplierName,
	}, nil
}

// ApplyUpdate applies a partial update coming from the dues dispatcher.
// Only the fields set on the update are changed.
func (ap *AccountPayable) ApplyUpdate(u PayableUpdate, at time.Time) error {
	if u.IsEmpty() {
		return shared.NewDomainError("EMPTY_UPDATE", "Update does not change any field")
	}
	if u.Status != nil {
		ap.Status = *u.Status
	}
	if u.Payment != nil {
		if err := u.Payment.Validate(); err != nil {
			return err
		}
		ap.Payment = ap.Payment.Merge(*u.Payment)
	}
	ap.Touch(at)
	return nil
}

// IsPaid returns true if the payable is settled
func (ap *AccountPayable) IsPaid() bool {
	return ap.Status.IsSettled()
}
