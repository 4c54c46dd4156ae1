package finance

import (
	"time"

	"github.com/erp/obligations/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentDetails carries optional settlement metadata recorded on an origin record
type PaymentDetails struct {
	PaymentDate   *time.Time       `json:"payment_date,omitempty"`
	PaidAmount    *decimal.Decimal `json:"paid_amount,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// IsEmpty returns true if no field is set
func (p PaymentDetails) IsEmpty() bool {
	return p.PaymentDate == nil && p.PaidAmount == nil && p.PaymentMethod == nil && p.Notes == nil
}

// Validate checks the metadata that is present
func (p PaymentDetails) Validate() error {
	if p.PaidAmount != nil && p.PaidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	return nil
}

// Merge overlays the fields set on other onto p
func (p PaymentDetails) Merge(other PaymentDetails) PaymentDetails {
	if other.PaymentDate != nil {
		p.PaymentDate = other.PaymentDate
	}
	if other.PaidAmount != nil {
		p.PaidAmount = other.PaidAmount
	}
	if other.PaymentMethod != nil {
		p.PaymentMethod = other.PaymentMethod
	}
	if other.Notes != nil {
		p.Notes = other.Notes
	}
	return p
}

// PayableUpdate is a partial update of an account payable.
// Nil fields are left untouched.
type PayableUpdate struct {
	Status  *PayableStatus
	Payment *PaymentDetails
}

// IsEmpty returns true if the update changes nothing
func (u PayableUpdate) IsEmpty() bool {
	return u.Status == nil && (u.Payment == nil || u.Payment.IsEmpty())
}

// ReceivableUpdate is a partial update of an account receivable
type ReceivableUpdate struct {
	Status  *ReceivableStatus
	Payment *PaymentDetails
}

// IsEmpty returns true if the update changes nothing
func (u ReceivableUpdate) IsEmpty() bool {
	return u.Status == nil && (u.Payment == nil || u.Payment.IsEmpty())
}

// ClientContractUpdate is a partial update of a recurring client contract
type ClientContractUpdate struct {
	Status           *ClientContractStatus
	ClearLastPayment bool
}

// IsEmpty returns true if the update changes nothing
func (u ClientContractUpdate) IsEmpty() bool {
	return u.Status == nil && !u.ClearLastPayment
}
