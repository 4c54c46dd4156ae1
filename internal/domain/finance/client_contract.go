package finance

import (
	"strings"
	"time"

	"github.com/erp/obligations/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClientContractStatus is the native status of a financial client record
type ClientContractStatus string

const (
	ClientContractStatusActive     ClientContractStatus = "Ativo"
	ClientContractStatusDelinquent ClientContractStatus = "Inadimplente"
	ClientContractStatusInactive   ClientContractStatus = "Inativo"
	ClientContractStatusCancelled  ClientContractStatus = "Cancelado"
)

// IsValid checks if the status is a known value
func (s ClientContractStatus) IsValid() bool {
	switch s {
	case ClientContractStatusActive, ClientContractStatusDelinquent,
		ClientContractStatusInactive, ClientContractStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ClientContractStatus
func (s ClientContractStatus) String() string {
	return string(s)
}

// ClientContract is a recurring monthly billing arrangement with a client.
// LastPaymentDate is the only settlement marker the contract carries.
type ClientContract struct {
	shared.BaseAggregateRoot
	ClientName      string               `json:"client_name"`
	Status          ClientContractStatus `json:"status"`
	MonthlyValue    *decimal.Decimal     `json:"monthly_value,omitempty"`
	PaymentDay      *int                 `json:"payment_day,omitempty"`
	LastPaymentDate *time.Time           `json:"last_payment_date,omitempty"`
}

// NewClientContract creates an active client contract
func NewClientContract(clientName string, monthlyValue decimal.Decimal, paymentDay int) (*ClientContract, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if paymentDay < 1 || paymentDay > 31 {
		return nil, shared.NewDomainError("INVALID_PAYMENT_DAY", "Payment day must be between 1 and 31")
	}
	return &ClientContract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientName:        clientName,
		Status:            ClientContractStatusActive,
		MonthlyValue:      &monthlyValue,
		PaymentDay:        &paymentDay,
	}, nil
}

// IsActive returns true for contracts that are still billed.
// Delinquent clients keep generating dues.
func (c *ClientContract) IsActive() bool {
	return c.Status == ClientContractStatusActive || c.Status == ClientContractStatusDelinquent
}

// HasBillableRecurrence reports whether the contract produces monthly dues
func (c *ClientContract) HasBillableRecurrence() bool {
	return c.IsActive() && c.MonthlyValue != nil && c.MonthlyValue.IsPositive()
}

// MarkPaymentReceived records a payment on the given date
func (c *ClientContract) MarkPaymentReceived(paymentDate time.Time, at time.Time) error {
	if paymentDate.IsZero() {
		return shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date is required")
	}
	c.LastPaymentDate = &paymentDate
	if c.Status == ClientContractStatusDelinquent {
		c.Status = ClientContractStatusActive
	}
	c.Touch(at)
	return nil
}

// ApplyUpdate applies a partial update coming from the dues dispatcher
func (c *ClientContract) ApplyUpdate(u ClientContractUpdate, at time.Time) error {
	if u.IsEmpty() {
		return shared.NewDomainError("EMPTY_UPDATE", "Update does not change any field")
	}
	if u.Status != nil {
		if !u.Status.IsValid() {
			return shared.NewDomainError("INVALID_STATUS", "Unknown client contract status")
		}
		c.Status = *u.Status
	}
	if u.ClearLastPayment {
		c.LastPaymentDate = nil
	}
	c.Touch(at)
	return nil
}

// PaidInMonth reports whether the last payment falls in the calendar month of t.
// The payment date is a calendar date, so it is compared in its own location.
func (c *ClientContract) PaidInMonth(t time.Time) bool {
	if c.LastPaymentDate == nil {
		return false
	}
	lp := *c.LastPaymentDate
	return lp.Year() == t.Year() && lp.Month() == t.Month()
}
