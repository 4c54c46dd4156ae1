package finance

import (
	"strings"
	"time"

	"github.com/erp/obligations/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceivableStatus is the native status vocabulary of the accounts receivable store
type ReceivableStatus string

const (
	ReceivableStatusReceived ReceivableStatus = "RECEBIDO"
	ReceivableStatusPending  ReceivableStatus = "PENDENTE"
)

// IsSettled returns true if the receivable has been collected
func (s ReceivableStatus) IsSettled() bool {
	return s == ReceivableStatusReceived
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// AccountReceivable is an ad-hoc amount a client owes to the organization
type AccountReceivable struct {
	shared.BaseAggregateRoot
	Description   string           `json:"description"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	DueDate       time.Time        `json:"due_date"`
	Status        ReceivableStatus `json:"status"`
	ClientName    string           `json:"client_name"`
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
	Payment       PaymentDetails   `json:"payment"`
}

// NewAccountReceivable creates a new pending account receivable
func NewAccountReceivable(description, clientName string, totalAmount decimal.Decimal, dueDate time.Time) (*AccountReceivable, error) {
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if strings.TrimSpace(clientName) == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	return &AccountReceivable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Description:       description,
		TotalAmount:       totalAmount,
		DueDate:           dueDate,
		Status:            ReceivableStatusPending,
		ClientName:        clientName,
	}, nil
}

// ApplyUpdate applies a partial update coming from the dues dispatcher
func (ar *AccountReceivable) ApplyUpdate(u ReceivableUpdate, at time.Time) error {
	if u.IsEmpty() {
		return shared.NewDomainError("EMPTY_UPDATE", "Update does not change any field")
	}
	if u.Status != nil {
		ar.Status = *u.Status
	}
	if u.Payment != nil {
		if err := u.Payment.Validate(); err != nil {
			return err
		}
		ar.Payment = ar.Payment.Merge(*u.Payment)
	}
	ar.Touch(at)
	return nil
}

// IsReceived returns true if the receivable is settled
func (ar *AccountReceivable) IsReceived() bool {
	return ar.Status.IsSettled()
}
