package dues

import (
	"fmt"
	"time"

	"github.com/erp/obligations/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fails to compile when dueSourceCount changes, so PlanTransition gets revisited.
func _() {
	var x [1]struct{}
	_ = x[dueSourceCount-4]
}

// PaymentInfo is optional settlement metadata supplied with a status change
type PaymentInfo struct {
	PaymentDate   *time.Time       `json:"payment_date,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (p *PaymentInfo) details() *finance.PaymentDetails {
	if p == nil {
		return nil
	}
	d := finance.PaymentDetails{
		PaymentDate:   p.PaymentDate,
		PaidAmount:    p.Amount,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
	if d.IsEmpty() {
		return nil
	}
	return &d
}

// WriteBack is the single origin call a status transition resolves to
type WriteBack interface {
	isWriteBack()
}

// PayableWriteBack updates an account payable
type PayableWriteBack struct {
	ID     uuid.UUID
	Update finance.PayableUpdate
}

// ReceivableWriteBack updates an account receivable
type ReceivableWriteBack struct {
	ID     uuid.UUID
	Update finance.ReceivableUpdate
}

// ClientPaymentWriteBack records a payment on a client contract
type ClientPaymentWriteBack struct {
	ContractID  uuid.UUID
	PaymentDate time.Time
}

// ClientContractWriteBack applies a partial update to a client contract
type ClientContractWriteBack struct {
	ContractID uuid.UUID
	Update     finance.ClientContractUpdate
}

func (PayableWriteBack) isWriteBack()        {}
func (ReceivableWriteBack) isWriteBack()     {}
func (ClientPaymentWriteBack) isWriteBack()  {}
func (ClientContractWriteBack) isWriteBack() {}

// PlanTransition translates a unified status request into the native write-back
// for the due's origin. It performs no I/O.
func PlanTransition(due FinancialDue, status DueStatus, info *PaymentInfo, now time.Time) (WriteBack, error) {
	if !status.IsSettable() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}

	switch due.Source {
	case DueSourceAccountPayable:
		id, err := originUUID(due)
		if err != nil {
			return nil, err
		}
		// only PAID settles a payable; any other settable status reopens it
		native := finance.PayableStatusPending
		if status == DueStatusPaid {
			native = finance.PayableStatusPaid
		}
		return PayableWriteBack{ID: id, Update: finance.PayableUpdate{Status: &native, Payment: info.details()}}, nil

	case DueSourceAccountReceivable:
		id, err := originUUID(due)
		if err != nil {
			return nil, err
		}
		native := finance.ReceivableStatusPending
		if status == DueStatusReceived {
			native = finance.ReceivableStatusReceived
		}
		return ReceivableWriteBack{ID: id, Update: finance.ReceivableUpdate{Status: &native, Payment: info.details()}}, nil

	case DueSourceClientRecurring:
		id, err := originUUID(due)
		if err != nil {
			return nil, err
		}
		switch status {
		case DueStatusReceived:
			paymentDate := now
			if info != nil && info.PaymentDate != nil {
				paymentDate = *info.PaymentDate
			}
			return ClientPaymentWriteBack{ContractID: id, PaymentDate: paymentDate}, nil
		case DueStatusPending:
			active := finance.ClientContractStatusActive
			return ClientContractWriteBack{
				ContractID: id,
				Update:     finance.ClientContractUpdate{Status: &active, ClearLastPayment: true},
			}, nil
		default:
			return nil, unsupported(due, status)
		}

	case DueSourceSupplierRecurring:
		return nil, unsupported(due, status)

	default:
		mustBeKnownSource(due.Source)
		return nil, nil
	}
}

func unsupported(due FinancialDue, status DueStatus) error {
	return fmt.Errorf("%w: %s to %s", ErrUnsupportedTransition, due.Source, status)
}

func originUUID(due FinancialDue) (uuid.UUID, error) {
	id, err := uuid.Parse(due.ID.OriginID())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: origin id %q", ErrInvalidDueID, due.ID.OriginID())
	}
	return id, nil
}
