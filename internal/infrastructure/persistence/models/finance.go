package models

import (
	"time"

	"github.com/erp/obligations/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// PaymentModel holds the settlement metadata columns shared by payables and receivables
type PaymentModel struct {
	PaymentDate   *time.Time          `gorm:"type:date"`
	PaidAmount    decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	PaymentMethod *string             `gorm:"type:varchar(50)"`
	Notes         *string             `gorm:"type:text"`
}

// ToDomain converts the embedded columns to domain PaymentDetails
func (m PaymentModel) ToDomain() finance.PaymentDetails {
	p := finance.PaymentDetails{
		PaymentDate:   m.PaymentDate,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
	}
	if m.PaidAmount.Valid {
		amount := m.PaidAmount.Decimal
		p.PaidAmount = &amount
	}
	return p
}

// PaymentModelFromDomain creates the embedded columns from domain PaymentDetails
func PaymentModelFromDomain(p finance.PaymentDetails) PaymentModel {
	m := PaymentModel{
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
	if p.PaidAmount != nil {
		m.PaidAmount = decimal.NewNullDecimal(*p.PaidAmount)
	}
	return m
}

// AccountPayableModel is the persistence model for the AccountPayable aggregate root.
type AccountPayableModel struct {
	OriginModel
	Description  string                `gorm:"type:varchar(500);not null"`
	TotalAmount  decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	DueDate      time.Time             `gorm:"type:date;not null;index"`
	Status       finance.PayableStatus `gorm:"type:varchar(20);not null;default:'PENDENTE';index"`
	SupplierName string                `gorm:"type:varchar(200);not null"`
	ApprovedBy   *string               `gorm:"type:varchar(200)"`
	Payment      PaymentModel          `gorm:"embedded;embeddedPrefix:payment_"`
}

// TableName returns the table name for GORM
func (AccountPayableModel) TableName() string {
	return "account_payables"
}

// ToDomain converts the persistence model to a domain AccountPayable entity.
func (m *AccountPayableModel) ToDomain() *finance.AccountPayable {
	return &finance.AccountPayable{
		BaseAggregateRoot: m.toRoot(),
		Description:       m.Description,
		TotalAmount:       m.TotalAmount,
		DueDate:           m.DueDate,
		Status:            m.Status,
		SupplierName:      m.SupplierName,
		ApprovedBy:        m.ApprovedBy,
		Payment:           m.Payment.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain AccountPayable entity.
func (m *AccountPayableModel) FromDomain(ap *finance.AccountPayable) {
	m.fromRoot(ap.BaseAggregateRoot)
	m.Description = ap.Description
	m.TotalAmount = ap.TotalAmount
	m.DueDate = ap.DueDate
	m.Status = ap.Status
	m.SupplierName = ap.SupplierName
	m.ApprovedBy = ap.ApprovedBy
	m.Payment = PaymentModelFromDomain(ap.Payment)
}

// AccountPayableModelFromDomain creates a new persistence model from a domain AccountPayable.
func AccountPayableModelFromDomain(ap *finance.AccountPayable) *AccountPayableModel {
	m := &AccountPayableModel{}
	m.FromDomain(ap)
	return m
}

// AccountReceivableModel is the persistence model for the AccountReceivable aggregate root.
type AccountReceivableModel struct {
	OriginModel
	Description   string                   `gorm:"type:varchar(500);not null"`
	TotalAmount   decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	DueDate       time.Time                `gorm:"type:date;not null;index"`
	Status        finance.ReceivableStatus `gorm:"type:varchar(20);not null;default:'PENDENTE';index"`
	ClientName    string                   `gorm:"type:varchar(200);not null"`
	InvoiceNumber *string                  `gorm:"type:varchar(50)"`
	Payment       PaymentModel             `gorm:"embedded;embeddedPrefix:payment_"`
}

// TableName returns the table name for GORM
func (AccountReceivableModel) TableName() string {
	return "account_receivables"
}

// ToDomain converts the persistence model to a domain AccountReceivable entity.
func (m *AccountReceivableModel) ToDomain() *finance.AccountReceivable {
	return &finance.AccountReceivable{
		BaseAggregateRoot: m.toRoot(),
		Description:       m.Description,
		TotalAmount:       m.TotalAmount,
		DueDate:           m.DueDate,
		Status:            m.Status,
		ClientName:        m.ClientName,
		InvoiceNumber:     m.InvoiceNumber,
		Payment:           m.Payment.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain AccountReceivable entity.
func (m *AccountReceivableModel) FromDomain(ar *finance.AccountReceivable) {
	m.fromRoot(ar.BaseAggregateRoot)
	m.Description = ar.Description
	m.TotalAmount = ar.TotalAmount
	m.DueDate = ar.DueDate
	m.Status = ar.Status
	m.ClientName = ar.ClientName
	m.InvoiceNumber = ar.InvoiceNumber
	m.Payment = PaymentModelFromDomain(ar.Payment)
}

// AccountReceivableModelFromDomain creates a new persistence model from a domain AccountReceivable.
func AccountReceivableModelFromDomain(ar *finance.AccountReceivable) *AccountReceivableModel {
	m := &AccountReceivableModel{}
	m.FromDomain(ar)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate root.
type SupplierModel struct {
	OriginModel
	Name          string              `gorm:"type:varchar(200);not null"`
	Document      *string             `gorm:"type:varchar(30)"`
	IsActive      bool                `gorm:"not null;default:true;index"`
	HasRecurrence bool                `gorm:"not null;default:false"`
	MonthlyValue  decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	PaymentDay    *int
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *finance.Supplier {
	s := &finance.Supplier{
		BaseAggregateRoot: m.toRoot(),
		Name:              m.Name,
		Document:          m.Document,
		IsActive:          m.IsActive,
		HasRecurrence:     m.HasRecurrence,
		PaymentDay:        m.PaymentDay,
	}
	if m.MonthlyValue.Valid {
		value := m.MonthlyValue.Decimal
		s.MonthlyValue = &value
	}
	return s
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *finance.Supplier) {
	m.fromRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Document = s.Document
	m.IsActive = s.IsActive
	m.HasRecurrence = s.HasRecurrence
	m.PaymentDay = s.PaymentDay
	m.MonthlyValue = decimal.NullDecimal{}
	if s.MonthlyValue != nil {
		m.MonthlyValue = decimal.NewNullDecimal(*s.MonthlyValue)
	}
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier.
func SupplierModelFromDomain(s *finance.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}

// ClientContractModel is the persistence model for the ClientContract aggregate root.
type ClientContractModel struct {
	OriginModel
	ClientName      string                       `gorm:"type:varchar(200);not null"`
	Status          finance.ClientContractStatus `gorm:"type:varchar(20);not null;default:'Ativo';index"`
	MonthlyValue    decimal.NullDecimal          `gorm:"type:decimal(18,2)"`
	PaymentDay      *int
	LastPaymentDate *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (ClientContractModel) TableName() string {
	return "client_contracts"
}

// ToDomain converts the persistence model to a domain ClientContract entity.
func (m *ClientContractModel) ToDomain() *finance.ClientContract {
	c := &finance.ClientContract{
		BaseAggregateRoot: m.toRoot(),
		ClientName:        m.ClientName,
		Status:            m.Status,
		PaymentDay:        m.PaymentDay,
		LastPaymentDate:   m.LastPaymentDate,
	}
	if m.MonthlyValue.Valid {
		value := m.MonthlyValue.Decimal
		c.MonthlyValue = &value
	}
	return c
}

// FromDomain populates the persistence model from a domain ClientContract entity.
func (m *ClientContractModel) FromDomain(c *finance.ClientContract) {
	m.fromRoot(c.BaseAggregateRoot)
	m.ClientName = c.ClientName
	m.Status = c.Status
	m.PaymentDay = c.PaymentDay
	m.LastPaymentDate = c.LastPaymentDate
	m.MonthlyValue = decimal.NullDecimal{}
	if c.MonthlyValue != nil {
		m.MonthlyValue = decimal.NewNullDecimal(*c.MonthlyValue)
	}
}

// ClientContractModelFromDomain creates a new persistence model from a domain ClientContract.
func ClientContractModelFromDomain(c *finance.ClientContract) *ClientContractModel {
	m := &ClientContractModel{}
	m.FromDomain(c)
	return m
}

// AllModels lists the origin-store models for auto-migration in tests and sqlite mode
func AllModels() []any {
	return []any{
		&AccountPayableModel{},
		&AccountReceivableModel{},
		&SupplierModel{},
		&ClientContractModel{},
	}
}
