package finance

import (
	"context"
	"time"

	"github.com/erp/obligations/internal/domain/finance"
	"github.com/erp/obligations/internal/infrastructure/logger"
	"github.com/erp/obligations/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OriginService exposes the narrow read and write operations the dues engine
// needs from the four origin stores
type OriginService struct {
	payables    finance.AccountPayableRepository
	receivables finance.AccountReceivableRepository
	suppliers   finance.SupplierRepository
	clients     finance.ClientContractRepository
	now         func() time.Time
}

// Option configures an OriginService
type Option func(*OriginService)

// WithNow overrides the time stamped on updated records
func WithNow(now func() time.Time) Option {
	return func(s *OriginService) {
		s.now = now
	}
}

// NewOriginService creates a new OriginService
func NewOriginService(
	payables finance.AccountPayableRepository,
	receivables finance.AccountReceivableRepository,
	suppliers finance.SupplierRepository,
	clients finance.ClientContractRepository,
	opts ...Option,
) *OriginService {
	s := &OriginService{
		payables:    payables,
		receivables: receivables,
		suppliers:   suppliers,
		clients:     clients,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAccountsPayable returns every account payable
func (s *OriginService) ListAccountsPayable(ctx context.Context) ([]finance.AccountPayable, error) {
	return s.payables.FindAll(ctx)
}

// ListAccountsReceivable returns every account receivable
func (s *OriginService) ListAccountsReceivable(ctx context.Context) ([]finance.AccountReceivable, error) {
	return s.receivables.FindAll(ctx)
}

// ListSuppliers returns every supplier, recurring or not
func (s *OriginService) ListSuppliers(ctx context.Context) ([]finance.Supplier, error) {
	return s.suppliers.FindAll(ctx)
}

// ListFinancialClients returns every client contract
func (s *OriginService) ListFinancialClients(ctx context.Context) ([]finance.ClientContract, error) {
	return s.clients.FindAll(ctx)
}

// UpdateAccountPayable applies a partial update to one payable.
// Repository errors are returned unwrapped.
func (s *OriginService) UpdateAccountPayable(ctx context.Context, id uuid.UUID, u finance.PayableUpdate) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "origin", "update_account_payable",
		telemetry.SpanAttrOriginID, id.String())
	defer span.End()

	ap, err := s.payables.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := ap.ApplyUpdate(u, s.now()); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.payables.SaveWithLock(ctx, ap); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Debug("account payable updated",
		zap.String("payable_id", id.String()),
		zap.String("status", ap.Status.String()),
	)
	return nil
}

// UpdateAccountReceivable applies a partial update to one receivable
func (s *OriginService) UpdateAccountReceivable(ctx context.Context, id uuid.UUID, u finance.ReceivableUpdate) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "origin", "update_account_receivable",
		telemetry.SpanAttrOriginID, id.String())
	defer span.End()

	ar, err := s.receivables.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := ar.ApplyUpdate(u, s.now()); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.receivables.SaveWithLock(ctx, ar); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Debug("account receivable updated",
		zap.String("receivable_id", id.String()),
		zap.String("status", ar.Status.String()),
	)
	return nil
}

// MarkClientPaymentReceived records a payment on a client contract
func (s *OriginService) MarkClientPaymentReceived(ctx context.Context, contractID uuid.UUID, paymentDate time.Time) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "origin", "mark_client_payment",
		telemetry.SpanAttrOriginID, contractID.String())
	defer span.End()

	c, err := s.clients.FindByID(ctx, contractID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := c.MarkPaymentReceived(paymentDate, s.now()); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.clients.SaveWithLock(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Debug("client payment recorded",
		zap.String("contract_id", contractID.String()),
		zap.Time("payment_date", paymentDate),
	)
	return nil
}

// UpdateClientContract applies a partial update to a client contract
func (s *OriginService) UpdateClientContract(ctx context.Context, contractID uuid.UUID, u finance.ClientContractUpdate) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "origin", "update_client_contract",
		telemetry.SpanAttrOriginID, contractID.String())
	defer span.End()

	c, err := s.clients.FindByID(ctx, contractID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := c.ApplyUpdate(u, s.now()); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.clients.SaveWithLock(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Debug("client contract updated",
		zap.String("contract_id", contractID.String()),
		zap.String("status", c.Status.String()),
	)
	return nil
}
