package dues

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/obligations/internal/domain/dues"
	"github.com/erp/obligations/internal/infrastructure/logger"
	"github.com/erp/obligations/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SetStatus moves one due to status by writing to the origin that owns it.
// The due is located in a fresh aggregation, so recurring instances only
// exist while they fall inside the horizon.
func (s *DueService) SetStatus(ctx context.Context, rawID string, status dues.DueStatus, info *dues.PaymentInfo) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "dues", "set_status",
		telemetry.SpanAttrDueID, rawID,
		telemetry.SpanAttrDueStatus, status.String(),
	)
	defer span.End()

	id, err := dues.ParseDueID(rawID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if !status.IsSettable() {
		err := fmt.Errorf("%w: %q", dues.ErrInvalidStatus, status.String())
		telemetry.RecordError(span, err)
		return err
	}

	snap, err := s.aggregate(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	due, ok := dues.Find(snap.list, id)
	if !ok {
		err := fmt.Errorf("%w: %s", dues.ErrDueNotFound, id)
		s.metrics.RecordTransition(ctx, "", status.String(), telemetry.OutcomeNotFound)
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrDueSource, due.Source.String())

	wb, err := dues.PlanTransition(due, status, info, snap.now)
	if err != nil {
		outcome := telemetry.OutcomeFailed
		if errors.Is(err, dues.ErrUnsupportedTransition) {
			outcome = telemetry.OutcomeUnsupported
		}
		s.metrics.RecordTransition(ctx, due.Source.String(), status.String(), outcome)
		telemetry.RecordError(span, err)
		return err
	}

	kind, err := s.writeBack(ctx, wb)
	telemetry.SetAttributes(span, telemetry.SpanAttrWriteBack, kind)
	if err != nil {
		s.metrics.RecordTransition(ctx, due.Source.String(), status.String(), telemetry.OutcomeFailed)
		telemetry.RecordError(span, err)
		logger.L(ctx).Warn("due status write-back failed",
			zap.String("due_id", id.String()),
			zap.String("source", due.Source.String()),
			zap.String("status", status.String()),
			zap.Error(err),
		)
		return err
	}

	s.metrics.RecordTransition(ctx, due.Source.String(), status.String(), telemetry.OutcomeApplied)
	logger.L(ctx).Info("due status changed",
		zap.String("due_id", id.String()),
		zap.String("source", due.Source.String()),
		zap.String("status", status.String()),
		zap.String("write_back", kind),
	)
	return nil
}

// writeBack performs the origin call planned for a transition.
// Origin errors are returned unchanged.
func (s *DueService) writeBack(ctx context.Context, wb dues.WriteBack) (string, error) {
	switch w := wb.(type) {
	case dues.PayableWriteBack:
		return "update_account_payable", s.origins.UpdateAccountPayable(ctx, w.ID, w.Update)
	case dues.ReceivableWriteBack:
		return "update_account_receivable", s.origins.UpdateAccountReceivable(ctx, w.ID, w.Update)
	case dues.ClientPaymentWriteBack:
		return "mark_client_payment_received", s.origins.MarkClientPaymentReceived(ctx, w.ContractID, w.PaymentDate)
	case dues.ClientContractWriteBack:
		return "update_client_contract", s.origins.UpdateClientContract(ctx, w.ContractID, w.Update)
	default:
		panic(fmt.Sprintf("dues: unhandled write-back %T", wb))
	}
}
