package dues

import (
	"context"
	"slices"
	"time"

	"github.com/erp/obligations/internal/domain/dues"
	"github.com/erp/obligations/internal/domain/finance"
	"github.com/erp/obligations/internal/infrastructure/logger"
	"github.com/erp/obligations/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Origin names used in logs and metrics
const (
	OriginAccountPayables    = "account_payables"
	OriginAccountReceivables = "account_receivables"
	OriginSuppliers          = "suppliers"
	OriginClientContracts    = "client_contracts"
)

// OriginReader lists the raw records of the four origin stores
type OriginReader interface {
	ListAccountsPayable(ctx context.Context) ([]finance.AccountPayable, error)
	ListAccountsReceivable(ctx context.Context) ([]finance.AccountReceivable, error)
	ListSuppliers(ctx context.Context) ([]finance.Supplier, error)
	ListFinancialClients(ctx context.Context) ([]finance.ClientContract, error)
}

// OriginWriter performs the native write-backs of a status change
type OriginWriter interface {
	UpdateAccountPayable(ctx context.Context, id uuid.UUID, u finance.PayableUpdate) error
	UpdateAccountReceivable(ctx context.Context, id uuid.UUID, u finance.ReceivableUpdate) error
	MarkClientPaymentReceived(ctx context.Context, contractID uuid.UUID, paymentDate time.Time) error
	UpdateClientContract(ctx context.Context, contractID uuid.UUID, u finance.ClientContractUpdate) error
}

// Origins is everything the engine needs from the origin stores
type Origins interface {
	OriginReader
	OriginWriter
}

// DueService aggregates origin records into the unified dues list and
// dispatches status changes back to the owning origin
type DueService struct {
	origins     Origins
	clock       dues.Clock
	horizon     int
	readTimeout time.Duration
	metrics     *telemetry.DuesMetrics
}

// Option configures a DueService
type Option func(*DueService)

// WithHorizon sets how many months of recurring instances are generated
func WithHorizon(months int) Option {
	return func(s *DueService) {
		s.horizon = months
	}
}

// WithReadTimeout bounds each origin read. Zero leaves reads bounded only by the caller.
func WithReadTimeout(d time.Duration) Option {
	return func(s *DueService) {
		s.readTimeout = d
	}
}

// WithMetrics sets the instruments recorded by the service
func WithMetrics(m *telemetry.DuesMetrics) Option {
	return func(s *DueService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewDueService creates a new DueService
func NewDueService(origins Origins, clock dues.Clock, opts ...Option) *DueService {
	s := &DueService{
		origins: origins,
		clock:   clock,
		horizon: dues.DefaultHorizonMonths,
		metrics: telemetry.NopDuesMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot is one aggregation pass and the instant it was computed for
type snapshot struct {
	list []dues.FinancialDue
	now  time.Time
}

type originRead struct {
	origin string
	read   func(ctx context.Context, now time.Time) ([]dues.FinancialDue, error)
}

// readers returns one reader per source, in concatenation order
func (s *DueService) readers() [len(dues.AllDueSources)]originRead {
	return [len(dues.AllDueSources)]originRead{
		{OriginAccountPayables, func(ctx context.Context, now time.Time) ([]dues.FinancialDue, error) {
			list, err := s.origins.ListAccountsPayable(ctx)
			if err != nil {
				return nil, err
			}
			return dues.ProjectPayables(list, dues.Today(now)), nil
		}},
		{OriginAccountReceivables, func(ctx context.Context, now time.Time) ([]dues.FinancialDue, error) {
			list, err := s.origins.ListAccountsReceivable(ctx)
			if err != nil {
				return nil, err
			}
			return dues.ProjectReceivables(list, dues.Today(now)), nil
		}},
		{OriginSuppliers, func(ctx context.Context, now time.Time) ([]dues.FinancialDue, error) {
			list, err := s.origins.ListSuppliers(ctx)
			if err != nil {
				return nil, err
			}
			return dues.ExpandSuppliers(list, now, s.horizon), nil
		}},
		{OriginClientContracts, func(ctx context.Context, now time.Time) ([]dues.FinancialDue, error) {
			list, err := s.origins.ListFinancialClients(ctx)
			if err != nil {
				return nil, err
			}
			return dues.ExpandClients(list, now, s.horizon), nil
		}},
	}
}

// aggregate reads the four origins concurrently and merges them.
// A failed read is logged and skipped; cancellation of ctx aborts the pass.
func (s *DueService) aggregate(ctx context.Context) (snapshot, error) {
	start := time.Now()
	now := s.clock.Now()

	ctx, span := telemetry.StartServiceSpan(ctx, "dues", "aggregate",
		telemetry.SpanAttrHorizon, s.horizon)
	defer span.End()

	readers := s.readers()
	var parts [len(readers)][]dues.FinancialDue
	var failed [len(readers)]bool

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range readers {
		g.Go(func() error {
			readCtx := gctx
			if s.readTimeout > 0 {
				var cancel context.CancelFunc
				readCtx, cancel = context.WithTimeout(gctx, s.readTimeout)
				defer cancel()
			}

			list, err := r.read(readCtx, now)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed[i] = true
				s.metrics.RecordOriginUnavailable(ctx, r.origin)
				logger.L(ctx).Warn("origin unavailable, omitting its dues",
					zap.String("origin", r.origin),
					zap.Error(err),
				)
				return nil
			}
			parts[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		telemetry.RecordError(span, err)
		return snapshot{}, err
	}

	var degraded []string
	total := 0
	for i := range parts {
		total += len(parts[i])
		if failed[i] {
			degraded = append(degraded, readers[i].origin)
		}
	}
	merged := make([]dues.FinancialDue, 0, total)
	for i := range parts {
		merged = append(merged, parts[i]...)
	}
	slices.SortStableFunc(merged, func(a, b dues.FinancialDue) int {
		return a.DueDate.Compare(b.DueDate)
	})

	telemetry.SetAttributes(span,
		telemetry.SpanAttrDueCount, len(merged),
		telemetry.SpanAttrDegraded, degraded,
	)
	s.metrics.RecordAggregation(ctx, time.Since(start))

	return snapshot{list: merged, now: now}, nil
}

// ListDues returns every due across the four origins sorted by due date.
// Ties keep origin order: payables, receivables, supplier and client recurrences.
func (s *DueService) ListDues(ctx context.Context) ([]dues.FinancialDue, error) {
	snap, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}
	return snap.list, nil
}

// ListFiltered returns the dues matching filter, in the same order as ListDues
func (s *DueService) ListFiltered(ctx context.Context, filter dues.Filter) ([]dues.FinancialDue, error) {
	list, err := s.ListDues(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(list), nil
}

// GetStats computes the dashboard buckets over the full dues list
func (s *DueService) GetStats(ctx context.Context) (dues.Stats, error) {
	snap, err := s.aggregate(ctx)
	if err != nil {
		return dues.Stats{}, err
	}
	return dues.ComputeStats(snap.list, dues.Today(snap.now)), nil
}
