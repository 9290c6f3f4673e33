package economics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/cache"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/pkg/events"
	"github.com/ougirez/fieldecon/internal/pkg/logger"
	"github.com/ougirez/fieldecon/internal/pkg/metrics"
)

const (
	opTotalCost   = "total_cost"
	opTotalIncome = "total_income"
	opRecalculate = "recalculate"
	opImport      = "import"
	opBreakdown   = "breakdown"
)

type Store interface {
	GetCaseSnapshot(ctx context.Context, caseID uuid.UUID) (*domain.CaseSnapshot, error)
	SaveCaseSnapshot(ctx context.Context, snapshot *domain.CaseSnapshot) error
	GetCaseTotals(ctx context.Context, caseID uuid.UUID) (*domain.CaseTotals, error)
	SaveCaseTotals(ctx context.Context, totals *domain.CaseTotals) error
}

type Service struct {
	store     Store
	cache     cache.TotalsCache
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time

	loads singleflight.Group
}

type Option func(*Service)

func WithCache(c cache.TotalsCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewEconomicsService(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		cache:     cache.NewNop(),
		publisher: events.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) observe(op string, started time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveCalculation(op, started, err)
	}
}

func (s *Service) snapshot(ctx context.Context, caseID uuid.UUID) (*domain.CaseSnapshot, error) {
	snapshot, err := s.store.GetCaseSnapshot(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("store.GetCaseSnapshot, case_id-%s: %w", caseID, err)
	}
	return snapshot, nil
}

// CalculateTotalCost computes the total cost of a stored case without persisting it.
func (s *Service) CalculateTotalCost(ctx context.Context, caseID uuid.UUID) (ts domain.TimeSeries, err error) {
	defer func(started time.Time) { s.observe(opTotalCost, started, err) }(time.Now())

	snapshot, err := s.snapshot(ctx, caseID)
	if err != nil {
		return ts, err
	}
	return TotalCost(snapshot), nil
}

// CalculateTotalIncome computes the total income of a stored case without persisting it.
func (s *Service) CalculateTotalIncome(ctx context.Context, caseID uuid.UUID) (ts domain.TimeSeries, err error) {
	defer func(started time.Time) { s.observe(opTotalIncome, started, err) }(time.Now())

	snapshot, err := s.snapshot(ctx, caseID)
	if err != nil {
		return ts, err
	}
	return TotalIncome(snapshot), nil
}

// Breakdown resolves the sub-profiles of every category for a stored case.
func (s *Service) Breakdown(ctx context.Context, caseID uuid.UUID) (out map[Category][]SlotValue, err error) {
	defer func(started time.Time) { s.observe(opBreakdown, started, err) }(time.Now())

	snapshot, err := s.snapshot(ctx, caseID)
	if err != nil {
		return nil, err
	}

	out = make(map[Category][]SlotValue, len(categories))
	for _, c := range Categories() {
		out[c] = Breakdown(snapshot, c)
	}
	return out, nil
}

// Recalculate runs the engine on the stored case and persists every total.
// Cache and event failures are logged and do not fail the call.
func (s *Service) Recalculate(ctx context.Context, caseID uuid.UUID) (totals *domain.CaseTotals, err error) {
	ctx = logger.WithFields(ctx, "case_id", caseID.String())
	defer func(started time.Time) { s.observe(opRecalculate, started, err) }(time.Now())

	snapshot, err := s.snapshot(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, snapshot)
}

func (s *Service) persist(ctx context.Context, snapshot *domain.CaseSnapshot) (*domain.CaseTotals, error) {
	totals := Calculate(snapshot)
	totals.CalculatedAt = s.now().UTC()

	if err := s.store.SaveCaseTotals(ctx, &totals); err != nil {
		return nil, fmt.Errorf("store.SaveCaseTotals: %w", err)
	}

	if err := s.cache.Set(ctx, totals); err != nil {
		logger.Warnf(ctx, "cache.Set: %s", err.Error())
	}

	if err := s.publisher.PublishTotals(ctx, totals); err != nil {
		logger.Warnf(ctx, "publisher.PublishTotals: %s", err.Error())
	}

	logger.Infof(ctx, "recalculated totals for %d years", totals.CashFlow.Len())
	return &totals, nil
}

// ImportCase stores a complete snapshot and recalculates its totals.
func (s *Service) ImportCase(ctx context.Context, snapshot *domain.CaseSnapshot) (totals *domain.CaseTotals, err error) {
	ctx = logger.WithFields(ctx, "case_id", snapshot.Case.ID.String())
	defer func(started time.Time) { s.observe(opImport, started, err) }(time.Now())

	if err = s.store.SaveCaseSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("store.SaveCaseSnapshot: %w", err)
	}

	return s.persist(ctx, snapshot)
}

// GetTotals returns the persisted totals of a case, reading through the cache.
// A case without persisted totals is recalculated.
func (s *Service) GetTotals(ctx context.Context, caseID uuid.UUID) (*domain.CaseTotals, error) {
	cached, err := s.cache.Get(ctx, caseID)
	if err == nil {
		s.observeCache(true)
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warnf(ctx, "cache.Get, case_id-%s: %s", caseID, err.Error())
	}
	s.observeCache(false)

	v, err, _ := s.loads.Do(caseID.String(), func() (interface{}, error) {
		totals, err := s.store.GetCaseTotals(ctx, caseID)
		if errors.Is(err, constants.ErrDBNotFound) {
			return s.Recalculate(ctx, caseID)
		}
		if err != nil {
			return nil, fmt.Errorf("store.GetCaseTotals, case_id-%s: %w", caseID, err)
		}

		if err = s.cache.Set(ctx, *totals); err != nil {
			logger.Warnf(ctx, "cache.Set, case_id-%s: %s", caseID, err.Error())
		}
		return totals, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CaseTotals), nil
}

// CashFlow recomputes the cash flow from the persisted income and cost.
func (s *Service) CashFlow(ctx context.Context, caseID uuid.UUID) (domain.TimeSeries, error) {
	totals, err := s.GetTotals(ctx, caseID)
	if err != nil {
		return domain.TimeSeries{}, err
	}
	return CashFlow(totals.TotalIncome, totals.TotalCost), nil
}

func (s *Service) observeCache(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCacheAccess(hit)
	}
}
