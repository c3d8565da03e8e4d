package service

import (
	"context"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/infra/observability"
	"github.com/financefusion/finance-fusion-go/internal/ledger"
	"github.com/financefusion/finance-fusion-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var viewTracer = otel.Tracer("service/views")

const (
	viewDashboard  = "dashboard"
	viewHistory    = "history"
	viewBudgets    = "budgets"
	viewComparison = "comparison"
)

// ViewService computes the derived views. Every recompute starts from a
// fresh fetch of the full transaction and budget lists; views are never
// patched incrementally, which keeps them consistent with each other by
// construction. Results are cached per user until a write invalidates
// them or the TTL expires.
type ViewService struct {
	txSource     port.TransactionSource
	budgetSource port.BudgetSource
	cache        port.Cache[any]
	metrics      *observability.Metrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewViewService creates a new view service.
func NewViewService(txSource port.TransactionSource, budgetSource port.BudgetSource, c port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *ViewService {
	return &ViewService{
		txSource:     txSource,
		budgetSource: budgetSource,
		cache:        c,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Invalidate drops every cached view for a user. Called after each write.
func (s *ViewService) Invalidate(userID string) {
	for _, view := range []string{viewDashboard, viewHistory, viewBudgets, viewComparison} {
		s.cache.Delete(view + ":" + userID)
	}
}

// fetchAll loads transactions and budgets in parallel. A failed fetch
// fails the whole recompute; the per-view methods degrade to an empty
// view so a flaky source renders as "no data" rather than an error page.
func (s *ViewService) fetchAll(ctx context.Context, userID string) ([]domain.Transaction, []domain.Budget, error) {
	var (
		txns    []domain.Transaction
		budgets []domain.Budget
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.txSource.ListTransactions(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgetSource.ListBudgets(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncrExternalError("fetch_all")
		return nil, nil, err
	}
	return txns, budgets, nil
}

// Dashboard returns the current calendar month's spend by category.
func (s *ViewService) Dashboard(ctx context.Context, userID string) (*domain.DashboardView, error) {
	ctx, span := viewTracer.Start(ctx, "ViewService.Dashboard")
	defer span.End()

	if cached, ok := s.cache.Get(viewDashboard + ":" + userID); ok {
		s.metrics.IncrCacheHit("views")
		return cached.(*domain.DashboardView), nil
	}
	s.metrics.IncrCacheMiss("views")
	s.metrics.IncrViewRecompute(viewDashboard)

	now := s.now()
	view := &domain.DashboardView{
		Month:      now.Month().String(),
		Year:       now.Year(),
		ByCategory: map[string]float64{},
	}

	txns, _, err := s.fetchAll(ctx, userID)
	if err != nil {
		s.logger.Warn("dashboard: fetch failed, serving empty view",
			zap.String("user_id", userID), zap.Error(err))
		return view, nil
	}

	window := ledger.MonthWindow(txns, now.Month(), now.Year())
	view.Total = ledger.Total(window)
	view.ByCategory = ledger.SumByCategory(window)

	s.cache.Set(viewDashboard+":"+userID, view)
	return view, nil
}

// History returns the year to month to transactions hierarchy with the
// current year pre-expanded.
func (s *ViewService) History(ctx context.Context, userID string) (*domain.HistoryView, error) {
	ctx, span := viewTracer.Start(ctx, "ViewService.History")
	defer span.End()

	if cached, ok := s.cache.Get(viewHistory + ":" + userID); ok {
		s.metrics.IncrCacheHit("views")
		return cached.(*domain.HistoryView), nil
	}
	s.metrics.IncrCacheMiss("views")
	s.metrics.IncrViewRecompute(viewHistory)

	now := s.now()
	view := &domain.HistoryView{
		Years:        map[int]domain.YearGroup{},
		YearOrder:    []int{},
		ExpandedYear: ledger.DefaultExpansion(now),
	}

	txns, _, err := s.fetchAll(ctx, userID)
	if err != nil {
		s.logger.Warn("history: fetch failed, serving empty view",
			zap.String("user_id", userID), zap.Error(err))
		return view, nil
	}

	view.Years = ledger.GroupByYear(txns)
	view.YearOrder = ledger.SortedYears(view.Years)

	s.cache.Set(viewHistory+":"+userID, view)
	return view, nil
}

// Budgets returns the per-category variance table for the current month.
func (s *ViewService) Budgets(ctx context.Context, userID string) (*domain.BudgetView, error) {
	ctx, span := viewTracer.Start(ctx, "ViewService.Budgets")
	defer span.End()

	if cached, ok := s.cache.Get(viewBudgets + ":" + userID); ok {
		s.metrics.IncrCacheHit("views")
		return cached.(*domain.BudgetView), nil
	}
	s.metrics.IncrCacheMiss("views")
	s.metrics.IncrViewRecompute(viewBudgets)

	now := s.now()
	view := &domain.BudgetView{
		Month:      now.Month().String(),
		Year:       now.Year(),
		Categories: ledger.Variance(nil, nil),
	}

	txns, budgets, err := s.fetchAll(ctx, userID)
	if err != nil {
		s.logger.Warn("budgets: fetch failed, serving empty view",
			zap.String("user_id", userID), zap.Error(err))
		return view, nil
	}

	window := ledger.MonthWindow(txns, now.Month(), now.Year())
	view.Categories = ledger.Variance(ledger.SumByCategorySeeded(window), budgets)

	s.cache.Set(viewBudgets+":"+userID, view)
	return view, nil
}

// Comparison puts the current month's spend per category next to the
// previous calendar month's.
func (s *ViewService) Comparison(ctx context.Context, userID string) (*domain.ComparisonView, error) {
	ctx, span := viewTracer.Start(ctx, "ViewService.Comparison")
	defer span.End()

	if cached, ok := s.cache.Get(viewComparison + ":" + userID); ok {
		s.metrics.IncrCacheHit("views")
		return cached.(*domain.ComparisonView), nil
	}
	s.metrics.IncrCacheMiss("views")
	s.metrics.IncrViewRecompute(viewComparison)

	view := &domain.ComparisonView{Rows: []domain.ComparisonRow{}}

	txns, _, err := s.fetchAll(ctx, userID)
	if err != nil {
		s.logger.Warn("comparison: fetch failed, serving empty view",
			zap.String("user_id", userID), zap.Error(err))
		return view, nil
	}

	now := s.now()
	prevMonth, prevYear := ledger.PreviousMonth(now)
	current := ledger.SumByCategory(ledger.MonthWindow(txns, now.Month(), now.Year()))
	previous := ledger.SumByCategory(ledger.MonthWindow(txns, prevMonth, prevYear))
	view.Rows = ledger.Compare(current, previous)

	s.cache.Set(viewComparison+":"+userID, view)
	return view, nil
}
