package usecase

import (
	"sync"
	"time"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/services/stats"
)

// BacktestSnapshot is what a viewer sees of the current backtest run.
type BacktestSnapshot struct {
	Period              string
	IncludeOptimization bool
	Running             bool
	QuickStats          *models.QuickStats
	Result              *models.BacktestSummary
	Error               string
	StartedAt           time.Time
	FinishedAt          time.Time
}

// Session is one viewer's dashboard state. Snapshots are only ever replaced
// wholesale by the completion step of the cycle that produced them.
type Session struct {
	ID string

	mu          sync.RWMutex
	history     *models.HistoryAggregate
	view        stats.ViewState
	backtest    BacktestSnapshot
	backtestGen uint64
	lastSeen    time.Time
}

func newSession(id string, pageSize int, now time.Time) *Session {
	return &Session{
		ID:       id,
		view:     stats.NewViewState(pageSize),
		lastSeen: now,
	}
}

// History returns the current history snapshot, if any refresh has succeeded.
func (s *Session) History() (models.HistoryAggregate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.history == nil {
		return models.HistoryAggregate{}, false
	}
	return *s.history, true
}

// ReplaceHistory swaps in a new snapshot. Callers only pass aggregates with at least one symbol.
func (s *Session) ReplaceHistory(agg models.HistoryAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = &agg
}

// SignalsPage applies filters and page navigation to the view state and renders the page.
// page <= 0 keeps the current page; an out-of-range page is ignored.
func (s *Session) SignalsPage(symbol, status string, page int) stats.SignalPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.SignalRecord
	if s.history != nil {
		all = s.history.All
	}
	s.view.SetFilters(symbol, status)
	if page > 0 {
		s.view.GoToPage(all, page)
	}
	return s.view.Current(all)
}

// View returns the current filter and page position.
func (s *Session) View() stats.ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Backtest returns a copy of the backtest snapshot.
func (s *Session) Backtest() BacktestSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backtest
}

// BeginBacktest clears both previous results and returns the run's generation.
// Updates carrying an older generation are dropped.
func (s *Session) BeginBacktest(period string, includeOptimization bool, now time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backtestGen++
	s.backtest = BacktestSnapshot{
		Period:              period,
		IncludeOptimization: includeOptimization,
		Running:             true,
		StartedAt:           now,
	}
	return s.backtestGen
}

// SetQuickStats stores quick stats for run gen.
func (s *Session) SetQuickStats(gen uint64, q models.QuickStats) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.backtestGen {
		return false
	}
	s.backtest.QuickStats = &q
	return true
}

// CompleteBacktest stores the detailed result for run gen and ends the run.
func (s *Session) CompleteBacktest(gen uint64, r models.BacktestSummary, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.backtestGen {
		return false
	}
	s.backtest.Result = &r
	s.backtest.Running = false
	s.backtest.FinishedAt = now
	return true
}

// FailBacktest records the failure message for run gen and ends the run.
func (s *Session) FailBacktest(gen uint64, msg string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.backtestGen {
		return false
	}
	s.backtest.Error = msg
	s.backtest.Running = false
	s.backtest.FinishedAt = now
	return true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}
