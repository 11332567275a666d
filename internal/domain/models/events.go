package models

import "time"

// Dashboard event types pushed to viewers.
const (
	EventHistoryRefreshed   = "history.refreshed"
	EventBacktestStarted    = "backtest.started"
	EventBacktestQuickStats = "backtest.quick_stats"
	EventBacktestCompleted  = "backtest.completed"
	EventBacktestFailed     = "backtest.failed"
)

// DashboardEvent is a session state transition.
type DashboardEvent struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}
