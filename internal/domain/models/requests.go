package models

// Requests for the dashboard HTTP endpoints.

type RefreshHistoryRequest struct {
	Hours     int    `query:"hours" json:"hours" default:"24" validate:"oneof=24 72 168 720"`
	Precision string `query:"precision" json:"precision" default:"all" validate:"oneof=high other all"`
}

// SignalsPageRequest filters the signal table. Page 0 keeps the current page.
type SignalsPageRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"omitempty,max=32"`
	Status string `query:"status" json:"status" validate:"omitempty,oneof=pending executed expired"`
	Page   int    `query:"page" json:"page" validate:"gte=0"`
}

type RunBacktestRequest struct {
	Period              string `query:"period" json:"period" default:"30d" validate:"oneof=7d 30d 90d 180d 365d all"`
	IncludeOptimization bool   `query:"include_optimization" json:"include_optimization"`
}
