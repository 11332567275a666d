package stats

import (
	"sort"

	"SignalDash/internal/domain/models"
	"SignalDash/pkg/util"
)

// DefaultPageSize is the signal table page size.
const DefaultPageSize = 20

// SignalQuery filters and pages the merged record set. Empty filters match all.
type SignalQuery struct {
	Symbol   string
	Status   string
	Page     int
	PageSize int
}

// SignalPage is one page of filtered records, most recent first.
type SignalPage struct {
	Records    []models.SignalRecord
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Filter returns the records matching both filters, sorted by CreatedAt descending.
// Records with equal timestamps keep their relative order.
func Filter(all []models.SignalRecord, symbol, status string) []models.SignalRecord {
	symbol = util.NormalizeSymbol(symbol)
	out := make([]models.SignalRecord, 0, len(all))
	for _, s := range all {
		if symbol != "" && s.Symbol != symbol {
			continue
		}
		if status != "" && string(s.Status) != status {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// TotalPages returns ceil(n/pageSize), at least 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Query filters, sorts and slices. An out-of-range page is clamped into [1, TotalPages].
func Query(all []models.SignalRecord, q SignalQuery) SignalPage {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	filtered := Filter(all, q.Symbol, q.Status)
	pages := TotalPages(len(filtered), q.PageSize)

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return SignalPage{
		Records:    filtered[start:end],
		Total:      len(filtered),
		Page:       page,
		PageSize:   q.PageSize,
		TotalPages: pages,
	}
}

// ViewState is a viewer's filter and page position over the current snapshot.
type ViewState struct {
	Symbol   string
	Status   string
	Page     int
	PageSize int
}

// NewViewState starts at page 1 with no filters.
func NewViewState(pageSize int) ViewState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return ViewState{Page: 1, PageSize: pageSize}
}

// SetFilters replaces the filters; changing either one resets the page to 1.
func (v *ViewState) SetFilters(symbol, status string) {
	symbol = util.NormalizeSymbol(symbol)
	if symbol != v.Symbol || status != v.Status {
		v.Page = 1
	}
	v.Symbol = symbol
	v.Status = status
}

// GoToPage moves to page p when it lies in [1, TotalPages] and reports whether it moved.
// Out-of-range requests leave the state untouched.
func (v *ViewState) GoToPage(all []models.SignalRecord, p int) bool {
	pages := TotalPages(len(Filter(all, v.Symbol, v.Status)), v.PageSize)
	if p < 1 || p > pages {
		return false
	}
	v.Page = p
	return true
}

// Current renders the page the view points at.
func (v ViewState) Current(all []models.SignalRecord) SignalPage {
	return Query(all, SignalQuery{Symbol: v.Symbol, Status: v.Status, Page: v.Page, PageSize: v.PageSize})
}
