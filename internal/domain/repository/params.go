package repository

// Period is a backtest look-back window.
type Period string

const (
	Period7d   Period = "7d"
	Period30d  Period = "30d"
	Period90d  Period = "90d"
	Period180d Period = "180d"
	Period365d Period = "365d"
	PeriodAll  Period = "all"
)

// Precision selects which signal confidence band the upstream returns.
type Precision string

const (
	PrecisionHigh  Precision = "high"
	PrecisionOther Precision = "other"
	PrecisionAll   Precision = "all"
)

// Periods lists the supported backtest periods in display order.
func Periods() []Period {
	return []Period{Period7d, Period30d, Period90d, Period180d, Period365d, PeriodAll}
}

// Precisions lists the supported precision levels.
func Precisions() []Precision {
	return []Precision{PrecisionHigh, PrecisionOther, PrecisionAll}
}

// HistoryHours lists the supported history time ranges.
func HistoryHours() []int {
	return []int{24, 72, 168, 720}
}

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	for _, v := range Periods() {
		if v == p {
			return true
		}
	}
	return false
}

// DefaultPeriod returns the default backtest period.
func DefaultPeriod() Period { return Period30d }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// NormalizePrecision converts raw string to a valid precision (or all).
func NormalizePrecision(s string) Precision {
	for _, v := range Precisions() {
		if string(v) == s {
			return v
		}
	}
	return PrecisionAll
}

// NormalizeHours snaps h to a supported range, defaulting to 24.
func NormalizeHours(h int) int {
	for _, v := range HistoryHours() {
		if v == h {
			return v
		}
	}
	return 24
}
