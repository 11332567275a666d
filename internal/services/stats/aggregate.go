package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"SignalDash/internal/domain/models"
)

// Aggregate merges per-symbol histories into one snapshot.
// Records are concatenated in input order without de-duplication; per-symbol
// rates come from the upstream statistics block and are not recomputed.
func Aggregate(perSymbol []models.SymbolHistory) models.HistoryAggregate {
	total := 0
	for _, h := range perSymbol {
		total += len(h.Signals)
	}

	all := make([]models.SignalRecord, 0, total)
	bySymbol := make([]models.SymbolStatistic, 0, len(perSymbol))
	for _, h := range perSymbol {
		all = append(all, h.Signals...)
		bySymbol = append(bySymbol, SymbolStat(h))
	}

	// Stable keeps first-seen order for equal rates.
	sort.SliceStable(bySymbol, func(i, j int) bool {
		return bySymbol[i].SuccessRate > bySymbol[j].SuccessRate
	})

	return models.HistoryAggregate{
		All:       all,
		PerSymbol: bySymbol,
		Overall:   Overall(all),
	}
}

// SymbolStat derives one symbol's breakdown from its upstream statistics.
func SymbolStat(h models.SymbolHistory) models.SymbolStatistic {
	avg := fromFloat(h.Statistics.AveragePnL)
	totalProfit := avg.Mul(decimal.NewFromInt(int64(h.Statistics.ExecutedSignals)))

	return models.SymbolStatistic{
		Symbol:       h.Symbol,
		TotalSignals: len(h.Signals),
		SuccessRate:  Round(h.Statistics.SuccessRate, 1),
		TotalProfit:  roundDecimal(totalProfit, 2).InexactFloat64(),
		AvgProfit:    Round(h.Statistics.AveragePnL, 2),
	}
}

// Overall computes the cross-symbol summary. Only executed records count toward
// profitability; every record counts toward TotalSignals.
func Overall(all []models.SignalRecord) models.OverallStatistic {
	executed, profitable := 0, 0
	sum := decimal.Zero
	for _, s := range all {
		if !s.Executed() {
			continue
		}
		executed++
		if s.Profitable() {
			profitable++
		}
		sum = sum.Add(fromFloat(s.PnLPercentage))
	}

	out := models.OverallStatistic{
		TotalSignals: len(all),
		SuccessRate:  Percent(profitable, executed, 1),
	}
	if executed == 0 {
		return out
	}

	totalProfit := roundDecimal(sum, 2)
	out.TotalProfitPercent = totalProfit.InexactFloat64()
	out.AvgProfitPercent = roundDecimal(totalProfit.Div(decimal.NewFromInt(int64(executed))), 2).InexactFloat64()
	return out
}
