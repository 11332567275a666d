package stats

import (
	"math"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// Round rounds v to places decimals, halves going toward +Inf.
// The value is taken at its shortest decimal representation, so 1.005 rounds to 1.01.
func Round(v float64, places int32) float64 {
	return roundDecimal(fromFloat(v), places).InexactFloat64()
}

// fromFloat converts v to a decimal; NaN and infinities become zero.
func fromFloat(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func roundDecimal(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

// Percent returns round(part/whole*100, places), or 0 when whole is 0.
func Percent(part, whole int, places int32) float64 {
	if whole == 0 {
		return 0
	}
	d := decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(whole)))
	return roundDecimal(d, places).InexactFloat64()
}
