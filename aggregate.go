package histrates

import (
	"github.com/etnz/histrates/date"
	"github.com/shopspring/decimal"
)

// Sample is a value observed on a calendar date, before any financial year aggregation.
// A sample without a valid value stands for a missing or non-numeric cell.
type Sample struct {
	On    date.Date
	Value decimal.NullDecimal
}

// NewSample returns a valid sample.
func NewSample(on date.Date, v float64) Sample {
	return Sample{On: on, Value: decimal.NewNullDecimal(decimal.NewFromFloat(v))}
}

// AggregateFiscal averages samples per financial year.
//
// Each year holds the arithmetic mean of the valid samples dated within it, rounded to
// 2 decimal places. Years without any valid sample are left out of the series.
func AggregateFiscal(name, source string, samples []Sample) *Series {
	type acc struct {
		sum decimal.Decimal
		n   int64
	}
	byYear := make(map[date.FiscalYear]*acc)
	for _, s := range samples {
		if !s.Value.Valid || s.On.IsZero() {
			continue
		}
		fy := date.FiscalYearOf(s.On)
		a, ok := byYear[fy]
		if !ok {
			a = &acc{sum: decimal.Zero}
			byYear[fy] = a
		}
		a.sum = a.sum.Add(s.Value.Decimal)
		a.n++
	}

	series := NewSeries(name, source)
	for fy, a := range byYear {
		mean := a.sum.Div(decimal.NewFromInt(a.n)).Round(2)
		series.Set(int(fy), mean.InexactFloat64())
	}
	return series
}
