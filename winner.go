package histrates

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Outcome tells which use of spare cash did better over a financial year.
type Outcome string

const (
	Offset Outcome = "offset" // keeping cash in the offset account saved more interest than investing earned.
	Invest Outcome = "invest"
	Tie    Outcome = "tie"
)

// Winner compares the housing lending rate of a year with the equity return of that year.
// Differences under one basis point are a tie.
func Winner(ratePct, returnPct float64) Outcome {
	diff := returnPct - ratePct
	if math.Abs(diff) < 0.01 {
		return Tie
	}
	if diff > 0 {
		return Invest
	}
	return Offset
}

// YearOutcome is the outcome of one aligned year on a notional balance.
type YearOutcome struct {
	Year   int
	Rate   Percent
	Return Percent
	Winner Outcome
	Saved  *money.Money // interest saved by offsetting the balance for the year.
	Earned *money.Money // return earned by investing the balance for the year.
	Gap    *money.Money // how far the loser fell behind.
}

// Outcomes computes the per year winner of an aligned rate/return set, with the amounts
// at stake on balance (in the currency's minor unit, e.g. cents).
func Outcomes(al *Aligned, balance int64, currency string) ([]YearOutcome, error) {
	var res []YearOutcome
	for _, row := range al.Rows() {
		saved := money.New(pctOf(balance, row.A), currency)
		earned := money.New(pctOf(balance, row.B), currency)
		gap, err := earned.Subtract(saved)
		if err != nil {
			return nil, fmt.Errorf("cannot compare outcomes of %d: %w", row.Year, err)
		}
		res = append(res, YearOutcome{
			Year:   row.Year,
			Rate:   Percent(row.A),
			Return: Percent(row.B),
			Winner: Winner(row.A, row.B),
			Saved:  saved,
			Earned: earned,
			Gap:    gap.Absolute(),
		})
	}
	return res, nil
}

// pctOf returns pct percent of amount, rounded to the minor unit.
func pctOf(amount int64, pct float64) int64 {
	return int64(math.Round(float64(amount) * pct / 100))
}

// MinorUnits converts a whole amount of currency into its minor unit, e.g. dollars to cents.
func MinorUnits(amount int64, currency string) (int64, error) {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return 0, fmt.Errorf("unknown currency %q", currency)
	}
	factor, err := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	if err != nil {
		return 0, fmt.Errorf("invalid fraction for currency %q: %w", currency, err)
	}
	return decimal.NewFromInt(amount).Mul(factor).IntPart(), nil
}
