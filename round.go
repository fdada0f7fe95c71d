package histrates

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Round rounds v to 2 decimal places, half away from zero on its shortest decimal form.
//
// Percentages are rounded once, when they are computed or stored.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Percent is a value expressed in percent.
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString formats a difference with its sign. Values that round to zero read "+0.00%".
func (p Percent) SignedString() string {
	if res := fmt.Sprintf("%+.2f%%", float64(p)); res != "-0.00%" {
		return res
	}
	return "+0.00%"
}
