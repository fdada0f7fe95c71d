package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// String returns the range as "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
