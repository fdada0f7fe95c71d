package date

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// FiscalYear is a financial year labelled by the calendar year in which it ends.
// FiscalYear(2020) covers 1 July 2019 to 30 June 2020.
type FiscalYear int

// FiscalYearOf returns the financial year d belongs to.
func FiscalYearOf(d Date) FiscalYear {
	if d.Month() >= time.July {
		return FiscalYear(d.Year() + 1)
	}
	return FiscalYear(d.Year())
}

// Range returns the first and last day of the financial year.
func (fy FiscalYear) Range() Range {
	return Range{
		From: New(int(fy)-1, time.July, 1),
		To:   New(int(fy), time.June, 30),
	}
}

// CalendarYear returns the calendar year a month of this financial year falls in:
// January to June are in the year the financial year ends, July to December in the year before.
func (fy FiscalYear) CalendarYear(m time.Month) int {
	if m >= time.July {
		return int(fy) - 1
	}
	return int(fy)
}

// Label returns the "YYYY/YY" form used in statistical tables, e.g. "2019/20" for 2020.
func (fy FiscalYear) Label() string {
	return fmt.Sprintf("%d/%02d", int(fy)-1, int(fy)%100)
}

func (fy FiscalYear) String() string { return fmt.Sprintf("FY%d", int(fy)) }

var labelPattern = regexp.MustCompile(`^(\d{4})/(\d{2})$`)

// ParseFiscalYearLabel parses a "YYYY/YY" section header into the financial year it names.
// Only the leading year is significant: "2019/20" is FiscalYear(2020).
func ParseFiscalYearLabel(s string) (FiscalYear, error) {
	m := labelPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid financial year label %q want format \"YYYY/YY\"", s)
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid financial year label %q: %w", s, err)
	}
	return FiscalYear(y + 1), nil
}

var months = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March, "Apr": time.April,
	"May": time.May, "Jun": time.June, "Jul": time.July, "Aug": time.August,
	"Sep": time.September, "Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// ParseMonthAbbrev parses a three letter English month abbreviation, case sensitive ("Jun").
func ParseMonthAbbrev(s string) (time.Month, bool) {
	m, ok := months[s]
	return m, ok
}
