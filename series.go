package histrates

import (
	"iter"
	"slices"
)

// Series stores one value per financial year, sorted by year.
//
// Years are unique: setting an existing year replaces its value.
type Series struct {
	Name   string // column name used when the series is written out.
	Source string // definition and provenance of the values.

	years  []int
	values []float64
}

// NewSeries returns an empty series with the given column name and provenance.
func NewSeries(name, source string) *Series {
	return &Series{Name: name, Source: source}
}

// Len returns the number of years in the series.
func (s *Series) Len() int { return len(s.years) }

// Set sets the value for year.
//
// Existing value at that year is overwritten.
func (s *Series) Set(year int, v float64) *Series {
	i, found := slices.BinarySearch(s.years, year)
	if found {
		// The last write wins.
		s.values[i] = v
		return s
	}
	s.years = slices.Insert(s.years, i, year)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value at year and true, or zero and false.
func (s *Series) Get(year int) (float64, bool) {
	i, found := slices.BinarySearch(s.years, year)
	if !found {
		return 0, false
	}
	return s.values[i], true
}

// Has reports whether the series has a value for year.
func (s *Series) Has(year int) bool {
	_, found := slices.BinarySearch(s.years, year)
	return found
}

// Years returns the years of the series in ascending order.
func (s *Series) Years() []int { return slices.Clone(s.years) }

// Values returns an iterator over all year/value pairs in ascending year order.
func (s *Series) Values() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, y := range s.years {
			if !yield(y, s.values[i]) {
				return
			}
		}
	}
}

// Equal reports whether both series hold exactly the same years and values.
// Name and Source are ignored.
func (s *Series) Equal(o *Series) bool {
	return slices.Equal(s.years, o.years) && slices.Equal(s.values, o.values)
}

// Round returns a copy of the series with every value rounded to 2 decimal places.
func (s *Series) Round() *Series {
	r := NewSeries(s.Name, s.Source)
	for y, v := range s.Values() {
		r.Set(y, Round(v))
	}
	return r
}

// CommonYears returns the years present in both series, in ascending order.
func CommonYears(a, b *Series) []int {
	var common []int
	for _, y := range a.years {
		if b.Has(y) {
			common = append(common, y)
		}
	}
	return common
}
