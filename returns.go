package histrates

// Returns converts a series of index levels into year-over-year percentage changes.
//
// A year gets a return only when the year before it is also present:
// round(100 × (level[y]/level[y-1] − 1), 2). Any gap breaks the chain for the year after it.
func Returns(levels *Series) *Series {
	r := NewSeries(levels.Name, levels.Source)
	for y, v := range levels.Values() {
		prev, ok := levels.Get(y - 1)
		if !ok || prev == 0 {
			continue
		}
		r.Set(y, Round(100*(v/prev-1)))
	}
	return r
}
