package histrates

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// LoadJSONSeries reads a reference series from a JSON file, see DecodeJSONSeries.
//
// Like LoadSeries, a missing file yields an empty series.
func LoadJSONSeries(filename, yearsPath, valuesPath string) (*Series, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("missing-source name=%q", filename)
		return NewSeries("", filename), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open json series file %q: %w", filename, err)
	}
	defer f.Close()

	s, err := DecodeJSONSeries(f, yearsPath, valuesPath)
	if err != nil {
		return nil, fmt.Errorf("could not decode json series file %q: %w", filename, err)
	}
	s.Source = filename
	return s, nil
}

// DecodeJSONSeries reads a series from a JSON document.
//
// yearsPath and valuesPath are JSONPath expressions selecting, in the same order, the years
// and the values, e.g. "$.data[*].year" and "$.data[*].return". Pairs where either side is not
// a number (or a numeric string) are skipped, like malformed lines of a delimited file.
func DecodeJSONSeries(r io.Reader, yearsPath, valuesPath string) (*Series, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode json series: %w", err)
	}

	years, err := jsonpath.Get(yearsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("error selecting years %q: %w", yearsPath, err)
	}
	values, err := jsonpath.Get(valuesPath, doc)
	if err != nil {
		return nil, fmt.Errorf("error selecting values %q: %w", valuesPath, err)
	}

	ys, vs := asList(years), asList(values)
	if len(ys) != len(vs) {
		return nil, fmt.Errorf("json series has %d years for %d values", len(ys), len(vs))
	}

	series := NewSeries("", "")
	for i := range ys {
		y, ok := jsonNumber(ys[i])
		if !ok || y <= 0 || y != math.Trunc(y) {
			continue
		}
		v, ok := jsonNumber(vs[i])
		if !ok {
			continue
		}
		series.Set(int(y), v)
	}
	return series, nil
}

// asList wraps a single jsonpath answer in a list, because jsonpath returns a bare value
// for non wildcard paths.
func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{v}
}

func jsonNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}
