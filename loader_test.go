package histrates

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const referenceCSV = `# NetActuary AXJOA, financial year total return
financial_year,asx_total_return_pct
2018,13.04
2019, 11.55
bad,1
2020,abc
2016,NaN
2017,-Inf

2021,27.8,extra
  # indented comment
2022
-2023,5
`

func TestDecodeSeries(t *testing.T) {
	s, err := DecodeSeries(strings.NewReader(referenceCSV), ',')
	if err != nil {
		t.Fatalf("DecodeSeries() error = %v", err)
	}
	want := map[int]float64{2018: 13.04, 2019: 11.55, 2021: 27.8}
	if s.Len() != len(want) {
		t.Fatalf("DecodeSeries() years = %v want %v", s.Years(), want)
	}
	for y, v := range want {
		if got, _ := s.Get(y); got != v {
			t.Errorf("DecodeSeries()[%d] = %v want %v", y, got, v)
		}
	}
	if s.Name != "asx_total_return_pct" {
		t.Errorf("DecodeSeries().Name = %q want the header column", s.Name)
	}
}

func TestDecodeSeriesDelimiter(t *testing.T) {
	s, err := DecodeSeries(strings.NewReader("year;value\n2001;1,5\n2002;2.5\n"), ';')
	if err != nil {
		t.Fatalf("DecodeSeries() error = %v", err)
	}
	if s.Len() != 1 || !s.Has(2002) {
		t.Errorf("DecodeSeries() years = %v want [2002]", s.Years())
	}
}

func TestLoadSeriesIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asx_accumulation_annual.csv")
	if err := os.WriteFile(path, []byte(referenceCSV), 0644); err != nil {
		t.Fatal(err)
	}
	s1, err := LoadSeries(path, ',')
	if err != nil {
		t.Fatalf("LoadSeries() error = %v", err)
	}
	s2, err := LoadSeries(path, ',')
	if err != nil {
		t.Fatalf("LoadSeries() error = %v", err)
	}
	if !s1.Equal(s2) {
		t.Fatalf("LoadSeries() twice = %v then %v", s1.Years(), s2.Years())
	}
	for y, v := range s1.Values() {
		w, _ := s2.Get(y)
		if math.Float64bits(v) != math.Float64bits(w) {
			t.Errorf("LoadSeries()[%d] = %v then %v", y, v, w)
		}
	}
	if s1.Source != path {
		t.Errorf("LoadSeries().Source = %q want %q", s1.Source, path)
	}
}

func TestLoadSeriesMissing(t *testing.T) {
	s, err := LoadSeries(filepath.Join(t.TempDir(), "nope.csv"), ',')
	if err != nil {
		t.Fatalf("LoadSeries(missing) error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("LoadSeries(missing) = %v want empty", s.Years())
	}
}

func TestDecodeJSONSeries(t *testing.T) {
	doc := `{"index": "AXJOA", "data": [
		{"year": 2018, "return": 13.04},
		{"year": "2019", "return": "11.55"},
		{"year": 2020.5, "return": 1},
		{"year": 2021, "return": null},
		{"year": 2022, "return": "NaN"},
		{"year": 2023, "return": "inf"}
	]}`
	s, err := DecodeJSONSeries(strings.NewReader(doc), "$.data[*].year", "$.data[*].return")
	if err != nil {
		t.Fatalf("DecodeJSONSeries() error = %v", err)
	}
	want := map[int]float64{2018: 13.04, 2019: 11.55}
	if s.Len() != len(want) {
		t.Fatalf("DecodeJSONSeries() years = %v want %v", s.Years(), want)
	}
	for y, v := range want {
		if got, _ := s.Get(y); got != v {
			t.Errorf("DecodeJSONSeries()[%d] = %v want %v", y, got, v)
		}
	}
}

func TestDecodeJSONSeriesErrors(t *testing.T) {
	testCases := []struct {
		name, doc, years, values string
	}{
		{name: "not json", doc: "2018,13.04", years: "$.y", values: "$.v"},
		{name: "unknown path", doc: `{"y": [2018]}`, years: "$.y", values: "$.v"},
		{name: "length mismatch", doc: `{"y": [2018, 2019], "v": [1]}`, years: "$.y[*]", values: "$.v[*]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeJSONSeries(strings.NewReader(tc.doc), tc.years, tc.values); err == nil {
				t.Errorf("DecodeJSONSeries() expected an error, but got none")
			}
		})
	}
}

func TestLoadJSONSeries(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "asx.json")
	if err := os.WriteFile(filename, []byte(`{"years": [2018, 2019], "values": [13.04, 11.55]}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadJSONSeries(filename, "$.years[*]", "$.values[*]")
	if err != nil {
		t.Fatalf("LoadJSONSeries() error = %v", err)
	}
	if s.Source != filename || s.Len() != 2 {
		t.Errorf("LoadJSONSeries() = %q %v want %q with 2 years", s.Source, s.Years(), filename)
	}

	s, err = LoadJSONSeries(filepath.Join(dir, "missing.json"), "$.years[*]", "$.values[*]")
	if err != nil || s.Len() != 0 {
		t.Errorf("LoadJSONSeries(missing) = %v, %v want empty series", s, err)
	}
}
