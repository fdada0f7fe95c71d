// Package config holds the settings of the historical rates pipeline: where the source
// tables are, where the aligned file goes, and the heuristics used to read the tables.
//
// Settings are layered: built-in defaults, then an optional YAML file, then environment
// variables prefixed with HISTRATES_ (e.g. HISTRATES_EXTRACTION_INDEX_FLOOR,
// HISTRATES_F5_SHEET).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/etnz/histrates/date"
	"github.com/etnz/histrates/rba"
	"github.com/etnz/histrates/tabular"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HISTRATES"

// Config represents the complete pipeline configuration.
type Config struct {
	F7Path        string `yaml:"f7_path" envconfig:"F7_PATH" validate:"required"`
	F5Path        string `yaml:"f5_path" envconfig:"F5_PATH" validate:"required"`
	ReferencePath string `yaml:"reference_path" envconfig:"REFERENCE_PATH" validate:"required"`
	OutputPath    string `yaml:"output_path" envconfig:"OUTPUT_PATH" validate:"required"`
	Delimiter     string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`

	// JSONPath selectors used when the reference series is a .json file.
	ReferenceYears  string `yaml:"reference_years" envconfig:"REFERENCE_YEARS" validate:"required"`
	ReferenceValues string `yaml:"reference_values" envconfig:"REFERENCE_VALUES" validate:"required"`

	// Notional balance, in whole currency units, on which the winners are measured.
	Balance  int64  `yaml:"balance" envconfig:"BALANCE" validate:"gt=0"`
	Currency string `yaml:"currency" envconfig:"CURRENCY" validate:"len=3"`

	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
	F5         WorkbookConfig   `yaml:"f5" envconfig:"F5"`
}

// ExtractionConfig contains the heuristics used to read Table F7 page text.
type ExtractionConfig struct {
	TargetMonth string  `yaml:"target_month" envconfig:"TARGET_MONTH" validate:"oneof=Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec"`
	IndexFloor  float64 `yaml:"index_floor" envconfig:"INDEX_FLOOR" validate:"gt=0"`
	MinNumbers  int     `yaml:"min_numbers" envconfig:"MIN_NUMBERS" validate:"gtfield=Column"`
	Column      int     `yaml:"column" envconfig:"COLUMN" validate:"gte=0"`
}

// WorkbookConfig locates the monthly rates in the Table F5 workbook.
type WorkbookConfig struct {
	Sheet      string `yaml:"sheet" envconfig:"SHEET" validate:"required"`
	FirstRow   int    `yaml:"first_row" envconfig:"FIRST_ROW" validate:"min=1"`
	MaxRow     int    `yaml:"max_row" envconfig:"MAX_ROW" validate:"gtefield=FirstRow"`
	DateColumn int    `yaml:"date_column" envconfig:"DATE_COLUMN" validate:"min=1"`
	RateColumn int    `yaml:"rate_column" envconfig:"RATE_COLUMN" validate:"min=1"`
}

// Default returns the configuration matching the published tables.
func Default() Config {
	return Config{
		F7Path:        "f07.pdf",
		F5Path:        "f05hist.xlsx",
		ReferencePath: "scripts/asx_accumulation_annual.csv",
		OutputPath:    "public/historical_rates.csv",
		Delimiter:     ",",

		ReferenceYears:  "$.years[*]",
		ReferenceValues: "$.values[*]",

		Balance:  100000,
		Currency: "AUD",

		Extraction: ExtractionConfig{
			TargetMonth: "Jun",
			IndexFloor:  10000,
			MinNumbers:  5,
			Column:      4,
		},
		F5: WorkbookConfig{
			Sheet:      rba.F5Layout.Sheet,
			FirstRow:   rba.F5Layout.FirstRow,
			MaxRow:     rba.F5Layout.MaxRow,
			DateColumn: rba.F5Layout.DateColumn,
			RateColumn: rba.F5Layout.RateColumn,
		},
	}
}

// Load returns the default configuration, overridden by the YAML file if it exists (an
// empty filename means no file), then by environment variables.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %q: %w", filename, err)
		default:
			if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file %q: %w", filename, err)
			}
		}
	}

	// No default tags: variables that are not set leave the field untouched.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Month returns the month of the F7 row to extract.
func (c *Config) Month() time.Month {
	m, _ := date.ParseMonthAbbrev(c.Extraction.TargetMonth)
	return m
}

// Extractor returns the Table F7 extractor configured by c.
func (c *Config) Extractor() tabular.Extractor {
	ex := rba.F7Extractor(c.Month(), c.Extraction.IndexFloor)
	ex.MinNumbers = c.Extraction.MinNumbers
	ex.Column = c.Extraction.Column
	return ex
}

// F5Layout returns the Table F5 workbook layout configured by c.
func (c *Config) F5Layout() rba.Layout {
	return rba.Layout{
		Sheet:      c.F5.Sheet,
		FirstRow:   c.F5.FirstRow,
		MaxRow:     c.F5.MaxRow,
		DateColumn: c.F5.DateColumn,
		RateColumn: c.F5.RateColumn,
	}
}

// Comma returns the delimiter of reference series files.
func (c *Config) Comma() rune { return []rune(c.Delimiter)[0] }
