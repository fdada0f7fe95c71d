package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/config"
	"github.com/etnz/histrates/rba"
	"github.com/etnz/histrates/renderer"
	"github.com/google/subcommands"
)

type normaliseCmd struct {
	f5        string
	reference string
	output    string
}

func (*normaliseCmd) Name() string { return "normalise" }
func (*normaliseCmd) Synopsis() string {
	return "write the housing lending rate and ASX return per financial year into one file"
}
func (*normaliseCmd) Usage() string {
	return `histrates normalise [-f5 <f05hist.xlsx>] [-reference <returns.csv>] [-o <historical_rates.csv>]

  Averages the monthly owner-occupier variable housing lending rate of RBA
  Table F5 over each financial year, and writes it next to the ASX 200 total
  return of the same financial year.

  Only years present in both series are written. The command fails, and writes
  nothing, if either series is empty or if they share no year.
`
}

func (c *normaliseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.f5, "f5", "", "Path to the Table F5 workbook (overrides f5_path)")
	f.StringVar(&c.reference, "reference", "", "Path to the ASX returns, .csv or .json (overrides reference_path)")
	f.StringVar(&c.output, "o", "", "Path of the aligned file to write (overrides output_path)")
}

func (c *normaliseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("%v", err)
	}
	if c.f5 != "" {
		cfg.F5Path = c.f5
	}
	if c.reference != "" {
		cfg.ReferencePath = c.reference
	}
	if c.output != "" {
		cfg.OutputPath = c.output
	}
	if err := cfg.Validate(); err != nil {
		return fail("%v", err)
	}

	al, err := normalise(cfg)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", cfg.OutputPath)
	printMarkdown(renderer.RenderAligned(al, cfg.OutputPath))
	return subcommands.ExitSuccess
}

// normalise merges the F5 rates with the reference returns and writes the aligned file.
func normalise(cfg *config.Config) (*histrates.Aligned, error) {
	rates := rba.F5Rates(cfg.F5Path, cfg.F5Layout())

	ref, err := loadReference(cfg)
	if err != nil {
		return nil, err
	}
	returns := ref.Round()
	returns.Name, returns.Source = histrates.ColumnASXReturn, histrates.SourceASXReturn
	return histrates.WriteAlignedFile(cfg.OutputPath, rates, returns)
}
