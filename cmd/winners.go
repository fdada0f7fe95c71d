package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/etnz/histrates"
	"github.com/etnz/histrates/config"
	"github.com/etnz/histrates/renderer"
	"github.com/google/subcommands"
)

type winnersCmd struct {
	aligned  string
	balance  int64
	currency string
}

func (*winnersCmd) Name() string { return "winners" }
func (*winnersCmd) Synopsis() string {
	return "tell, per financial year, whether offsetting the mortgage beat investing"
}
func (*winnersCmd) Usage() string {
	return `histrates winners [-aligned <historical_rates.csv>] [-balance 100000] [-currency AUD]

  Reads an aligned file written by normalise and compares, for each financial
  year, the housing lending rate with the ASX 200 total return. Keeping the
  balance in an offset account saves the lending rate; investing it earns the
  return. Differences under 0.01 percentage point are a tie.
`
}

func (c *winnersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.aligned, "aligned", "", "Path of the aligned file (defaults to output_path)")
	f.Int64Var(&c.balance, "balance", 0, "Notional balance in whole currency units (overrides balance)")
	f.StringVar(&c.currency, "currency", "", "Currency code of the balance (overrides currency)")
}

func (c *winnersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("%v", err)
	}
	if c.aligned != "" {
		cfg.OutputPath = c.aligned
	}
	if c.balance != 0 {
		cfg.Balance = c.balance
	}
	if c.currency != "" {
		cfg.Currency = c.currency
	}
	if err := cfg.Validate(); err != nil {
		return fail("%v", err)
	}

	md, err := winners(cfg)
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// winners renders the per year outcomes of the aligned file named by cfg.
func winners(cfg *config.Config) (string, error) {
	f, err := os.Open(cfg.OutputPath)
	if err != nil {
		return "", fmt.Errorf("could not open aligned file: %w", err)
	}
	defer f.Close()

	al, err := histrates.DecodeAligned(f, histrates.ColumnHousingRate, histrates.ColumnASXReturn)
	if err != nil {
		return "", fmt.Errorf("could not read aligned file %q: %w", cfg.OutputPath, err)
	}

	minor, err := histrates.MinorUnits(cfg.Balance, cfg.Currency)
	if err != nil {
		return "", err
	}
	outcomes, err := histrates.Outcomes(al, minor, cfg.Currency)
	if err != nil {
		return "", err
	}
	return renderer.RenderOutcomes(outcomes, money.New(minor, cfg.Currency).Display()), nil
}
