// Package cmd implements the CLI application that builds and checks the historical rates.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/histrates"
	"github.com/etnz/histrates/config"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&crosscheckCmd{}, "pipeline")
	c.Register(&normaliseCmd{}, "pipeline")

	c.Register(&f7Cmd{}, "sources")
	c.Register(&winnersCmd{}, "analysis")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "histrates.yaml", "Path to the YAML configuration file (ignored if missing)")

// Verbose enables the event log on stderr.
var Verbose = flag.Bool("v", false, "Log pipeline events to stderr")

var raw = flag.Bool("raw", false, "Print markdown reports without terminal styling")

// Setup applies the global flags. It must be called after flag.Parse.
func Setup() {
	log.SetFlags(0)
	log.SetPrefix("histrates: ")
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// Completion describes the subcommands and their flags for shell completion.
func Completion() *complete.Command {
	csv := predict.Files("*.csv")
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"crosscheck": {Flags: map[string]complete.Predictor{
				"f7":        predict.Files("*.pdf"),
				"reference": predict.Or(csv, predict.Files("*.json")),
				"month":     predict.Set(monthAbbrevs),
				"floor":     predict.Something,
			}},
			"normalise": {Flags: map[string]complete.Predictor{
				"f5":        predict.Files("*.xlsx"),
				"reference": predict.Or(csv, predict.Files("*.json")),
				"o":         csv,
			}},
			"f7": {Flags: map[string]complete.Predictor{
				"f7":    predict.Files("*.pdf"),
				"month": predict.Set(monthAbbrevs),
				"floor": predict.Something,
			}},
			"winners": {Flags: map[string]complete.Predictor{
				"aligned":  csv,
				"balance":  predict.Something,
				"currency": predict.Something,
			}},
			"topic": {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
			"raw":    predict.Nothing,
		},
	}
}

var monthAbbrevs = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// loadConfig loads the configuration named by the -config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// loadReference loads the reference return series named by the configuration.
//
// JSON files are read with the configured JSONPath selectors, anything else as a delimited
// file.
func loadReference(cfg *config.Config) (*histrates.Series, error) {
	if strings.EqualFold(filepath.Ext(cfg.ReferencePath), ".json") {
		return histrates.LoadJSONSeries(cfg.ReferencePath, cfg.ReferenceYears, cfg.ReferenceValues)
	}
	return histrates.LoadSeries(cfg.ReferencePath, cfg.Comma())
}

// printMarkdown prints md to stdout, styled for the terminal unless -raw is set.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail reports err on stderr and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
