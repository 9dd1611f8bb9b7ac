// Command validate-banks runs consistency checks over the master CSV
// and reports errors and warnings. It exits non-zero when errors are
// found, so it can gate the publishing pipeline.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/savingsmap/bankpipe/pkg/geocode"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
	"github.com/savingsmap/bankpipe/pkg/validate"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	masterPath := cfg.Path("european_savings_bank_data.csv")
	_, master := pipeline.MustReadCSV(masterPath)
	fmt.Printf("Validating %d banks from %s\n\n", len(master), masterPath)

	report := validate.Run(master, validate.Config{
		CountryNames: geocode.DefaultConfig().Names,
	})

	if len(report.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("  ✗ %s\n", e)
		}
		fmt.Println()
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(report.Warnings))
		for _, w := range report.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
		fmt.Println()
	}

	if report.Passed() {
		fmt.Println("Validation passed.")
		return
	}
	fmt.Println("Validation FAILED.")
	os.Exit(1)
}
