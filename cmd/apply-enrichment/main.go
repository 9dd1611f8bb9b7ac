// Command apply-enrichment copies scanned maturity levels from the
// enrichment summary into placeholder master records. Banks that were
// already enriched by hand are never overwritten.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/bankcsv"
	"github.com/savingsmap/bankpipe/pkg/merge"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	input := flag.String("input", "", "enrichment summary CSV (default: <data>/enrichment_summary.csv)")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	if *input == "" {
		*input = cfg.Path("enrichment_summary.csv")
	}
	masterPath := cfg.Path("european_savings_bank_data.csv")

	_, master := pipeline.MustReadCSV(masterPath)
	_, candidates := pipeline.MustReadCSV(*input)
	fmt.Printf("Master: %d banks  Enrichment rows: %d\n", len(master), len(candidates))

	stats := merge.Enrich(master, candidates, logger)
	fmt.Printf("Updated: %d  Skipped (already enriched): %d  Skipped (no scan data): %d\n",
		stats.Updated, stats.SkippedEnriched, stats.SkippedNoData)

	if *dryRun {
		fmt.Println("\nDry run: master not modified.")
		return
	}
	if stats.Updated == 0 {
		fmt.Println("Nothing to apply.")
		return
	}

	backup := masterPath + ".backup.csv"
	if err := bankcsv.Backup(masterPath, backup); err != nil {
		logger.Error("backup master", "error", err)
		os.Exit(1)
	}
	if err := bankcsv.WriteFile(masterPath, bank.MasterHeaders, master); err != nil {
		logger.Error("write master", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (backup at %s)\n", masterPath, backup)
}
