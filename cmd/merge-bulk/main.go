// Command merge-bulk appends the geocoded candidate batch to the
// master dataset, deduplicating by normalized name and re-sorting the
// result by country then bank name.
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
	input := flag.String("input", "", "candidate CSV (default: <data>/bulk_banks_geocoded.csv)")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	if *input == "" {
		*input = cfg.Path("bulk_banks_geocoded.csv")
	}
	masterPath := cfg.Path("european_savings_bank_data.csv")

	_, master := pipeline.MustReadCSV(masterPath)
	_, candidates := pipeline.MustReadCSV(*input)
	fmt.Printf("Master: %d banks  Candidates: %d\n", len(master), len(candidates))

	merged, stats := merge.Append(master, candidates, bank.NormalizeName)
	merge.SortByCountryName(merged)

	fmt.Printf("Appended: %d  Already in master: %d  Batch duplicates: %d\n",
		stats.Appended, stats.DuplicatesOfMaster, stats.DuplicatesInSet)

	if *dryRun {
		fmt.Println("\nDry run: master not modified.")
		return
	}

	backup := masterPath + ".backup.csv"
	if err := bankcsv.Backup(masterPath, backup); err != nil {
		logger.Error("backup master", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Backup written to %s\n", backup)

	if err := bankcsv.WriteFile(masterPath, bank.MasterHeaders, merged); err != nil {
		logger.Error("write master", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Master now holds %d banks\n", len(merged))
}
