// Command apply-financial imports balance-sheet figures from a
// financial dataset into the master CSV. Only empty master fields are
// filled, and every imported value must fall inside the plausible
// range for its field.
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
	input := flag.String("input", "", "financial CSV (default: <data>/financial_enrichment_combined.csv)")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	if *input == "" {
		*input = cfg.Path("financial_enrichment_combined.csv")
	}
	masterPath := cfg.Path("european_savings_bank_data.csv")

	_, master := pipeline.MustReadCSV(masterPath)
	_, candidates := pipeline.MustReadCSV(*input)
	fmt.Printf("Master: %d banks  Financial rows: %d\n", len(master), len(candidates))

	stats := merge.Financial(master, candidates, logger)
	fmt.Printf("Records changed: %d  Fields filled: %d  Rejected values: %d  Unknown banks: %d\n",
		stats.RecordsChanged, stats.FieldsChanged, stats.RejectedFields, stats.MissingRecords)

	if *dryRun {
		fmt.Println("\nDry run: master not modified.")
		return
	}
	if stats.FieldsChanged == 0 {
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
