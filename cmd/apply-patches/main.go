// Command apply-patches applies a YAML patch set of per-bank field
// corrections to the master CSV. A timestamped backup of the master is
// written before any change.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/bankcsv"
	"github.com/savingsmap/bankpipe/pkg/patch"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	patchPath := flag.String("patches", "", "YAML patch set (required)")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	if *patchPath == "" {
		fmt.Fprintln(os.Stderr, "apply-patches: -patches is required")
		os.Exit(1)
	}

	set, err := patch.LoadSet(*patchPath)
	if err != nil {
		logger.Error("load patch set", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Patch set: %d banks\n", len(set))

	masterPath := cfg.Path("european_savings_bank_data.csv")
	_, master := pipeline.MustReadCSV(masterPath)

	stats := patch.Apply(master, set, logger)
	fmt.Printf("Records changed: %d  Fields changed: %d  Missing banks: %d  Rejected fields: %d\n",
		stats.RecordsChanged, stats.FieldsChanged, stats.MissingRecords, stats.RejectedFields)

	if *dryRun {
		fmt.Println("\nDry run: master not modified.")
		return
	}
	if stats.FieldsChanged == 0 {
		fmt.Println("Nothing to apply.")
		return
	}

	backup := masterPath + ".pre_patch.backup.csv"
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
