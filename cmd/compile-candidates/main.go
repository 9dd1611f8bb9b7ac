// Command compile-candidates runs every registered candidate source,
// deduplicates the results against the master dataset and within the
// batch, and writes the surviving banks as master-shaped placeholder
// rows ready for geocoding.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/bankcsv"
	"github.com/savingsmap/bankpipe/pkg/ingest"
	"github.com/savingsmap/bankpipe/pkg/merge"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	source := flag.String("source", "", "run a single source by ID (default: all)")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	_, master := pipeline.MustReadCSV(cfg.Path("european_savings_bank_data.csv"))
	fmt.Printf("Master CSV: %d banks\n", len(master))

	sdb, err := ingest.OpenSourceDB(cfg.Path("sources.db"))
	if err != nil {
		logger.Error("open source db", "error", err)
		os.Exit(1)
	}
	defer sdb.Close()
	if err := sdb.Seed(ingest.All()); err != nil {
		logger.Error("seed sources", "error", err)
		os.Exit(1)
	}

	adapters := ingest.All()
	if *source != "" {
		a, err := ingest.Get(*source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		adapters = []ingest.Adapter{a}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var candidates []bank.Record
	for _, a := range adapters {
		url, err := sdb.GetURL(a.ID())
		if err != nil {
			logger.Error("source url", "adapter", a.ID(), "error", err)
			continue
		}
		found, err := a.Fetch(ctx, url)
		if err != nil {
			logger.Warn("source fetch failed", "adapter", a.ID(), "error", err)
			continue
		}
		fmt.Printf("[%s] %d candidates\n", a.ID(), len(found))
		for _, c := range found {
			candidates = append(candidates, c.Record())
		}
	}

	merged, stats := merge.Append(master, candidates, bank.NormalizeName)
	newBanks := merged[len(master):]

	fmt.Printf("New banks to add: %d (skipped %d already in master, %d batch duplicates)\n",
		stats.Appended, stats.DuplicatesOfMaster, stats.DuplicatesInSet)

	outPath := cfg.Path("bulk_banks_raw.csv")
	if err := bankcsv.WriteFile(outPath, bank.MasterHeaders, newBanks); err != nil {
		logger.Error("write output", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %s (%d new banks)\n", outPath, len(newBanks))

	printByCountry(newBanks)
}

func printByCountry(records []bank.Record) {
	byCountry := make(map[string]int)
	for _, r := range records {
		cc := r["country_code"]
		if cc == "" {
			cc = "??"
		}
		byCountry[cc]++
	}
	type entry struct {
		code  string
		count int
	}
	entries := make([]entry, 0, len(byCountry))
	for code, count := range byCountry {
		entries = append(entries, entry{code, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].code < entries[j].code
	})
	fmt.Println("\nBy country:")
	for _, e := range entries {
		fmt.Printf("  %s: %d\n", e.code, e.count)
	}
}
