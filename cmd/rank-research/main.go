// Command rank-research scores placeholder banks by how promising they
// are as manual research targets and writes the top of the list as a
// worklist CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/bankcsv"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
	"github.com/savingsmap/bankpipe/pkg/rank"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	top := flag.Int("top", 100, "number of banks to keep")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	_, master := pipeline.MustReadCSV(cfg.Path("european_savings_bank_data.csv"))

	// Scan scores are optional: ranking still works before the first
	// enrich-scan run.
	scanScores := make(map[string]int)
	summaryPath := cfg.Path("enrichment_summary.csv")
	if _, summaries, err := bankcsv.ReadFile(summaryPath); err == nil {
		for _, rec := range summaries {
			if score, err := strconv.Atoi(rec["digital_score"]); err == nil {
				scanScores[rec["name"]] = score
			}
		}
		fmt.Printf("Loaded scan scores for %d banks\n", len(scanScores))
	}

	entries := rank.Rank(master, scanScores, rank.DefaultConfig())
	fmt.Printf("Ranked %d placeholder banks\n", len(entries))
	if len(entries) > *top {
		entries = entries[:*top]
	}

	records := make([]bank.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record(i + 1)
	}

	outPath := cfg.Path("ai_research_priority_list.csv")
	if err := bankcsv.WriteFile(outPath, rank.Headers, records); err != nil {
		logger.Error("write worklist", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (top %d)\n", outPath, len(records))

	for i, e := range entries {
		if i >= 10 {
			break
		}
		fmt.Printf("  %2d. %-40s %s  score=%d\n", i+1, e.Name, e.CountryCode, e.PriorityScore)
	}
}
