// Command enrich-scan assesses the digital maturity of placeholder
// banks by searching for mobile apps on iTunes and inspecting bank
// websites for open banking, chatbot and online onboarding signals.
// Results are written as a per-feature detail file and a master-shaped
// summary file for apply-enrichment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/bankcsv"
	"github.com/savingsmap/bankpipe/pkg/enrich"
	"github.com/savingsmap/bankpipe/pkg/jsoncache"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	limit := flag.Int("limit", 0, "scan at most N banks (0 = all)")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	_, master := pipeline.MustReadCSV(cfg.Path("european_savings_bank_data.csv"))

	var targets []bank.Record
	for _, rec := range master {
		if rec.IsPlaceholder() {
			targets = append(targets, rec)
		}
	}
	fmt.Printf("Placeholder banks to scan: %d of %d\n", len(targets), len(master))
	if *limit > 0 && len(targets) > *limit {
		targets = targets[:*limit]
		fmt.Printf("Limiting scan to first %d\n", len(targets))
	}

	cache, err := jsoncache.Open(cfg.Path("enrich_cache.json"))
	if err != nil {
		logger.Error("open enrich cache", "error", err)
		os.Exit(1)
	}
	scanner := enrich.NewScanner(cache, logger)

	ctx := context.Background()
	var details []bank.Record
	var summaries []bank.Record
	scored := 0
	for i, rec := range targets {
		fmt.Printf("[%d/%d] %s (%s)\n", i+1, len(targets), rec["name"], rec["country_code"])
		a := scanner.ScanBank(ctx, rec)
		featureRows, summary := a.Rows(rec)
		details = append(details, featureRows...)
		summaries = append(summaries, summary)
		if a.Score > 0 {
			scored++
		}
		if (i+1)%10 == 0 {
			if err := cache.Save(); err != nil {
				logger.Warn("save enrich cache", "error", err)
			}
		}
	}

	if err := cache.Save(); err != nil {
		logger.Error("save enrich cache", "error", err)
	}

	detailPath := cfg.Path("automated_enrichment.csv")
	if err := bankcsv.WriteFile(detailPath, enrich.FeatureHeaders, details); err != nil {
		logger.Error("write detail output", "error", err)
		os.Exit(1)
	}
	summaryPath := cfg.Path("enrichment_summary.csv")
	if err := bankcsv.WriteFile(summaryPath, enrich.SummaryHeaders, summaries); err != nil {
		logger.Error("write summary output", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nScanned %d banks, %d with a non-zero score\n", len(summaries), scored)
	fmt.Printf("Wrote %s and %s\n", detailPath, summaryPath)
}
