// Command geocode-banks fills in coordinates for the raw candidate
// batch, resolving each city through Nominatim with a persistent cache
// and falling back to country centroids for cities that cannot be
// resolved.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/savingsmap/bankpipe/pkg/bankcsv"
	"github.com/savingsmap/bankpipe/pkg/geocode"
	"github.com/savingsmap/bankpipe/pkg/jsoncache"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	input := flag.String("input", "", "input CSV (default: <data>/bulk_banks_raw.csv)")
	output := flag.String("output", "", "output CSV (default: <data>/bulk_banks_geocoded.csv)")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

	if *input == "" {
		*input = cfg.Path("bulk_banks_raw.csv")
	}
	if *output == "" {
		*output = cfg.Path("bulk_banks_geocoded.csv")
	}

	headers, records := pipeline.MustReadCSV(*input)
	fmt.Printf("Loaded %d banks from %s\n", len(records), *input)

	cache, err := jsoncache.Open(cfg.Path("geocode_cache.json"))
	if err != nil {
		logger.Error("open geocode cache", "error", err)
		os.Exit(1)
	}
	resolver := geocode.NewResolver(geocode.DefaultConfig(), cache, logger)

	ctx := context.Background()
	resolved, fallback, skipped := 0, 0, 0
	for i, rec := range records {
		if rec["latitude"] != "" && rec["latitude"] != "0" {
			skipped++
			continue
		}
		pt, err := resolver.Resolve(ctx, rec["city"], rec["country_code"])
		if err != nil {
			logger.Error("geocode", "city", rec["city"], "error", err)
			os.Exit(1)
		}
		if pt == nil {
			p := resolver.Fallback(rec["country_code"])
			pt = &p
			fallback++
		} else {
			resolved++
		}
		rec["latitude"] = fmt.Sprintf("%.4f", pt.Lat)
		rec["longitude"] = fmt.Sprintf("%.4f", pt.Lng)
		if (i+1)%25 == 0 {
			fmt.Printf("  ... %d/%d\n", i+1, len(records))
		}
	}

	if err := cache.Save(); err != nil {
		logger.Error("save geocode cache", "error", err)
	}

	if err := bankcsv.WriteFile(*output, headers, records); err != nil {
		logger.Error("write output", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nWrote %s\n", *output)
	fmt.Printf("Resolved: %d  Fallback: %d  Already had coords: %d\n", resolved, fallback, skipped)
	fmt.Printf("Cache hits: %d  Network calls: %d  Failures: %d\n",
		resolver.CacheHits, resolver.NetworkCalls, resolver.Failures)
}
