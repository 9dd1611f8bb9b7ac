// Command sources manages the candidate-source registry: listing the
// registered adapters and their URLs, overriding a source URL, and
// checking source availability.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/savingsmap/bankpipe/pkg/ingest"
	"github.com/savingsmap/bankpipe/pkg/pipeline"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	check := flag.Bool("check", false, "probe every source URL and record the result")
	source := flag.String("source", "", "adapter ID for -url")
	url := flag.String("url", "", "override the source URL for -source")
	flag.Parse()

	logger := pipeline.NewLogger()
	cfg := pipeline.LoadConfig(*cfgPath, logger)

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

	switch {
	case *url != "":
		if *source == "" {
			fmt.Fprintln(os.Stderr, "sources: -url requires -source")
			os.Exit(1)
		}
		if err := sdb.SetURL(*source, *url); err != nil {
			logger.Error("set url", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Updated %s -> %s\n", *source, *url)

	case *check:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := ingest.NewChecker(sdb, logger).CheckAll(ctx); err != nil {
			logger.Error("check sources", "error", err)
			os.Exit(1)
		}
	}

	list(sdb)
}

func list(sdb *ingest.SourceDB) {
	sources, err := sdb.ListSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "list sources: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Registered sources (%d):\n", len(sources))
	for _, s := range sources {
		fmt.Printf("  %-16s %s\n", s.AdapterID, s.Description)
		if s.SourceURL != "" {
			fmt.Printf("    url:     %s\n", s.SourceURL)
		}
		if s.License != "" {
			fmt.Printf("    license: %s\n", s.License)
		}
		if s.LastCheck != nil {
			when := time.Unix(*s.LastCheck, 0).Format(time.RFC3339)
			if s.LastError != nil {
				fmt.Printf("    checked: %s error: %s\n", when, *s.LastError)
			} else if s.LastStatus != nil {
				fmt.Printf("    checked: %s status: %d\n", when, *s.LastStatus)
			}
		}
	}
}
