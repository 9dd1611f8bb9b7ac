// Package patch applies targeted field corrections to named records:
// a data-driven mapping of record name -> column -> new value, with
// mismatch-only writes, per-change logging, and mandatory backup before
// any in-place mutation. The same diff logic runs under --dry-run with
// writes suppressed.
package patch

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

// Set is one patch document: record name -> column -> new value.
type Set map[string]map[string]string

// LoadSet reads a YAML patch file.
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patch file %s: %w", path, err)
	}
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse patch file %s: %w", path, err)
	}
	return s, nil
}

// Stats summarizes an Apply pass.
type Stats struct {
	RecordsChanged int
	FieldsChanged  int
	MissingRecords int
	RejectedFields int
}

// Apply rewrites fields whose stored value differs literally from the
// patch value. Records are matched by exact name; a patch naming an
// absent record is counted, not an error. Every change is logged with
// truncated old/new values. The caller handles backup and persistence.
func Apply(records []bank.Record, set Set, logger *slog.Logger) Stats {
	var stats Stats

	byName := make(map[string]bank.Record, len(records))
	for _, rec := range records {
		byName[rec["name"]] = rec
	}

	// Deterministic application order regardless of map iteration.
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rec, ok := byName[name]
		if !ok {
			logger.Warn("patch target not found", "bank", name)
			stats.MissingRecords++
			continue
		}

		changed := false
		cols := make([]string, 0, len(set[name]))
		for col := range set[name] {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		for _, col := range cols {
			newVal := set[name][col]
			oldVal := rec[col]
			if oldVal == newVal {
				continue
			}
			rec[col] = newVal
			logger.Info("patched field",
				"bank", name, "field", col,
				"old", truncate(oldVal, 60), "new", truncate(newVal, 60))
			stats.FieldsChanged++
			changed = true
		}
		if changed {
			stats.RecordsChanged++
		}
	}
	return stats
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Range bounds an integer financial field.
type Range struct {
	Min, Max int
}

// FinancialRanges are the accepted bounds for numeric enrichment fields.
// A value outside its range is rejected field-by-field; the rest of the
// record still applies.
var FinancialRanges = map[string]Range{
	"total_assets_millions_eur":   {1, 5000000},
	"customer_count_thousands":    {1, 100000},
	"deposit_volume_millions_eur": {1, 4000000},
	"loan_volume_millions_eur":    {1, 4000000},
	"employee_count":              {1, 500000},
	"branch_count":                {1, 30000},
	"founded_year":                {1400, 2025},
	"reporting_year":              {2018, 2025},
}

// ValidateFinancial checks a field value against its range. Empty values
// are valid (nothing to apply). The normalized value is the parsed
// integer re-serialized.
func ValidateFinancial(field, value string) (normalized string, err error) {
	if value == "" {
		return "", nil
	}
	n, perr := strconv.Atoi(value)
	if perr != nil {
		return "", fmt.Errorf("%s: not a number: %q", field, value)
	}
	r, ok := FinancialRanges[field]
	if !ok {
		return strconv.Itoa(n), nil
	}
	if n < r.Min || n > r.Max {
		return "", fmt.Errorf("%s: %d out of range [%d, %d]", field, n, r.Min, r.Max)
	}
	return strconv.Itoa(n), nil
}
