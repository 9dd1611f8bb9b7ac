// Package validate runs the invariant battery over the master record set.
// It only reports: nothing here mutates or repairs the data, and every
// check runs even when earlier ones have already failed.
package validate

import (
	"fmt"
	"strconv"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

// Europe bounding box for plausible coordinates.
const (
	MinLat = 35.0
	MaxLat = 72.0
	MinLng = -25.0
	MaxLng = 45.0
)

// Config carries the static lookup tables the checks cross-reference.
type Config struct {
	// CountryNames maps ISO codes to the exact country string the
	// dataset must store for that code.
	CountryNames map[string]string
}

// Report is the outcome of a validation pass. Warnings never affect
// Passed.
type Report struct {
	Errors   []string
	Warnings []string
}

// Passed reports whether the record set is free of errors.
func (r *Report) Passed() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Run executes all checks over the records.
func Run(records []bank.Record, cfg Config) *Report {
	rep := &Report{}

	checkDuplicateNames(records, rep)
	checkCoordinates(records, rep)
	checkCountryConsistency(records, cfg, rep)
	checkRequiredFields(records, rep)
	checkMaturityLevels(records, rep)

	return rep
}

// checkDuplicateNames flags every repeat of an exact name beyond its
// first occurrence.
func checkDuplicateNames(records []bank.Record, rep *Report) {
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		name := rec["name"]
		if seen[name] {
			rep.errorf("duplicate name %q", name)
		}
		seen[name] = true
	}
}

// checkCoordinates verifies non-placeholder coordinates parse and fall
// inside the Europe bounding box. (0,0) placeholders are warnings.
func checkCoordinates(records []bank.Record, rep *Report) {
	placeholders := 0
	for _, rec := range records {
		lat, errLat := strconv.ParseFloat(rec["latitude"], 64)
		lng, errLng := strconv.ParseFloat(rec["longitude"], 64)

		if errLat == nil && errLng == nil && lat == 0 && lng == 0 {
			placeholders++
			continue
		}
		if errLat != nil || errLng != nil {
			rep.errorf("invalid coordinates for %q: lat=%q lng=%q", rec["name"], rec["latitude"], rec["longitude"])
			continue
		}
		if lat < MinLat || lat > MaxLat || lng < MinLng || lng > MaxLng {
			rep.errorf("out-of-bounds coordinates for %q: %g, %g", rec["name"], lat, lng)
		}
	}
	if placeholders > 0 {
		rep.warnf("%d banks have placeholder (0,0) coordinates", placeholders)
	}
}

// checkCountryConsistency cross-checks country_code against the stored
// country name. Unknown codes are warnings, mismatches are errors.
func checkCountryConsistency(records []bank.Record, cfg Config, rep *Report) {
	for _, rec := range records {
		expected, ok := cfg.CountryNames[rec["country_code"]]
		if !ok {
			rep.warnf("unknown country code %q for %q", rec["country_code"], rec["name"])
			continue
		}
		if expected != rec["country"] {
			rep.errorf("country mismatch for %q: code=%s expects %q, got %q",
				rec["name"], rec["country_code"], expected, rec["country"])
		}
	}
}

func checkRequiredFields(records []bank.Record, rep *Report) {
	for _, rec := range records {
		if rec["name"] == "" {
			rep.errorf("missing name")
		}
		if rec["country"] == "" {
			rep.errorf("missing country for %q", rec["name"])
		}
		if rec["country_code"] == "" {
			rep.errorf("missing country_code for %q", rec["name"])
		}
	}
}

func checkMaturityLevels(records []bank.Record, rep *Report) {
	for _, rec := range records {
		for _, col := range bank.FeatureColumns {
			if !bank.ValidLevel(rec[col]) {
				rep.errorf("invalid %s level %q for %q", col, rec[col], rec["name"])
			}
		}
	}
}
