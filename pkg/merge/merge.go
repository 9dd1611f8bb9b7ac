// Package merge combines candidate record sets into the master dataset.
// Two policies exist and are deliberately separate entry points: Append
// never mutates existing records, Enrich never touches a record that
// already carries enrichment.
package merge

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

// Stats reports what a merge pass did.
type Stats struct {
	Appended           int // append mode: new records added
	Updated            int // enrich mode: placeholder records filled
	SkippedEnriched    int // enrich mode: records already enriched
	SkippedNoData      int // enrich mode: no candidate row or zero score
	DuplicatesInSet    int // append mode: candidates colliding within the batch
	DuplicatesOfMaster int // append mode: candidates already present in master
}

// Append adds candidates that are not already present, keyed by keyFn.
// Master records are never mutated. A candidate colliding with the master
// set or with an earlier candidate in the same batch is dropped; ordering
// is therefore first-seen-wins and deterministic for deterministic input.
func Append(master, candidates []bank.Record, keyFn bank.NameKey) ([]bank.Record, Stats) {
	var stats Stats

	masterKeys := make(map[string]bool, len(master))
	for _, r := range master {
		masterKeys[keyFn(r["name"])] = true
	}

	merged := make([]bank.Record, len(master), len(master)+len(candidates))
	copy(merged, master)

	accepted := make(map[string]bool)
	for _, c := range candidates {
		key := keyFn(c["name"])
		switch {
		case masterKeys[key]:
			stats.DuplicatesOfMaster++
		case accepted[key]:
			stats.DuplicatesInSet++
		default:
			accepted[key] = true
			merged = append(merged, c)
			stats.Appended++
		}
	}
	return merged, stats
}

// SortByCountryName orders records by country then name, the canonical
// order of the master file.
func SortByCountryName(records []bank.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i]["country"] != records[j]["country"] {
			return records[i]["country"] < records[j]["country"]
		}
		return records[i]["name"] < records[j]["name"]
	})
}

// EnrichColumns are the columns an automated enrichment pass may fill.
// devops_cloud is excluded: the scanner has no signal for it, so only
// manual curation or patches ever set that pair.
var EnrichColumns = []string{
	"mobile_banking", "mobile_banking_evidence",
	"open_banking", "open_banking_evidence",
	"digital_onboarding", "digital_onboarding_evidence",
	"ai_chatbot", "ai_chatbot_evidence",
}

// Enrich applies candidate enrichment rows to placeholder master records,
// matched by exact name. The already-enriched guard runs before any field
// copy: a non-placeholder record is skipped unconditionally. Non-empty
// enrichment columns are copied and digital_score is recomputed from the
// resulting levels (never taken from the candidate). Master is mutated in
// place; the caller is responsible for backup and dry-run handling.
func Enrich(master, candidates []bank.Record, logger *slog.Logger) Stats {
	var stats Stats

	byName := make(map[string]bank.Record, len(candidates))
	for _, c := range candidates {
		byName[c["name"]] = c
	}

	for _, rec := range master {
		if !rec.IsPlaceholder() {
			stats.SkippedEnriched++
			continue
		}

		cand, ok := byName[rec["name"]]
		if !ok {
			stats.SkippedNoData++
			continue
		}
		if score, err := strconv.Atoi(cand["digital_score"]); err != nil || score == 0 {
			stats.SkippedNoData++
			continue
		}

		for _, col := range EnrichColumns {
			if cand[col] != "" {
				rec[col] = cand[col]
			}
		}

		oldScore := rec["digital_score"]
		if oldScore == "" {
			oldScore = "0"
		}
		rec["digital_score"] = strconv.Itoa(bank.ScoreRecord(rec))
		logger.Info("enriched", "bank", rec["name"], "score_before", oldScore, "score_after", rec["digital_score"])
		stats.Updated++
	}
	return stats
}
