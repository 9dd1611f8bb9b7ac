package rank

import (
	"strings"
	"testing"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

func placeholder(name, cc, city string) bank.Record {
	r := bank.NewPlaceholder()
	r["name"] = name
	r["country_code"] = cc
	r["city"] = city
	return r
}

func TestRankExcludesEnriched(t *testing.T) {
	enriched := placeholder("Done Bank", "NO", "Oslo")
	enriched["mobile_banking"] = "advanced"

	entries := Rank([]bank.Record{enriched, placeholder("Todo Bank", "NO", "Bergen")}, nil, DefaultConfig())

	if len(entries) != 1 || entries[0].Name != "Todo Bank" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestRankOrdering(t *testing.T) {
	// Rich: website + capital + financial data.
	rich := placeholder("Rich Bank", "FR", "Paris")
	rich["website"] = "https://rich.example"
	rich["total_assets_millions_eur"] = "50000"

	poor := placeholder("Poor Bank", "FR", "Nancy")

	entries := Rank([]bank.Record{poor, rich}, nil, DefaultConfig())

	if entries[0].Name != "Rich Bank" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].PriorityScore <= entries[1].PriorityScore {
		t.Fatalf("scores: %d vs %d", entries[0].PriorityScore, entries[1].PriorityScore)
	}
	for _, want := range []string{"has website", "capital city", "has financial data", "assets"} {
		if !strings.Contains(entries[0].Reason, want) {
			t.Errorf("reason %q missing %q", entries[0].Reason, want)
		}
	}
}

func TestRankScanSignal(t *testing.T) {
	a := placeholder("Bank A", "NO", "")
	b := placeholder("Bank B", "NO", "")

	entries := Rank([]bank.Record{a, b}, map[string]int{"Bank B": 40}, DefaultConfig())

	if entries[0].Name != "Bank B" {
		t.Fatalf("entries = %+v", entries)
	}
	if !strings.Contains(entries[0].Reason, "automated signal") {
		t.Fatalf("reason = %q", entries[0].Reason)
	}
	cfg := DefaultConfig()
	if diff := entries[0].PriorityScore - entries[1].PriorityScore; diff != cfg.ScanSignalWeight {
		t.Fatalf("score difference = %d, want %d", diff, cfg.ScanSignalWeight)
	}
}

func TestRankCountrySizeScaling(t *testing.T) {
	records := []bank.Record{
		placeholder("DE 1", "DE", ""),
		placeholder("DE 2", "DE", ""),
		placeholder("DE 3", "DE", ""),
		placeholder("MT 1", "MT", ""),
	}
	entries := Rank(records, nil, DefaultConfig())

	var de, mt int
	for _, e := range entries {
		switch e.CountryCode {
		case "DE":
			de = e.PriorityScore
		case "MT":
			mt = e.PriorityScore
		}
	}
	if de <= mt {
		t.Fatalf("larger market should rank higher: DE=%d MT=%d", de, mt)
	}
}

func TestRankScoreBounds(t *testing.T) {
	r := placeholder("Max Bank", "FR", "Paris")
	r["website"] = "https://max.example"
	r["total_assets_millions_eur"] = "900000"
	r["employee_count"] = "10000"

	entries := Rank([]bank.Record{r}, map[string]int{"Max Bank": 60}, DefaultConfig())
	if got := entries[0].PriorityScore; got < 0 || got > 100 {
		t.Fatalf("score = %d, out of [0, 100]", got)
	}
}

func TestEntryRecord(t *testing.T) {
	e := Entry{Name: "Bank A", Country: "Norway", CountryCode: "NO", PriorityScore: 72, Reason: "has website"}
	rec := e.Record(3)
	if rec["rank"] != "3" || rec["priority_score"] != "72" || rec["name"] != "Bank A" {
		t.Fatalf("rec = %v", rec)
	}
	for _, h := range Headers {
		if _, ok := rec[h]; !ok {
			t.Fatalf("record missing header %q", h)
		}
	}
}
