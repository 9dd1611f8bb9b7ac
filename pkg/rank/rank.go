// Package rank orders placeholder banks by how much a manual research
// pass on them would be worth: market size, capital-city presence,
// financial footprint, and whether the automated scanner already found a
// signal.
package rank

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

// Config carries the ranking weights and the capital-city table.
type Config struct {
	WebsiteWeight     int
	CapitalWeight     int
	CountrySizeWeight int
	FinancialWeight   int
	AssetWeight       int
	ScanSignalWeight  int
	// Capitals maps country codes to lowercase capital-city names.
	Capitals map[string]string
}

// DefaultConfig returns the standard weights (sum of fixed bonuses and
// scaled maxima is 100).
func DefaultConfig() Config {
	return Config{
		WebsiteWeight:     30,
		CapitalWeight:     20,
		CountrySizeWeight: 15,
		FinancialWeight:   10,
		AssetWeight:       15,
		ScanSignalWeight:  10,
		Capitals: map[string]string{
			"AT": "vienna", "BE": "brussels", "BG": "sofia", "HR": "zagreb",
			"CZ": "prague", "DK": "copenhagen", "FI": "helsinki", "FR": "paris",
			"DE": "berlin", "GR": "athens", "HU": "budapest", "IS": "reykjavik",
			"IT": "rome", "LU": "luxembourg", "MT": "valletta", "NL": "amsterdam",
			"NO": "oslo", "PL": "warsaw", "PT": "lisbon", "RO": "bucharest",
			"RS": "belgrade", "SK": "bratislava", "SI": "ljubljana",
			"ES": "madrid", "SE": "stockholm", "CH": "bern", "GB": "london",
			"AL": "tirana",
		},
	}
}

// Entry is one ranked placeholder bank.
type Entry struct {
	Name          string
	Country       string
	CountryCode   string
	City          string
	Website       string
	PriorityScore int
	Reason        string
}

// Headers is the column order of the research worklist CSV.
var Headers = []string{"rank", "name", "country", "country_code", "city", "website", "priority_score", "reason"}

// Record converts an entry to a CSV row at the given 1-based rank.
func (e Entry) Record(rankPos int) bank.Record {
	return bank.Record{
		"rank":           strconv.Itoa(rankPos),
		"name":           e.Name,
		"country":        e.Country,
		"country_code":   e.CountryCode,
		"city":           e.City,
		"website":        e.Website,
		"priority_score": strconv.Itoa(e.PriorityScore),
		"reason":         e.Reason,
	}
}

// Rank scores every placeholder record and returns them in descending
// priority order. scanScores maps bank name to the automated scanner's
// digital score, when a summary is available.
func Rank(records []bank.Record, scanScores map[string]int, cfg Config) []Entry {
	countryCount := make(map[string]int)
	for _, r := range records {
		countryCount[r["country_code"]]++
	}
	maxCount := 1
	for _, n := range countryCount {
		if n > maxCount {
			maxCount = n
		}
	}

	var ranked []Entry
	for _, r := range records {
		if !r.IsPlaceholder() {
			continue
		}

		score := 0
		var reasons []string

		if strings.HasPrefix(r["website"], "http") {
			score += cfg.WebsiteWeight
			reasons = append(reasons, "has website")
		}

		if capital := cfg.Capitals[r["country_code"]]; capital != "" &&
			strings.Contains(strings.ToLower(r["city"]), capital) {
			score += cfg.CapitalWeight
			reasons = append(reasons, "capital city")
		}

		count := countryCount[r["country_code"]]
		if count == 0 {
			count = 1
		}
		if cs := int(math.Round(float64(cfg.CountrySizeWeight) * float64(count) / float64(maxCount))); cs > 0 {
			score += cs
			reasons = append(reasons, "country size ("+strconv.Itoa(count)+" banks)")
		}

		if (r["total_assets_millions_eur"] != "" && r["total_assets_millions_eur"] != "0") ||
			(r["employee_count"] != "" && r["employee_count"] != "0") {
			score += cfg.FinancialWeight
			reasons = append(reasons, "has financial data")
		}

		// Log scale: 100M in assets is worth ~5, 100B tops out the weight.
		if assets, err := strconv.ParseFloat(r["total_assets_millions_eur"], 64); err == nil && assets > 0 {
			as := int(math.Round(3 * math.Log10(assets)))
			if as > cfg.AssetWeight {
				as = cfg.AssetWeight
			}
			score += as
			reasons = append(reasons, "assets")
		}

		if scanScores[r["name"]] > 0 {
			score += cfg.ScanSignalWeight
			reasons = append(reasons, "automated signal detected")
		}

		ranked = append(ranked, Entry{
			Name:          r["name"],
			Country:       r["country"],
			CountryCode:   r["country_code"],
			City:          r["city"],
			Website:       r["website"],
			PriorityScore: score,
			Reason:        strings.Join(reasons, "; "),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})
	return ranked
}
