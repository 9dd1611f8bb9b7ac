package merge

import (
	"log/slog"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/patch"
)

// FinancialColumns are the balance-sheet fields that can be imported
// from external financial datasets.
var FinancialColumns = []string{
	"total_assets_millions_eur",
	"customer_count_thousands",
	"deposit_volume_millions_eur",
	"loan_volume_millions_eur",
	"employee_count",
	"branch_count",
	"founded_year",
	"reporting_year",
}

// FinancialStats reports the outcome of a Financial merge.
type FinancialStats struct {
	RecordsChanged int
	FieldsChanged  int
	RejectedFields int
	MissingRecords int
}

// Financial fills empty financial fields on master records from a
// candidate dataset matched by exact name. Populated master fields are
// left alone, and candidate values outside the plausible range for
// their field are rejected and logged. master is modified in place.
func Financial(master, candidates []bank.Record, logger *slog.Logger) FinancialStats {
	var stats FinancialStats

	byName := make(map[string]bank.Record, len(master))
	for _, rec := range master {
		byName[rec["name"]] = rec
	}

	for _, cand := range candidates {
		rec, ok := byName[cand["name"]]
		if !ok {
			stats.MissingRecords++
			logger.Warn("financial data for unknown bank", "name", cand["name"])
			continue
		}
		changed := false
		for _, col := range FinancialColumns {
			if rec[col] != "" || cand[col] == "" {
				continue
			}
			value, err := patch.ValidateFinancial(col, cand[col])
			if err != nil {
				stats.RejectedFields++
				logger.Warn("rejected financial value",
					"name", cand["name"], "field", col, "value", cand[col], "error", err)
				continue
			}
			rec[col] = value
			stats.FieldsChanged++
			changed = true
		}
		if changed {
			stats.RecordsChanged++
		}
	}
	return stats
}
