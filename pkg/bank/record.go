// Package bank defines the record shape of the master savings-bank dataset
// and the identity and scoring rules shared by every pipeline stage.
package bank

// Maturity levels for the five digital capability categories.
const (
	LevelNone         = "none"
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// FeatureColumns are the five digital maturity categories, in master
// column order.
var FeatureColumns = []string{
	"mobile_banking",
	"open_banking",
	"digital_onboarding",
	"ai_chatbot",
	"devops_cloud",
}

// MasterHeaders is the fixed column order of the master CSV.
var MasterHeaders = []string{
	"name", "country", "country_code", "city", "address",
	"latitude", "longitude", "parent_group", "website", "founded_year",
	"total_assets_millions_eur", "customer_count_thousands",
	"deposit_volume_millions_eur", "loan_volume_millions_eur",
	"employee_count", "branch_count", "reporting_year",
	"mobile_banking", "mobile_banking_evidence",
	"open_banking", "open_banking_evidence",
	"digital_onboarding", "digital_onboarding_evidence",
	"ai_chatbot", "ai_chatbot_evidence",
	"devops_cloud", "devops_cloud_evidence",
	"digital_score", "featured",
}

// Record is one bank row, keyed by header name. Missing columns read as "".
type Record map[string]string

// NewPlaceholder returns a master-shaped record for a freshly ingested
// candidate: location defaults to the (0,0) sentinel, every maturity
// field to "none", and featured to "false".
func NewPlaceholder() Record {
	r := make(Record, len(MasterHeaders))
	for _, h := range MasterHeaders {
		r[h] = ""
	}
	r["latitude"] = "0"
	r["longitude"] = "0"
	for _, f := range FeatureColumns {
		r[f] = LevelNone
	}
	r["digital_score"] = "0"
	r["featured"] = "false"
	return r
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Levels returns the five maturity values in FeatureColumns order.
func (r Record) Levels() []string {
	levels := make([]string, len(FeatureColumns))
	for i, f := range FeatureColumns {
		levels[i] = r[f]
	}
	return levels
}

// IsPlaceholder reports whether no enrichment has been applied yet:
// every maturity field is empty or "none".
func (r Record) IsPlaceholder() bool {
	for _, f := range FeatureColumns {
		if v := r[f]; v != "" && v != LevelNone {
			return false
		}
	}
	return true
}

// ValidLevel reports whether v is an accepted maturity value. The empty
// string is tolerated in stored data; the validator counts anything else
// as an error.
func ValidLevel(v string) bool {
	switch v {
	case "", LevelNone, LevelBasic, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
