// Package ingest turns external candidate sources — static curated
// enumerations and live web scrapes — into the flat record shape the
// merge engine consumes. Every source is an Adapter behind a global
// registry, and the set of sources is tracked in a small SQLite table so
// URL overrides and availability history survive between runs.
package ingest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

// Candidate is the minimum shape a source must produce. Name, Country and
// CountryCode are required; the rest is best-effort.
type Candidate struct {
	Name        string
	Country     string
	CountryCode string
	City        string
	ParentGroup string
	Website     string
}

// Record converts the candidate to a master-shaped placeholder row with
// the (0,0) coordinate sentinel and all maturity fields at "none".
func (c Candidate) Record() bank.Record {
	r := bank.NewPlaceholder()
	r["name"] = c.Name
	r["country"] = c.Country
	r["country_code"] = c.CountryCode
	r["city"] = c.City
	r["parent_group"] = c.ParentGroup
	r["website"] = c.Website
	return r
}

// Adapter is one candidate source.
type Adapter interface {
	// ID returns the unique identifier of this source (e.g. "esbg-members").
	ID() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the default source URL used for seeding the
	// tracking database. Static sources return "".
	DefaultURL() string
	// License returns the license or usage terms identifier for the source.
	License() string
	// Fetch retrieves the source at sourceURL and returns its candidates.
	Fetch(ctx context.Context, sourceURL string) ([]Candidate, error)
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown candidate source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
