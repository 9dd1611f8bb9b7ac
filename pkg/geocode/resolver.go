// Package geocode resolves city+country pairs to coordinates through the
// Nominatim search API, with a persistent cache and a country-centroid
// fallback. Failed lookups are cached as negatives — a key that failed
// once is never retried until the cache file is cleared.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/savingsmap/bankpipe/pkg/jsoncache"
	"github.com/savingsmap/bankpipe/pkg/politely"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org/search"
	userAgent      = "EU-Savings-Bank-Map/1.0 (research project)"

	// Nominatim usage policy: at most one request per second. 1.1s keeps
	// a margin.
	minDelay    = 1100 * time.Millisecond
	callTimeout = 15 * time.Second
)

// Resolver is a cache-backed Nominatim client.
type Resolver struct {
	cfg    Config
	cache  *jsoncache.Cache
	runner *politely.Runner
	client *http.Client
	logger *slog.Logger

	// BaseURL is the search endpoint; tests point it at a local server.
	BaseURL string

	// Stats for the run summary.
	CacheHits    int
	NetworkCalls int
	Failures     int
}

// NewResolver creates a Resolver over an opened cache.
func NewResolver(cfg Config, cache *jsoncache.Cache, logger *slog.Logger) *Resolver {
	return &Resolver{
		cfg:     cfg,
		cache:   cache,
		runner:  politely.NewRunner(minDelay, callTimeout),
		client:  &http.Client{},
		logger:  logger,
		BaseURL: defaultBaseURL,
	}
}

// CacheKey is the persistent cache key for a city lookup:
// "<city>, <country-name>" lowercased.
func (r *Resolver) CacheKey(city, countryCode string) string {
	return strings.ToLower(city + ", " + r.cfg.Names[countryCode])
}

// Resolve returns coordinates for a city, or nil when the lookup failed
// (now or on any previous run). Cache hits return immediately with no
// network call and no rate-limit delay.
func (r *Resolver) Resolve(ctx context.Context, city, countryCode string) (*Point, error) {
	if city == "" {
		return nil, nil
	}
	key := r.CacheKey(city, countryCode)

	if r.cache.Has(key) {
		var p Point
		found, _ := r.cache.Get(key, &p)
		r.CacheHits++
		if !found {
			return nil, nil
		}
		return &p, nil
	}

	var result *Point
	err := r.runner.Do(ctx, func(ctx context.Context) error {
		p, err := r.lookup(ctx, city, countryCode)
		if err != nil {
			return err
		}
		result = p
		return nil
	})
	r.NetworkCalls++

	if err != nil || result == nil {
		if err != nil {
			r.logger.Warn("geocode failed", "city", city, "country", countryCode, "error", err)
		}
		r.Failures++
		if cerr := r.cache.PutNegative(key); cerr != nil {
			return nil, cerr
		}
		return nil, nil
	}

	if cerr := r.cache.Put(key, result); cerr != nil {
		return nil, cerr
	}
	return result, nil
}

// nominatimResult is the subset of the search response we read. Nominatim
// returns coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (r *Resolver) lookup(ctx context.Context, city, countryCode string) (*Point, error) {
	q := url.Values{}
	q.Set("q", city+", "+r.cfg.Names[countryCode])
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", strings.ToLower(countryCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return nil, fmt.Errorf("bad coordinates %q,%q", results[0].Lat, results[0].Lon)
	}
	return &Point{Lat: lat, Lng: lng}, nil
}

// Fallback exposes the country-centroid table for callers applying
// coordinates after a failed resolve.
func (r *Resolver) Fallback(countryCode string) Point {
	return r.cfg.Fallback(countryCode)
}
