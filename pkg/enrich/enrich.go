// Package enrich is the automated digital-feature scanner: it looks up a
// bank's mobile app in the iTunes Search API and greps the bank's website
// for open-banking, chatbot, and onboarding signals, producing candidate
// enrichment rows for the merge stage. Both lookups are cached in a JSON
// file persisted incrementally, and every network call goes through a
// polite sequential runner. devops_cloud is never claimed by the scanner;
// it has no automatable signal.
package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/jsoncache"
	"github.com/savingsmap/bankpipe/pkg/politely"
)

const (
	defaultItunesURL = "https://itunes.apple.com/search"

	// App-store searches are spaced further apart than website fetches;
	// Apple throttles aggressively.
	itunesDelay  = 3 * time.Second
	websiteDelay = 1500 * time.Millisecond
	callTimeout  = 15 * time.Second

	// maxHTMLBytes caps how much of a page is read and cached.
	maxHTMLBytes = 500 * 1024

	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Scanner runs automated feature detection for placeholder banks.
type Scanner struct {
	cache        *jsoncache.Cache
	itunesRunner *politely.Runner
	webRunner    *politely.Runner
	client       *http.Client
	logger       *slog.Logger

	// ItunesURL is the search endpoint; tests point it at a local server.
	ItunesURL string
}

// NewScanner creates a Scanner over an opened cache.
func NewScanner(cache *jsoncache.Cache, logger *slog.Logger) *Scanner {
	return &Scanner{
		cache:        cache,
		itunesRunner: politely.NewRunner(itunesDelay, callTimeout),
		webRunner:    politely.NewRunner(websiteDelay, callTimeout),
		client:       &http.Client{},
		logger:       logger,
		ItunesURL:    defaultItunesURL,
	}
}

func appCacheKey(name, countryCode string) string {
	return "itunes:" + strings.ToLower(name+"|"+countryCode)
}

func siteCacheKey(website string) string {
	return "web:" + strings.TrimRight(strings.ToLower(website), "/")
}

// SearchApp finds the bank's mobile app on the country storefront,
// falling back to the US store when the local one has no match. Failures
// are cached as negatives and never retried.
func (s *Scanner) SearchApp(ctx context.Context, bankName, countryCode string) *AppResult {
	key := appCacheKey(bankName, countryCode)
	if s.cache.Has(key) {
		var res AppResult
		if found, _ := s.cache.Get(key, &res); found {
			return &res
		}
		return nil
	}

	term := searchTerm(bankName)
	storefront, ok := itunesStorefronts[countryCode]
	if !ok {
		storefront = "us"
	}

	var match *itunesApp
	err := s.itunesRunner.Do(ctx, func(ctx context.Context) error {
		apps, err := s.queryStore(ctx, term, storefront)
		if err != nil {
			return err
		}
		match = matchApp(apps, term)
		return nil
	})
	if err == nil && match == nil && storefront != "us" {
		err = s.itunesRunner.Do(ctx, func(ctx context.Context) error {
			apps, qerr := s.queryStore(ctx, term, "us")
			if qerr != nil {
				return qerr
			}
			match = matchApp(apps, term)
			return nil
		})
	}

	if err != nil {
		s.logger.Warn("app search failed", "bank", bankName, "error", err)
		s.cache.PutNegative(key)
		return nil
	}

	result := &AppResult{Found: false}
	if match != nil {
		result = &AppResult{
			Found:       true,
			TrackName:   match.TrackName,
			ArtistName:  match.ArtistName,
			Rating:      match.AverageUserRating,
			ReviewCount: match.UserRatingCount,
			URL:         match.TrackViewURL,
		}
	}
	s.cache.Put(key, result)
	return result
}

// FetchWebsite retrieves up to maxHTMLBytes of a bank's homepage,
// caching the body (or a negative on any failure or non-HTML response).
func (s *Scanner) FetchWebsite(ctx context.Context, website string) []byte {
	key := siteCacheKey(website)
	if s.cache.Has(key) {
		var html string
		if found, _ := s.cache.Get(key, &html); found {
			return []byte(html)
		}
		return nil
	}

	target := website
	if !strings.HasPrefix(target, "http") {
		target = "https://" + target
	}

	var body []byte
	err := s.webRunner.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9,de;q=0.8,fr;q=0.7,es;q=0.6")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		ct := resp.Header.Get("Content-Type")
		if !strings.Contains(ct, "text/html") && !strings.Contains(ct, "application/xhtml") {
			return fmt.Errorf("non-HTML content type %q", ct)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxHTMLBytes))
		return err
	})

	if err != nil {
		s.logger.Warn("website fetch failed", "url", target, "error", err)
		s.cache.PutNegative(key)
		return nil
	}
	s.cache.Put(key, string(body))
	return body
}

// Assessment is the scanner's verdict for one bank.
type Assessment struct {
	MobileBanking     Finding
	OpenBanking       Finding
	DigitalOnboarding Finding
	AIChatbot         Finding
	Score             int
}

// ScanBank assesses one bank from its app-store presence and website.
func (s *Scanner) ScanBank(ctx context.Context, rec bank.Record) Assessment {
	var a Assessment

	a.MobileBanking = gradeMobileApp(s.SearchApp(ctx, rec["name"], rec["country_code"]))

	if website := rec["website"]; website != "" {
		if html := s.FetchWebsite(ctx, website); html != nil {
			signals := extractSignals(html)
			a.OpenBanking = detectOpenBanking(signals)
			a.AIChatbot = detectChatbot(signals)
			a.DigitalOnboarding = detectOnboarding(signals)

			evidence := rec["website"]
			if a.OpenBanking.Maturity != "none" {
				a.OpenBanking.Evidence = evidence
			}
			if a.AIChatbot.Maturity != "none" {
				a.AIChatbot.Evidence = evidence
			}
			if a.DigitalOnboarding.Maturity != "none" {
				a.DigitalOnboarding.Evidence = evidence
			}
		} else {
			a.OpenBanking = Finding{Maturity: "none"}
			a.AIChatbot = Finding{Maturity: "none"}
			a.DigitalOnboarding = Finding{Maturity: "none"}
		}
	} else {
		a.OpenBanking = Finding{Maturity: "none"}
		a.AIChatbot = Finding{Maturity: "none"}
		a.DigitalOnboarding = Finding{Maturity: "none"}
	}

	// devops_cloud stays "none": the scanner has no signal for it.
	a.Score = bank.Score([]string{
		a.MobileBanking.Maturity,
		a.OpenBanking.Maturity,
		a.DigitalOnboarding.Maturity,
		a.AIChatbot.Maturity,
		"none",
	})
	return a
}

// FeatureHeaders is the column order of the per-feature evidence CSV.
var FeatureHeaders = []string{"name", "country_code", "feature", "maturity", "evidence_url"}

// SummaryHeaders is the column order of the per-bank summary CSV consumed
// by the enrichment merge.
var SummaryHeaders = []string{
	"name", "country_code",
	"mobile_banking", "mobile_banking_evidence",
	"open_banking", "open_banking_evidence",
	"digital_onboarding", "digital_onboarding_evidence",
	"ai_chatbot", "ai_chatbot_evidence",
	"digital_score",
}

// Rows converts an assessment into per-feature evidence rows and the
// per-bank summary row.
func (a Assessment) Rows(rec bank.Record) (features []bank.Record, summary bank.Record) {
	name, cc := rec["name"], rec["country_code"]

	add := func(feature string, f Finding) {
		features = append(features, bank.Record{
			"name": name, "country_code": cc,
			"feature": feature, "maturity": f.Maturity, "evidence_url": f.Evidence,
		})
	}
	add("mobile_banking", a.MobileBanking)
	add("open_banking", a.OpenBanking)
	add("digital_onboarding", a.DigitalOnboarding)
	add("ai_chatbot", a.AIChatbot)

	summary = bank.Record{
		"name":                        name,
		"country_code":                cc,
		"mobile_banking":              a.MobileBanking.Maturity,
		"mobile_banking_evidence":     a.MobileBanking.Evidence,
		"open_banking":                a.OpenBanking.Maturity,
		"open_banking_evidence":       a.OpenBanking.Evidence,
		"digital_onboarding":          a.DigitalOnboarding.Maturity,
		"digital_onboarding_evidence": a.DigitalOnboarding.Evidence,
		"ai_chatbot":                  a.AIChatbot.Maturity,
		"ai_chatbot_evidence":         a.AIChatbot.Evidence,
		"digital_score":               strconv.Itoa(a.Score),
	}
	return features, summary
}
