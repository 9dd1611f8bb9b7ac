package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// itunesStorefronts maps ISO country codes to iTunes storefront codes.
// Unknown codes search the US store.
var itunesStorefronts = map[string]string{
	"AT": "at", "BE": "be", "BG": "bg", "HR": "hr", "CZ": "cz", "DK": "dk",
	"FI": "fi", "FR": "fr", "DE": "de", "GR": "gr", "HU": "hu", "IS": "is",
	"IT": "it", "LU": "lu", "MT": "mt", "NL": "nl", "NO": "no", "PL": "pl",
	"PT": "pt", "RO": "ro", "RS": "rs", "SK": "sk", "SI": "si", "ES": "es",
	"SE": "se", "CH": "ch", "GB": "gb", "AL": "al",
}

// AppResult is the cached outcome of an app-store search.
type AppResult struct {
	Found       bool    `json:"found"`
	TrackName   string  `json:"trackName,omitempty"`
	ArtistName  string  `json:"artistName,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"reviewCount,omitempty"`
	URL         string  `json:"url,omitempty"`
}

type itunesApp struct {
	TrackName         string  `json:"trackName"`
	ArtistName        string  `json:"artistName"`
	AverageUserRating float64 `json:"averageUserRating"`
	UserRatingCount   int     `json:"userRatingCount"`
	TrackViewURL      string  `json:"trackViewUrl"`
}

type itunesResponse struct {
	Results []itunesApp `json:"results"`
}

var (
	parenthetical = regexp.MustCompile(`\s*\(.*?\)\s*`)
	noiseWords    = regexp.MustCompile(`(?i)\b(group|alliance|network)\b`)
)

// searchTerm strips parenthetical suffixes and organizational noise words
// from a bank name before searching the store.
func searchTerm(bankName string) string {
	s := parenthetical.ReplaceAllString(bankName, " ")
	s = noiseWords.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// significantWords returns the lowercased name tokens longer than two
// characters, the basis of app matching.
func significantWords(term string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(term)) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// matchApp picks the first result whose track or artist name shares at
// least two significant words with the bank name (or contains the whole
// name).
func matchApp(apps []itunesApp, term string) *itunesApp {
	words := significantWords(term)
	need := min(2, len(words))
	lower := strings.ToLower(term)

	for i := range apps {
		combined := strings.ToLower(apps[i].TrackName + " " + apps[i].ArtistName)
		count := 0
		for _, w := range words {
			if strings.Contains(combined, w) {
				count++
			}
		}
		if (need > 0 && count >= need) || strings.Contains(combined, lower) {
			return &apps[i]
		}
	}
	return nil
}

func (s *Scanner) queryStore(ctx context.Context, term, storefront string) ([]itunesApp, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("country", storefront)
	q.Set("entity", "software")
	q.Set("limit", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ItunesURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("itunes status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed itunesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return parsed.Results, nil
}

// gradeMobileApp converts an app-store hit into a maturity finding. A
// well-rated app with a large review base reads as advanced.
func gradeMobileApp(res *AppResult) Finding {
	if res == nil || !res.Found {
		return Finding{Maturity: "none"}
	}
	switch {
	case res.Rating >= 4.0 && res.ReviewCount > 1000:
		return Finding{Maturity: "advanced", Evidence: res.URL}
	case res.Rating >= 3.0 || res.ReviewCount > 100:
		return Finding{Maturity: "intermediate", Evidence: res.URL}
	}
	return Finding{Maturity: "basic", Evidence: res.URL}
}
