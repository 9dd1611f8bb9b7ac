package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	Register(&esbgAdapter{})
}

// esbgAdapter scrapes the WSBI-ESBG member directory. The page layout has
// shifted over the years, so the selectors try the known card variants
// and fall back to article elements.
type esbgAdapter struct{}

func (a *esbgAdapter) ID() string          { return "esbg-members" }
func (a *esbgAdapter) Description() string { return "WSBI-ESBG member directory" }
func (a *esbgAdapter) DefaultURL() string  { return "https://www.wsbi-esbg.org/members/" }
func (a *esbgAdapter) License() string     { return "public directory" }

// countryCodes maps the country labels the directory uses to ISO codes.
var countryCodes = map[string]string{
	"Austria": "AT", "Belgium": "BE", "Bulgaria": "BG", "Croatia": "HR",
	"Czech Republic": "CZ", "Denmark": "DK", "Finland": "FI", "France": "FR",
	"Germany": "DE", "Greece": "GR", "Hungary": "HU", "Iceland": "IS",
	"Italy": "IT", "Luxembourg": "LU", "Malta": "MT", "Netherlands": "NL",
	"Norway": "NO", "Poland": "PL", "Portugal": "PT", "Romania": "RO",
	"Serbia": "RS", "Slovakia": "SK", "Slovenia": "SI", "Spain": "ES",
	"Sweden": "SE", "Switzerland": "CH", "United Kingdom": "GB",
	"Albania": "AL",
}

func (a *esbgAdapter) Fetch(ctx context.Context, sourceURL string) ([]Candidate, error) {
	body, err := fetchHTML(ctx, newFetchClient(), sourceURL)
	if err != nil {
		return nil, err
	}
	return parseESBGMembers(body)
}

func parseESBGMembers(html []byte) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse members page: %w", err)
	}

	var members []Candidate
	doc.Find(".member-card, .member-item, article").Each(func(_ int, card *goquery.Selection) {
		name := strings.TrimSpace(card.Find("h2, h3, .title, .name").First().Text())
		if name == "" {
			return
		}
		country := strings.TrimSpace(card.Find(".country, .location").First().Text())
		website, _ := card.Find("a[href]").First().Attr("href")

		members = append(members, Candidate{
			Name:        name,
			Country:     country,
			CountryCode: countryCodes[country],
			Website:     website,
		})
	})

	if len(members) == 0 {
		return nil, fmt.Errorf("no members found: directory layout may have changed")
	}
	return members, nil
}
