package enrich

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageSignals is the searchable corpus extracted from one website: the
// visible text plus script sources and link targets, all lowercased.
// Chat widgets live in script tags and API portals behind links, so text
// alone is not enough.
type pageSignals struct {
	text    string
	scripts string
	links   string
}

func (p pageSignals) all() string {
	return p.text + " " + p.scripts + " " + p.links
}

// extractSignals parses HTML into a pageSignals. A parse failure falls
// back to matching against the raw bytes.
func extractSignals(html []byte) pageSignals {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		raw := strings.ToLower(string(html))
		return pageSignals{text: raw}
	}

	var scripts, links strings.Builder
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			scripts.WriteString(strings.ToLower(src))
			scripts.WriteByte(' ')
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			links.WriteString(strings.ToLower(href))
			links.WriteByte(' ')
		}
	})

	return pageSignals{
		text:    strings.ToLower(doc.Text()),
		scripts: scripts.String(),
		links:   links.String(),
	}
}

// Finding is one detected feature level with optional evidence.
type Finding struct {
	Maturity string `json:"maturity"`
	Evidence string `json:"evidence,omitempty"`
}

// openBankingKeywords signal a developer/API surface. Word-ish tokens are
// padded to avoid matching inside longer words ("api" in "rapid").
var openBankingKeywords = []string{
	" api ", "developer", "open banking", "psd2", "openapi", "xs2a", " tpp ",
}

// detectOpenBanking counts keyword hits: three or more reads as a real
// developer portal, a single mention as marketing-level support.
func detectOpenBanking(p pageSignals) Finding {
	corpus := " " + p.all() + " "
	matches := 0
	for _, kw := range openBankingKeywords {
		if strings.Contains(corpus, kw) {
			matches++
		}
	}
	switch {
	case matches >= 3:
		return Finding{Maturity: "intermediate"}
	case matches >= 1:
		return Finding{Maturity: "basic"}
	}
	return Finding{Maturity: "none"}
}

// chatWidgets are hosts and markers of embedded live-chat products.
var chatWidgets = []string{
	"intercom", "drift", "tidio", "livechat", "jivochat", "zendesk",
	"freshchat", "crisp.chat", "tawk.to", "hubspot", "userlike",
	"chatbot", "live-chat", "livechat-widget",
}

func detectChatbot(p pageSignals) Finding {
	corpus := p.all()
	for _, w := range chatWidgets {
		if strings.Contains(corpus, w) {
			return Finding{Maturity: "basic"}
		}
	}
	return Finding{Maturity: "none"}
}

// onboardingPhrases cover account opening in the languages of the
// coverage area.
var onboardingPhrases = []string{
	"online account", "open account", "konto eröffnen", "konto eroffnen",
	"ouvrir un compte", "aprire conto", "abrir cuenta",
	"video ident", "digital onboarding", "öppna konto", "oppna konto",
	"åpne konto", "apne konto", "open an account", "create account",
	"register online", "online registration", "digital account",
}

func detectOnboarding(p pageSignals) Finding {
	corpus := p.all()
	matches := 0
	for _, phrase := range onboardingPhrases {
		if strings.Contains(corpus, phrase) {
			matches++
		}
	}
	switch {
	case matches >= 2:
		return Finding{Maturity: "intermediate"}
	case matches >= 1:
		return Finding{Maturity: "basic"}
	}
	return Finding{Maturity: "none"}
}
