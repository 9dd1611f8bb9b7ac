package enrich

import "testing"

func TestDetectOpenBanking(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"developer portal",
			`<html><body><a href="/developer">Developer portal</a>
			 <p>Our PSD2 open banking APIs follow the XS2A standard.</p></body></html>`,
			"intermediate",
		},
		{
			"single mention",
			`<html><body><p>We support open banking.</p></body></html>`,
			"basic",
		},
		{
			"no signal",
			`<html><body><p>Rapid loans for everyone.</p></body></html>`,
			"none",
		},
		{
			"api not matched inside words",
			`<html><body><p>rapid therapies</p></body></html>`,
			"none",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOpenBanking(extractSignals([]byte(tt.html)))
			if got.Maturity != tt.want {
				t.Errorf("got %q, want %q", got.Maturity, tt.want)
			}
		})
	}
}

func TestDetectChatbot(t *testing.T) {
	withWidget := `<html><head><script src="https://widget.intercom.io/widget/abc.js"></script></head>
	<body>Welcome</body></html>`
	got := detectChatbot(extractSignals([]byte(withWidget)))
	if got.Maturity != "basic" {
		t.Fatalf("script widget: got %q, want basic", got.Maturity)
	}

	plain := `<html><body><p>Call our branch.</p></body></html>`
	got = detectChatbot(extractSignals([]byte(plain)))
	if got.Maturity != "none" {
		t.Fatalf("plain page: got %q, want none", got.Maturity)
	}
}

func TestDetectOnboarding(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"two phrases",
			`<html><body><a href="/register">Open an account</a>
			 <p>Identify yourself via video ident.</p></body></html>`,
			"intermediate",
		},
		{
			"one phrase german",
			`<html><body><p>Jetzt Konto eröffnen</p></body></html>`,
			"basic",
		},
		{
			"nothing",
			`<html><body><p>Visit us in person.</p></body></html>`,
			"none",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOnboarding(extractSignals([]byte(tt.html)))
			if got.Maturity != tt.want {
				t.Errorf("got %q, want %q", got.Maturity, tt.want)
			}
		})
	}
}

func TestExtractSignalsUnparseable(t *testing.T) {
	// Raw fallback still participates in matching.
	p := extractSignals([]byte("PSD2 open banking developer"))
	if got := detectOpenBanking(p); got.Maturity == "none" {
		t.Fatalf("raw fallback should still match, got %q", got.Maturity)
	}
}
