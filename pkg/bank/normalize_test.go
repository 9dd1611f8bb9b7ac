package bank

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Crédit Agricole", "creditagricole"},
		{"CREDIT AGRICOLE", "creditagricole"},
		{"Caixa d'Estalvis", "caixadestalvis"},
		{"Sparkasse Köln/Bonn", "sparkassekolnbonn"},
		{"  La Banque  Postale  ", "labanquepostale"},
		{"Säästöpankki", "saastopankki"},
		{"SpareBank 1 SMN", "sparebank1smn"},
		{"Ñoño Bank", "nonobank"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		got := NormalizeName(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, input := range []string{"Crédit Agricole", "Sparkasse Köln", "SpareBank 1"} {
		once := NormalizeName(input)
		twice := NormalizeName(once)
		if once != twice {
			t.Errorf("NormalizeName not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeNameCollision(t *testing.T) {
	// Differently accented and cased spellings of the same bank must
	// collapse to the same key.
	pairs := [][2]string{
		{"Crédit Agricole", "credit agricole"},
		{"BANCA MONTE DEI PASCHI", "Banca Monte dei Paschi"},
		{"Erste Bank & Sparkasse", "Erste Bank  Sparkasse"},
	}
	for _, p := range pairs {
		if NormalizeName(p[0]) != NormalizeName(p[1]) {
			t.Errorf("expected %q and %q to normalize identically", p[0], p[1])
		}
	}
}
