package bankcsv

import (
	"strings"
	"testing"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

func TestParseBasic(t *testing.T) {
	headers, records := Parse("name,country\nBank A,France\nBank B,Spain\n")
	if len(headers) != 2 || headers[0] != "name" || headers[1] != "country" {
		t.Fatalf("headers = %v", headers)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["name"] != "Bank A" || records[1]["country"] != "Spain" {
		t.Fatalf("records = %v", records)
	}
}

func TestParseQuoting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quoted comma", "name\n\"Banque, Populaire\"\n", "Banque, Populaire"},
		{"escaped quote", "name\n\"Caja \"\"Sur\"\"\"\n", `Caja "Sur"`},
		{"newline inside quotes", "name\n\"Line1\nLine2\"\n", "Line1\nLine2"},
		{"unterminated quote at EOF", "name\n\"Banco Aberto", "Banco Aberto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, records := Parse(tt.input)
			if len(records) != 1 {
				t.Fatalf("expected 1 record, got %d", len(records))
			}
			if got := records[0]["name"]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCRLFAndBlankRows(t *testing.T) {
	input := "name,city\r\nBank A,Oslo\r\n\r\n   ,  \r\nBank B,Bergen\r\n"
	_, records := Parse(input)
	if len(records) != 2 {
		t.Fatalf("expected blank rows dropped, got %d records", len(records))
	}
	if records[1]["city"] != "Bergen" {
		t.Fatalf("records = %v", records)
	}
}

func TestParseShortRowPadded(t *testing.T) {
	_, records := Parse("name,country,city\nBank A,France\n")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["city"] != "" {
		t.Fatalf("missing column should read as empty, got %q", records[0]["city"])
	}
}

func TestParseTrimsValues(t *testing.T) {
	_, records := Parse("name , country \n  Bank A ,  France  \n")
	if records[0]["name"] != "Bank A" || records[0]["country"] != "France" {
		t.Fatalf("values not trimmed: %v", records[0])
	}
}

func TestParseEmpty(t *testing.T) {
	headers, records := Parse("")
	if headers != nil || records != nil {
		t.Fatalf("expected nil results for empty input, got %v / %v", headers, records)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"plain", "plain"},
		{"has,comma", `"has,comma"`},
		{`has "quote"`, `"has ""quote"""`},
		{"has\nnewline", "\"has\nnewline\""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Escape(tt.input); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	headers := []string{"name", "city", "note"}
	records := []bank.Record{
		{"name": "Banque, Populaire", "city": "Paris", "note": `said "hello"`},
		{"name": "Bank B", "city": "Oslo", "note": "line1\nline2"},
	}

	out := Serialize(headers, records)
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("serialized output must end with a newline")
	}

	gotHeaders, gotRecords := Parse(out)
	if len(gotHeaders) != len(headers) {
		t.Fatalf("headers = %v", gotHeaders)
	}
	if len(gotRecords) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(gotRecords))
	}
	for i, want := range records {
		for _, h := range headers {
			if gotRecords[i][h] != want[h] {
				t.Errorf("record %d col %s: got %q, want %q", i, h, gotRecords[i][h], want[h])
			}
		}
	}
}

func TestSerializeMissingColumns(t *testing.T) {
	out := Serialize([]string{"a", "b"}, []bank.Record{{"a": "1"}})
	if out != "a,b\n1,\n" {
		t.Fatalf("got %q", out)
	}
}
