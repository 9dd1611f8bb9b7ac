// Package bankcsv reads and writes the dataset's CSV dialect:
// comma-delimited, double-quote escaped ("" inside quoted fields), LF or
// CRLF line endings, whitespace-only rows discarded. It is deliberately
// more lenient than RFC 4180 — an unterminated quoted field at end of
// input is accepted and implicitly closed, because that is what every
// historical producer of these files tolerated.
package bankcsv

import (
	"strings"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

// Parse scans text into a header list and header-keyed records. The first
// non-blank row is the header; short rows are padded with empty strings
// and every value is trimmed of surrounding whitespace. Parse never fails:
// malformed quoting degrades to a best-effort read.
func Parse(text string) (headers []string, records []bank.Record) {
	rows := splitRows(text)
	if len(rows) == 0 {
		return nil, nil
	}

	headers = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records = make([]bank.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(bank.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return headers, records
}

// splitRows is a single left-to-right scan over the input maintaining an
// inQuotes flag. Unquoted \n and \r\n both terminate a row; rows whose
// cells are all blank are dropped.
func splitRows(text string) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	flush := func() {
		row = append(row, cell.String())
		cell.Reset()
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				rows = append(rows, row)
				break
			}
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inQuotes {
			if ch == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\n', '\r':
			flush()
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			cell.WriteByte(ch)
		}
	}

	// Trailing row without a final newline; an open quote at this point is
	// implicitly closed.
	if cell.Len() > 0 || len(row) > 0 {
		flush()
	}
	return rows
}

// Escape quotes a field when it contains a comma, double quote, or
// newline, doubling internal quotes.
func Escape(val string) string {
	if strings.ContainsAny(val, ",\"\n") {
		return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
	}
	return val
}

// Serialize writes records in header-declared column order, one line per
// record, ending with a single trailing newline.
func Serialize(headers []string, records []bank.Record) string {
	var b strings.Builder

	for i, h := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(h))
	}
	b.WriteByte('\n')

	for _, rec := range records {
		for i, h := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Escape(rec[h]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
