// Package csvexport renders the report downloads. Escaping follows the rule
// the spreadsheet imports expect: a field containing a comma, quote, or
// newline is wrapped in double quotes with embedded quotes doubled; anything
// else is emitted unmodified. Output carries a UTF-8 byte-order-mark so Excel
// detects the encoding.
package csvexport

import "strings"

// BOM is prepended to every download.
const BOM = "\ufeff"

func Escape(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// Generate joins headers and rows into CSV lines without a trailing newline.
func Generate(headers []string, rows [][]string) string {
	var b strings.Builder
	writeRow(&b, headers)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(f))
	}
}

// Document wraps finished CSV content with the BOM.
func Document(content string) []byte {
	return []byte(BOM + content)
}
