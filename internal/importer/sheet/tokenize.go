// Package sheet reads the semicolon-delimited spreadsheet exports the
// trade office produces: an optional title line, a header block that may
// wrap across physical lines, then positional data rows.
package sheet

import "strings"

// Delimiter is fixed; the export format is known and not negotiable.
const Delimiter = ';'

// SplitLine tokenizes one physical line. Double quotes enclose fields
// that may contain literal semicolons; a doubled quote inside a quoted
// field is an escaped quote.
func SplitLine(line string) []string {
	line = strings.TrimSuffix(line, "\r")

	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == Delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}

// countDelimiters counts semicolons outside quoted regions. Used when
// accumulating a header block that wraps across physical lines.
func countDelimiters(line string) int {
	n := 0
	inQuotes := false
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == Delimiter && !inQuotes:
			n++
		}
	}
	return n
}
