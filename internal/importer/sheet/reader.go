package sheet

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const utf8BOM = "\uFEFF"

// Title/caption lines the spreadsheet tool prepends before the header.
var reTitleLine = regexp.MustCompile(`(?i)^\s*(shipments|contracts|table\s*\d*)\s*;*\s*$`)

// Substrings that identify the header row in either language.
var headerMarkers = []string{"رقم", "المورد", "contract", "supplier", "s/n", "b/l"}

// ReadFile parses one export file into raw rows under the given layout.
func ReadFile(path string, layout Layout) ([]RawRow, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content), layout)
}

// Parse reads one export's content into raw rows under the given layout.
// It strips a UTF-8 BOM, skips leading title lines, accumulates the
// header block across wrapped physical lines, and drops rows that carry
// no data. Content without a recognizable header is an error; a
// malformed data row never is.
func Parse(content string, layout Layout) ([]RawRow, error) {
	content = strings.TrimPrefix(content, utf8BOM)
	lines := strings.Split(content, "\n")

	idx := headerStart(lines)
	if idx < 0 {
		return nil, fmt.Errorf("header row not found")
	}

	// The header may wrap: cells with embedded newlines split it across
	// physical lines. Accumulate until the expected delimiter count.
	wantDelims := layout.Columns() - 1
	delims := 0
	for idx < len(lines) && delims < wantDelims {
		delims += countDelimiters(lines[idx])
		idx++
	}
	if delims < wantDelims {
		return nil, fmt.Errorf("header block truncated: %d of %d delimiters", delims, wantDelims)
	}

	var rows []RawRow
	for ; idx < len(lines); idx++ {
		line := strings.TrimSuffix(lines[idx], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := mapFields(layout, SplitLine(line), idx+1)
		if r.IsBlank() {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// headerStart returns the index of the first physical line that belongs
// to the header block, skipping leading title/caption lines.
func headerStart(lines []string) int {
	for i, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if trimmed == "" || reTitleLine.MatchString(trimmed) {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, m := range headerMarkers {
			if strings.Contains(lower, m) {
				return i
			}
		}
		// First substantial non-title line without a marker: not a
		// recognizable export.
		return -1
	}
	return -1
}
