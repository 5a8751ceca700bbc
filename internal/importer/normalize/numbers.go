package normalize

import (
	"strconv"
	"strings"
)

// ParseWeight reads a cargo weight in metric tons. Comma decimals are
// accepted ("1234,5"); a range "A-B" collapses to its first bound.
func ParseWeight(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	if i := strings.Index(s, "-"); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseInteger reads a base-10 integer, nil on anything else.
func ParseInteger(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
