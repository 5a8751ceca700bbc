package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Supported spreadsheet date shapes, in priority order:
//
//	2025/03/10, 2025.03.10
//	2025-03-10
//	March-25, Mar-25            (day defaults to 1, year to 20YY)
//	شهر 3                       (month shorthand: current year, day 1)
//	شحن 10-3                    (ship DD-MM shorthand: current year)
//	10-03-2025
var (
	reYMDSlash = regexp.MustCompile(`^(\d{4})[/.](\d{1,2})[/.](\d{1,2})$`)
	reYMDDash  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	reMonthYY  = regexp.MustCompile(`^([A-Za-z]+)[-\s](\d{2})$`)
	reShahrN   = regexp.MustCompile(`^شهر\s*(\d{1,2})$`)
	reShahnDM  = regexp.MustCompile(`^شحن\s*(\d{1,2})-(\d{1,2})$`)
	reDMY      = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// now is swapped out in tests that exercise the current-year shorthands.
var now = time.Now

// ParseDate converts a raw cell into a calendar date. It never fails:
// anything it cannot interpret yields nil. Two-digit years are always
// resolved as 20YY.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if m := reYMDSlash.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := reYMDDash.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := reMonthYY.FindStringSubmatch(s); m != nil {
		month, ok := monthNames[strings.ToLower(m[1])]
		if !ok {
			return nil
		}
		return makeDate(2000+atoi(m[2]), int(month), 1)
	}
	if m := reShahrN.FindStringSubmatch(s); m != nil {
		return makeDate(now().Year(), atoi(m[1]), 1)
	}
	if m := reShahnDM.FindStringSubmatch(s); m != nil {
		return makeDate(now().Year(), atoi(m[2]), atoi(m[1]))
	}
	if m := reDMY.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	}
	return nil
}

// FormatDate renders a date in the canonical ISO form used everywhere
// downstream of normalization.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func makeDate(year, month, day int) *time.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflow such as Feb 30.
	if t.Day() != day || int(t.Month()) != month {
		return nil
	}
	return &t
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
