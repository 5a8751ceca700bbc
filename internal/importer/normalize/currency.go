package normalize

import (
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var reNumericRun = regexp.MustCompile(`-?\d[\d.,]*`)

// ParseCurrency extracts a USD amount from a raw cell. Rules, in order:
//
//   - a bare dash ("-", "$ -", "$-") is the bookkeeping convention for
//     zero, not for "unknown";
//   - qualifier words around a number ("FOB 1,200", "cost 300$") are
//     discarded and the numeric run kept;
//   - when both comma and period appear, whichever is rightmost is the
//     decimal separator and the other is a thousands separator;
//   - with only commas, a single trailing group of exactly three digits
//     is a thousands separator, anything else makes the last comma the
//     decimal separator.
//
// Unparseable input yields nil, never an error.
func ParseCurrency(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\u00a0", " ") // nbsp
	stripped := strings.TrimSpace(strings.ReplaceAll(s, "$", ""))
	if stripped == "-" {
		zero := 0.0
		return &zero
	}

	num := reNumericRun.FindString(stripped)
	if num == "" {
		return nil
	}
	num = normalizeSeparators(num)

	d, err := decimal.NewFromString(num)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

// FormatCurrency renders a USD amount the way the dry-run preview shows
// money, e.g. "$1,234.56". Round-tripping through ParseCurrency is stable.
func FormatCurrency(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

func normalizeSeparators(num string) string {
	lastComma := strings.LastIndex(num, ",")
	lastPeriod := strings.LastIndex(num, ".")

	switch {
	case lastComma >= 0 && lastPeriod >= 0:
		if lastComma > lastPeriod {
			// European style: 1.234,56
			num = strings.ReplaceAll(num, ".", "")
			num = strings.Replace(num, ",", ".", 1)
		} else {
			// American style: 1,234.56
			num = strings.ReplaceAll(num, ",", "")
		}
	case lastComma >= 0:
		if len(num)-lastComma-1 == 3 {
			num = strings.ReplaceAll(num, ",", "")
		} else {
			num = strings.ReplaceAll(num[:lastComma], ",", "") + "." + num[lastComma+1:]
		}
	}
	return num
}
