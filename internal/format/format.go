// Package format renders field trip values for display.
// Nothing here changes the values themselves.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency formats amount in New Zealand dollars: "$1,234.50".
func Currency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// LongDate formats t in loc as "Saturday, 10 October 2026".
// A nil loc means UTC.
func LongDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("Monday, 2 January 2006")
}
