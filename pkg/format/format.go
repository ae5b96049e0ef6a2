package format

import (
	"strconv"
	"strings"
	"time"
)

// Money renders a whole-peso amount with the peso prefix and comma grouping,
// matching the site's display format, e.g. Money(20000) == "₱20,000".
func Money(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("₱")

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(",")
		}
	}
	return b.String()
}

// LongDate renders a calendar date in long form, e.g. "January 2, 2026".
func LongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
