package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// USD formats a dollar amount with two decimals and thousand separators.
// Example: USD(1234.5) => "$1,234.50"
func USD(amount float64) string {
	neg := amount < 0 || math.Signbit(amount)
	cents := int64(math.Round(math.Abs(amount) * 100))
	major := cents / 100
	minor := cents % 100
	out := fmt.Sprintf("$%s.%02d", thousandSep(major), minor)
	if neg && cents != 0 {
		return "-" + out
	}
	return out
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// DateTime formats an order timestamp for display.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// ShortID truncates backend UUIDs the way order numbers are displayed.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
