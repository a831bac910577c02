package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count formats an integer with thousands separators ("1,234,567").
func Count[T ~int | ~int64 | ~uint64 | ~uint32](n T) string {
	return printer.Sprintf("%d", n)
}

// Rate formats a per-second throughput with a grouped integer part
// ("12,345,678 px/s").
func Rate(perSecond float64, unit string) string {
	return Count(int64(math.Round(perSecond))) + " " + unit + "/s"
}

// FormatNumberString inserts thousands separators into a decimal string.
// Non-numeric input is returned unchanged.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// FormatBytes renders a byte count using binary units.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
