// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// Dash is rendered for values the dataset does not report. Missing values
// default to 0 for aggregation but to Dash for display; the two must not be
// conflated.
const Dash = "—"

// FormatMoney formats a dollar amount with human-readable suffixes.
// e.g., 1_234_000 -> "$1.2M", 2_400_000_000 -> "$2.4B"
func FormatMoney(v float64) string {
	abs := v
	sign := ""
	if abs < 0 {
		abs = -abs
		sign = "-"
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s$%.2fB", sign, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// FormatMoneyFull formats a dollar amount with comma separators and no
// rounding to a suffix.
func FormatMoneyFull(v float64) string {
	n := int64(v)
	if n < 0 {
		return "-$" + groupDigits(-n)
	}
	return "$" + groupDigits(n)
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a percentage value (already in percent units).
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// FormatVariance formats a variance percentage with a direction arrow.
// e.g., 3.2 -> "▲ 3.2%", -1.5 -> "▼ 1.5%", 0 -> "· 0.0%"
func FormatVariance(pct float64) string {
	switch {
	case pct > 0:
		return fmt.Sprintf("▲ %.1f%%", pct)
	case pct < 0:
		return fmt.Sprintf("▼ %.1f%%", -pct)
	default:
		return "· 0.0%"
	}
}

// FormatMaybe formats an optional dollar amount, rendering Dash when the
// dataset did not report one.
func FormatMaybe(v *float64) string {
	if v == nil {
		return Dash
	}
	return FormatMoney(*v)
}

// FormatMaybePercent formats an optional percentage, rendering Dash when the
// dataset did not report one.
func FormatMaybePercent(pct *float64) string {
	if pct == nil {
		return Dash
	}
	return FormatPercent(*pct)
}
