package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnlimitedThreshold is the sentinel above which a mint allowance is treated
// as unlimited. The exact value is load-bearing for display compatibility.
var UnlimitedThreshold = decimal.New(1, 50)

// Unlimited is the formatted representation of an unlimited allowance.
const Unlimited = "Unlimited"

var (
	groupingThreshold = decimal.NewFromInt(1000)
	smallThreshold    = decimal.RequireFromString("0.0001")
)

// SafeParse parses a string into a decimal, returning zero for invalid or
// empty input. Malformed chain data must never panic display code.
func SafeParse(value string) decimal.Decimal {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders a quantity for display:
//   - >= 1000: thousands-grouped with 2 decimal places
//   - < 0.0001 and non-zero: exponential notation
//   - otherwise: up to 4 decimal places, trailing zeros trimmed
func FormatAmount(d decimal.Decimal) string {
	abs := d.Abs()

	if abs.GreaterThanOrEqual(groupingThreshold) {
		return groupThousands(d.StringFixed(2))
	}

	if !d.IsZero() && abs.LessThan(smallThreshold) {
		f, _ := d.Float64()
		return fmt.Sprintf("%.4e", f)
	}

	s := d.StringFixed(4)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatAllowance renders a mint allowance quantity, collapsing anything at
// or above the unlimited sentinel to "Unlimited".
func FormatAllowance(d decimal.Decimal) string {
	if d.GreaterThanOrEqual(UnlimitedThreshold) {
		return Unlimited
	}
	return FormatAmount(d)
}

// groupThousands inserts comma separators into the integer part of a fixed
// decimal string, e.g. "1234567.89" -> "1,234,567.89".
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		return "-" + out
	}
	return out
}
