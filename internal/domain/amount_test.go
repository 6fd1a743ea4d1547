package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid integer", "100", "100"},
		{"valid decimal", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"negative", "-5.5", "-5.5"},
		{"empty string", "", "0"},
		{"invalid string", "abc", "0"},
		{"whitespace", "  ", "0"},
		{"padded valid", " 42 ", "42"},
		{"beyond float64", "100000000000000000000000000000000000000000000000000", "1e50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeParse(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"grouped large", "1234567.891", "1,234,567.89"},
		{"exactly one thousand", "1000", "1,000.00"},
		{"just below grouping rounds on 4dp path", "999.99999", "1000"},
		{"mid range", "999.5", "999.5"},
		{"four decimals", "1.23456", "1.2346"},
		{"trailing zeros trimmed", "5.5000", "5.5"},
		{"integer", "42", "42"},
		{"zero", "0", "0"},
		{"tiny non-zero", "0.00005", "5.0000e-05"},
		{"boundary small kept plain", "0.0001", "0.0001"},
		{"negative grouped", "-12345", "-12,345.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(SafeParse(tt.input))
			if got != tt.want {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAmountBelowGroupingRoundsUp(t *testing.T) {
	// 999.99999 rounds to 1000.00 at 2dp only when already >= 1000; below the
	// threshold it takes the 4dp path.
	got := FormatAmount(SafeParse("999.99994"))
	if got != "999.9999" {
		t.Errorf("FormatAmount(999.99994) = %q, want 999.9999", got)
	}
}

func TestFormatAllowance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"at sentinel", "1e50", Unlimited},
		{"above sentinel", "2e50", Unlimited},
		{"just below sentinel", "99999999999999999999999999999999999999999999999999",
			"99,999,999,999,999,999,999,999,999,999,999,999,999,999,999,999,999.00"},
		{"ordinary", "950", "950"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAllowance(SafeParse(tt.input))
			if got != tt.want {
				t.Errorf("FormatAllowance(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1000.00", "1,000.00"},
		{"100.00", "100.00"},
		{"1234567.89", "1,234,567.89"},
		{"-9876543.21", "-9,876,543.21"},
	}

	for _, tt := range tests {
		if got := groupThousands(tt.input); got != tt.want {
			t.Errorf("groupThousands(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
