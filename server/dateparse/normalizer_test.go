package dateparse

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "canonical passthrough", raw: "2025-06-01", want: "2025-06-01"},
		{name: "dot separator", raw: "2025.06.01", want: "2025-06-01"},
		{name: "slash separator unpadded", raw: "2025/6/1", want: "2025-06-01"},
		{name: "underscore separator", raw: "2025_06_01", want: "2025-06-01"},
		{name: "surrounding whitespace", raw: "  2025-06-01  ", want: "2025-06-01"},
		{name: "month day year", raw: "June 1 2025", want: "2025-06-01"},
		{name: "month day year with suffix and comma", raw: "June 1st, 2025", want: "2025-06-01"},
		{name: "day month year", raw: "1 June 2025", want: "2025-06-01"},
		{name: "day month year with suffix", raw: "23rd December 2025", want: "2025-12-23"},
		{name: "mixed case month", raw: "SEPTEMBER 9 2024", want: "2024-09-09"},
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
		{name: "free text", raw: "not a date", want: ""},
		{name: "relative phrase", raw: "next friday", want: ""},
		{name: "quarter shorthand", raw: "Q1 2025", want: ""},
		{name: "month abbreviation rejected", raw: "jan 1 2025", want: ""},
		{name: "month out of range", raw: "2025-13-01", want: ""},
		{name: "day out of range", raw: "2025-06-32", want: ""},
		{name: "month zero", raw: "2025-00-10", want: ""},
		{name: "day zero", raw: "2025-06-00", want: ""},
		{name: "mismatched separators", raw: "2025-06/01", want: ""},
		{name: "trailing text", raw: "2025-06-01 maybe", want: ""},
		{name: "leading text", raw: "on June 1 2025", want: ""},
		{name: "three digit day", raw: "2025-06-123", want: ""},
		{name: "two digit year", raw: "25-06-01", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotentOnCanonicalOutput(t *testing.T) {
	inputs := []string{"2025/6/1", "June 1 2025", "1st January 2000", "2031.12.31"}
	for _, raw := range inputs {
		first := Normalize(raw)
		if first == "" {
			t.Fatalf("Normalize(%q) unexpectedly failed", raw)
		}
		if second := Normalize(first); second != first {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", raw, second, first)
		}
	}
}
