package core

import (
	"strings"
	"testing"
)

func TestFormatterNumber(t *testing.T) {
	f := NewFormatter("id", "IDR")

	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{5000000, "5.000.000"},
		{1500000, "1.500.000"},
	}
	for i, tc := range cases {
		if got := f.Number(tc.in); got != tc.want {
			t.Fatalf("case %d: Number(%d) = %q, want %q", i, tc.in, got, tc.want)
		}
	}
}

func TestFormatterCurrency(t *testing.T) {
	f := NewFormatter("id", "IDR")

	got := f.Currency(5000000)
	if !strings.HasPrefix(got, "Rp") {
		t.Fatalf("expected rupiah symbol prefix, got %q", got)
	}
	if !strings.Contains(got, "5.000.000") {
		t.Fatalf("expected grouped integer with no decimals, got %q", got)
	}
	if strings.ContainsAny(got, ",") {
		t.Fatalf("currency output must carry no decimal part, got %q", got)
	}
}

func TestFormatterDefaults(t *testing.T) {
	f := NewFormatter("", "")
	if got := f.Number(1000); got != "1.000" {
		t.Fatalf("defaults should be Indonesian grouping, got %q", got)
	}
}
