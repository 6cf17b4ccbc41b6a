package format

import (
	"testing"
	"time"
)

func TestUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1, "$1.00"},
		{1234.5, "$1,234.50"},
		{999.99, "$999.99"},
		{1000000, "$1,000,000.00"},
		{0.999, "$1.00"},
		{-42.5, "-$42.50"},
	}
	for _, tc := range cases {
		if got := USD(tc.in); got != tc.want {
			t.Errorf("USD(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDateTimeZero(t *testing.T) {
	if got := DateTime(time.Time{}); got != "" {
		t.Fatalf("DateTime(zero) = %q, want empty", got)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("ShortID = %q, want %q", got, "01234567")
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("ShortID short input = %q, want unchanged", got)
	}
}
