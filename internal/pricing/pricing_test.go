package pricing

import "testing"

func TestSurcharge(t *testing.T) {
	cases := []struct {
		fabric string
		want   float64
	}{
		{"Silk", 50},
		{"Satin", 50},
		{"Premium Cotton", 20},
		{"Cotton", 0},
		{"Linen", 0},
		{"", 0},
		{"silk", 0}, // fabric names are exact
	}
	for _, tc := range cases {
		if got := Surcharge(tc.fabric); got != tc.want {
			t.Errorf("Surcharge(%q) = %v, want %v", tc.fabric, got, tc.want)
		}
	}
}

func TestFinal(t *testing.T) {
	cases := []struct {
		base   float64
		fabric string
		want   float64
	}{
		{100, "Silk", 150},
		{100, "Satin", 150},
		{100, "Premium Cotton", 120},
		{100, "Cotton", 100},
		{100, "", 100},
		{0, "Silk", 50},
		{79.5, "Premium Cotton", 99.5},
	}
	for _, tc := range cases {
		if got := Final(tc.base, tc.fabric); got != tc.want {
			t.Errorf("Final(%v, %q) = %v, want %v", tc.base, tc.fabric, got, tc.want)
		}
	}
}
