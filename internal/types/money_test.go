package types

import "testing"

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{99999, "99,999"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{123456789, "12,34,56,789"},
		{-2500, "-2,500"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.in); got != tc.want {
			t.Errorf("FormatINR(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := Rupees(2180).String(); got != "Rs. 2,180" {
		t.Errorf("String = %q", got)
	}
}
