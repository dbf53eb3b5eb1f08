package currency

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "₲ 0"},
		{500, "₲ 500"},
		{1500, "₲ 1.500"},
		{19999.6, "₲ 20.000"},
		{120000, "₲ 120.000"},
		{4500000, "₲ 4.500.000"},
		{1234567.4, "₲ 1.234.567"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.amount); got != tc.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatAmountNoSymbol(t *testing.T) {
	if got := FormatAmount(85000); got != "85.000" {
		t.Errorf("FormatAmount(85000) = %q", got)
	}
}
