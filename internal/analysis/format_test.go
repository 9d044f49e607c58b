package analysis

import "testing"

func TestFormatCurrency(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		in   float64
		want string
	}{
		{5000, "Rp 5.000"},
		{999, "Rp 999"},
		{0, "Rp 0"},
		{1_500_000_000, "Rp 1.500.000.000"},
		{-5000, "Rp -5.000"},
		{5499.6, "Rp 5.500"},
		{123456, "Rp 123.456"},
	}
	for _, tc := range cases {
		if got := cfg.FormatCurrency(tc.in); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		ratio    float64
		decimals int
		want     string
	}{
		{1.25, 1, "125.0%"},
		{0.45, 0, "45%"},
		{0.555, 0, "56%"},
		{0, 1, "0.0%"},
	}
	for _, tc := range cases {
		if got := FormatPercent(tc.ratio, tc.decimals); got != tc.want {
			t.Errorf("FormatPercent(%v, %d) = %q, want %q", tc.ratio, tc.decimals, got, tc.want)
		}
	}
}

func TestFormatKilometers(t *testing.T) {
	if got := FormatKilometers(150_000); got != "150.000 km" {
		t.Fatalf("FormatKilometers(150000) = %q", got)
	}
	if got := FormatKilometers(980); got != "980 km" {
		t.Fatalf("FormatKilometers(980) = %q", got)
	}
}

func TestFormatBEPPeriod(t *testing.T) {
	cases := []struct {
		years float64
		want  string
	}{
		{2.5, "2 tahun 6 bulan"},
		{2.96, "3 tahun"}, // 11.52 months rounds to 12 and carries
		{2.0, "2 tahun"},
		{0.5, "6 bulan"},
		{0.96, "1 tahun"},
		{3.04, "3 tahun"},
		{4.25, "4 tahun 3 bulan"},
	}
	for _, tc := range cases {
		if got := FormatBEPPeriod(tc.years); got != tc.want {
			t.Errorf("FormatBEPPeriod(%v) = %q, want %q", tc.years, got, tc.want)
		}
	}
}
