package analysis

import (
	"strings"
	"testing"
)

func TestRuleTableRejectsMissingCatchAll(t *testing.T) {
	bands := []Band{
		{Label: "Tinggi", AtLeast: atLeast(100)},
		{Label: "Rendah", AtMost: atMost(99)},
	}
	if _, err := newRuleTable("demo", bands); err == nil {
		t.Fatal("expected error for table without catch-all")
	}
}

func TestRuleTableRejectsMisplacedCatchAll(t *testing.T) {
	bands := []Band{
		{Label: "Semua"},
		{Label: "Tinggi", AtLeast: atLeast(100)},
	}
	_, err := newRuleTable("demo", bands)
	if err == nil || !strings.Contains(err.Error(), "must be last") {
		t.Fatalf("expected misplaced catch-all error, got %v", err)
	}
}

func TestRuleTableRejectsUnlabeledBand(t *testing.T) {
	if _, err := newRuleTable("demo", []Band{{AtMost: atMost(5)}, {Label: "Sisa"}}); err == nil {
		t.Fatal("expected error for band without label")
	}
}

func TestRuleTableRejectsDoubleBound(t *testing.T) {
	bands := []Band{
		{Label: "Aneh", AtLeast: atLeast(1), AtMost: atMost(2)},
		{Label: "Sisa"},
	}
	if _, err := newRuleTable("demo", bands); err == nil {
		t.Fatal("expected error for band with two bounds")
	}
}

func TestROICategorizationBoundaries(t *testing.T) {
	table, err := newRuleTable("roi_bands", DefaultConfig().ROIBands)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		roi  float64
		want string
	}{
		{2.0, "Sangat Layak"},
		{1.51, "Sangat Layak"},
		{1.5, "Layak"},
		{1.25, "Layak"},
		{1.0, "Perlu Dievaluasi"},
		{0.71, "Perlu Dievaluasi"},
		{0.7, "Rugi"},
		{0.2, "Rugi"},
	}
	for _, tc := range cases {
		if got := table.categorize(tc.roi).Label; got != tc.want {
			t.Errorf("roi %v categorized %q, want %q", tc.roi, got, tc.want)
		}
	}
}

func TestCostPerKmCategorizationBoundaries(t *testing.T) {
	table, err := newRuleTable("cost_per_km_bands", DefaultConfig().CostPerKmBands)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		cost float64
		want string
	}{
		{4800, "Efisien"},
		{5200, "Efisien"},
		{5201, "Wajar"},
		{5500, "Wajar"},
		{5501, "Mahal"},
	}
	for _, tc := range cases {
		if got := table.categorize(tc.cost).Label; got != tc.want {
			t.Errorf("cost %v categorized %q, want %q", tc.cost, got, tc.want)
		}
	}
}

func TestMarginCategorizationBoundaries(t *testing.T) {
	table, err := newRuleTable("margin_bands", DefaultConfig().MarginBands)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		margin float64
		want   string
	}{
		{6000, "Tinggi"},
		{5500, "Tinggi"},
		{5499, "Sedang"},
		{5000, "Sedang"},
		{4999, "Rendah"},
		{-200, "Rendah"},
	}
	for _, tc := range cases {
		if got := table.categorize(tc.margin).Label; got != tc.want {
			t.Errorf("margin %v categorized %q, want %q", tc.margin, got, tc.want)
		}
	}
}

func TestBreakEvenCategorizationBoundaries(t *testing.T) {
	table, err := newRuleTable("break_even_bands", DefaultConfig().BreakEvenBands)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		years float64
		want  string
	}{
		{2.5, "Cepat"},
		{3, "Cepat"},
		{3.5, "Sedang"},
		{4, "Sedang"},
		{4.1, "Lambat"},
	}
	for _, tc := range cases {
		if got := table.categorize(tc.years).Label; got != tc.want {
			t.Errorf("bep %v categorized %q, want %q", tc.years, got, tc.want)
		}
	}
}

func TestCategorizeIsDeterministic(t *testing.T) {
	table, err := newRuleTable("roi_bands", DefaultConfig().ROIBands)
	if err != nil {
		t.Fatal(err)
	}
	first := table.categorize(1.23)
	for i := 0; i < 50; i++ {
		if got := table.categorize(1.23); got.Label != first.Label || got.Message != first.Message {
			t.Fatalf("run %d returned %+v, first run returned %+v", i, got, first)
		}
	}
}

func TestStructureClassification(t *testing.T) {
	s := DefaultConfig().Structure
	cases := []struct {
		owning, operational float64
		want                string
	}{
		{0.70, 0.30, "Owning Dominan"},
		{0.30, 0.70, "Operational Dominan"},
		{0.55, 0.45, "Seimbang"},
		{0.60, 0.40, "Seimbang"}, // exactly at the margin stays balanced
		{0.61, 0.39, "Owning Dominan"},
	}
	for _, tc := range cases {
		label, msg := s.classify(tc.owning, tc.operational)
		if label != tc.want {
			t.Errorf("classify(%v, %v) = %q, want %q", tc.owning, tc.operational, label, tc.want)
		}
		if msg == "" {
			t.Errorf("classify(%v, %v) returned empty message", tc.owning, tc.operational)
		}
	}
}
