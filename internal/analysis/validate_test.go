package analysis

import (
	"strings"
	"testing"
)

func baseRaw() map[string]any {
	return map[string]any{
		"unit_name":           "Hino Dutro 300",
		"segment":             "Logistik Regional",
		"unit_price":          float64(800_000_000),
		"uses_leasing":        true,
		"tco":                 float64(900_000_000),
		"annual_tco":          float64(180_000_000),
		"cost_per_km":         float64(5100),
		"revenue_per_km":      float64(7500),
		"contribution_margin": float64(5600),
		"total_revenue":       float64(2_200_000_000),
		"roi":                 float64(1.25),
		"bep_years":           float64(2.5),
		"bep_km":              float64(150_000),
		"owning_pct":          float64(0.45),
		"operational_pct":     float64(0.55),
	}
}

func TestValidateAcceptsCompleteInput(t *testing.T) {
	in, errs := Validate(baseRaw())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if in.UnitName != "Hino Dutro 300" || !in.UsesLeasing {
		t.Fatalf("input not mapped: %+v", in)
	}
	if in.ResidualValuePct != 0.30 {
		t.Fatalf("residual_value_pct default = %v, want 0.30", in.ResidualValuePct)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	raw := baseRaw()
	delete(raw, "unit_name")
	raw["roi"] = float64(-1)

	_, errs := Validate(raw)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	assertContains(t, errs, "unit_name is required")
	assertContains(t, errs, "roi must be a positive number")
}

func TestValidateFieldMessages(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
		want   string
	}{
		{"missing segment", func(m map[string]any) { delete(m, "segment") }, "segment is required"},
		{"blank segment", func(m map[string]any) { m["segment"] = "   " }, "segment is required"},
		{"missing tco", func(m map[string]any) { delete(m, "tco") }, "tco is required"},
		{"string roi", func(m map[string]any) { m["roi"] = "1.25" }, "roi must be a number"},
		{"zero bep_years", func(m map[string]any) { m["bep_years"] = float64(0) }, "bep_years must be a positive number"},
		{"negative unit_price", func(m map[string]any) { m["unit_price"] = float64(-10) }, "unit_price must be a positive number"},
		{"owning_pct above one", func(m map[string]any) { m["owning_pct"] = float64(45) }, "owning_pct must be between 0 and 1"},
		{"residual_pct negative", func(m map[string]any) { m["residual_value_pct"] = float64(-0.1) }, "residual_value_pct must be between 0 and 1"},
		{"string percentage", func(m map[string]any) { m["operational_pct"] = "55%" }, "operational_pct must be a number"},
		{"non-bool leasing", func(m map[string]any) { m["uses_leasing"] = "yes" }, "uses_leasing must be a boolean"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := baseRaw()
			tc.mutate(raw)
			_, errs := Validate(raw)
			assertContains(t, errs, tc.want)
		})
	}
}

func TestValidateAllowsNegativeContributionMargin(t *testing.T) {
	raw := baseRaw()
	raw["contribution_margin"] = float64(-400)
	in, errs := Validate(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if in.ContributionMargin != -400 {
		t.Fatalf("contribution_margin = %v, want -400", in.ContributionMargin)
	}
}

func TestValidatePercentageDefaults(t *testing.T) {
	raw := baseRaw()
	delete(raw, "owning_pct")
	delete(raw, "operational_pct")
	in, errs := Validate(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if in.OwningPct != 0 || in.OperationalPct != 0 {
		t.Fatalf("percentage defaults = %v/%v, want 0/0", in.OwningPct, in.OperationalPct)
	}
}

func TestValidateAcceptsIntegerNumbers(t *testing.T) {
	raw := baseRaw()
	raw["cost_per_km"] = 5100
	raw["bep_km"] = int64(150_000)
	_, errs := Validate(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func assertContains(t *testing.T, errs []string, want string) {
	t.Helper()
	for _, e := range errs {
		if e == want {
			return
		}
	}
	t.Fatalf("missing %q in %s", want, strings.Join(errs, "; "))
}
