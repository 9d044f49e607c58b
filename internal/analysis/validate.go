package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

var requiredStringFields = []string{"unit_name", "segment"}

// requiredNumberFields lists every required numeric field; positive marks
// those that must be strictly greater than zero. contribution_margin may be
// negative (revenue per km below variable cost).
var requiredNumberFields = []struct {
	name     string
	positive bool
}{
	{"unit_price", true},
	{"tco", true},
	{"annual_tco", true},
	{"cost_per_km", true},
	{"revenue_per_km", true},
	{"contribution_margin", false},
	{"total_revenue", true},
	{"roi", true},
	{"bep_years", true},
	{"bep_km", true},
}

var percentageFields = []string{"owning_pct", "operational_pct", "residual_value_pct"}

// Validate checks a raw request payload and either returns a typed input or
// the complete list of violations. It never fails fast: every broken field
// is reported in one pass. Pure function, no side effects.
func Validate(raw map[string]any) (VehicleInput, []string) {
	var errs []string

	strs := map[string]string{}
	for _, field := range requiredStringFields {
		v, ok := raw[field]
		s, isStr := v.(string)
		if !ok || !isStr || strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
			continue
		}
		strs[field] = strings.TrimSpace(s)
	}

	nums := map[string]float64{}
	for _, field := range requiredNumberFields {
		v, ok := raw[field.name]
		if !ok || v == nil {
			errs = append(errs, fmt.Sprintf("%s is required", field.name))
			continue
		}
		n, isNum := numberValue(v)
		if !isNum {
			errs = append(errs, fmt.Sprintf("%s must be a number", field.name))
			continue
		}
		if field.positive && n <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be a positive number", field.name))
			continue
		}
		nums[field.name] = n
	}

	pcts := map[string]float64{
		"owning_pct":         0,
		"operational_pct":    0,
		"residual_value_pct": 0.30,
	}
	for _, field := range percentageFields {
		v, ok := raw[field]
		if !ok || v == nil {
			continue
		}
		n, isNum := numberValue(v)
		if !isNum {
			errs = append(errs, fmt.Sprintf("%s must be a number", field))
			continue
		}
		if n < 0 || n > 1 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 1", field))
			continue
		}
		pcts[field] = n
	}

	usesLeasing := false
	if v, ok := raw["uses_leasing"]; ok && v != nil {
		b, isBool := v.(bool)
		if !isBool {
			errs = append(errs, "uses_leasing must be a boolean")
		} else {
			usesLeasing = b
		}
	}

	if len(errs) > 0 {
		return VehicleInput{}, errs
	}

	return VehicleInput{
		UnitName:           strs["unit_name"],
		Segment:            strs["segment"],
		UnitPrice:          nums["unit_price"],
		UsesLeasing:        usesLeasing,
		TCO:                nums["tco"],
		AnnualTCO:          nums["annual_tco"],
		CostPerKm:          nums["cost_per_km"],
		RevenuePerKm:       nums["revenue_per_km"],
		ContributionMargin: nums["contribution_margin"],
		TotalRevenue:       nums["total_revenue"],
		ROI:                nums["roi"],
		BEPYears:           nums["bep_years"],
		BEPKm:              nums["bep_km"],
		OwningPct:          pcts["owning_pct"],
		OperationalPct:     pcts["operational_pct"],
		ResidualValuePct:   pcts["residual_value_pct"],
	}, nil
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
