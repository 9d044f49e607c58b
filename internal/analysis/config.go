package analysis

import "time"

// Band is one entry of an ordered rule table. Exactly one bound should be
// set; a band with no bound matches unconditionally and must come last.
type Band struct {
	Label       string   `yaml:"label" json:"label"`
	GreaterThan *float64 `yaml:"greater_than,omitempty" json:"greater_than,omitempty"`
	AtLeast     *float64 `yaml:"at_least,omitempty" json:"at_least,omitempty"`
	AtMost      *float64 `yaml:"at_most,omitempty" json:"at_most,omitempty"`
	Message     string   `yaml:"message" json:"message"`
}

func (b Band) matches(v float64) bool {
	switch {
	case b.GreaterThan != nil:
		return v > *b.GreaterThan
	case b.AtLeast != nil:
		return v >= *b.AtLeast
	case b.AtMost != nil:
		return v <= *b.AtMost
	default:
		return true
	}
}

func (b Band) catchAll() bool {
	return b.GreaterThan == nil && b.AtLeast == nil && b.AtMost == nil
}

type StructureConfig struct {
	// DominanceMargin is how far owning_pct must exceed operational_pct
	// (or vice versa) before the split counts as dominant.
	DominanceMargin    float64 `yaml:"dominance_margin" json:"dominance_margin"`
	OwningLabel        string  `yaml:"owning_label" json:"owning_label"`
	OwningMessage      string  `yaml:"owning_message" json:"owning_message"`
	OperationalLabel   string  `yaml:"operational_label" json:"operational_label"`
	OperationalMessage string  `yaml:"operational_message" json:"operational_message"`
	BalancedLabel      string  `yaml:"balanced_label" json:"balanced_label"`
	BalancedMessage    string  `yaml:"balanced_message" json:"balanced_message"`
}

func (s StructureConfig) classify(owningPct, operationalPct float64) (label, message string) {
	switch {
	case owningPct-operationalPct > s.DominanceMargin:
		return s.OwningLabel, s.OwningMessage
	case operationalPct-owningPct > s.DominanceMargin:
		return s.OperationalLabel, s.OperationalMessage
	default:
		return s.BalancedLabel, s.BalancedMessage
	}
}

type WarningConfig struct {
	MinViableROI      float64 `yaml:"min_viable_roi" json:"min_viable_roi"`
	SlowPaybackYears  float64 `yaml:"slow_payback_years" json:"slow_payback_years"`
	ThinMarginFloor   float64 `yaml:"thin_margin_floor" json:"thin_margin_floor"`
	OwningCeilingPct  float64 `yaml:"owning_ceiling_pct" json:"owning_ceiling_pct"`
	CostPerKmCeiling  float64 `yaml:"cost_per_km_ceiling" json:"cost_per_km_ceiling"`
	RevenuePerKmFloor float64 `yaml:"revenue_per_km_floor" json:"revenue_per_km_floor"`
	PremiumTCO        float64 `yaml:"premium_tco" json:"premium_tco"`
}

// Config carries every threshold, label, and constant the engine uses.
// The engine never hard-codes a boundary value; tuning a threshold is a
// config change, not a code change.
type Config struct {
	CurrencyPrefix          string          `yaml:"currency_prefix" json:"currency_prefix"`
	AssumedMonthlyKm        float64         `yaml:"assumed_monthly_km" json:"assumed_monthly_km"`
	UsefulLifeYears         float64         `yaml:"useful_life_years" json:"useful_life_years"`
	LeasingTermYears        float64         `yaml:"leasing_term_years" json:"leasing_term_years"`
	ROIBands                []Band          `yaml:"roi_bands" json:"roi_bands"`
	CostPerKmBands          []Band          `yaml:"cost_per_km_bands" json:"cost_per_km_bands"`
	BreakEvenBands          []Band          `yaml:"break_even_bands" json:"break_even_bands"`
	MarginBands             []Band          `yaml:"margin_bands" json:"margin_bands"`
	Structure               StructureConfig `yaml:"structure" json:"structure"`
	Warnings                WarningConfig   `yaml:"warnings" json:"warnings"`
	NarrativeTimeoutSeconds int             `yaml:"narrative_timeout_seconds" json:"narrative_timeout_seconds"`
}

func (c Config) narrativeTimeout() time.Duration {
	if c.NarrativeTimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.NarrativeTimeoutSeconds) * time.Second
}

func above(v float64) *float64   { return &v }
func atLeast(v float64) *float64 { return &v }
func atMost(v float64) *float64  { return &v }

// DefaultConfig returns the production thresholds for the Indonesian
// logistics fleet segment this service was built for.
func DefaultConfig() Config {
	return Config{
		CurrencyPrefix:   "Rp",
		AssumedMonthlyKm: 10000,
		UsefulLifeYears:  5,
		LeasingTermYears: 4,
		ROIBands: []Band{
			{Label: "Sangat Layak", GreaterThan: above(1.5), Message: "Pengembalian luar biasa di atas standar industri"},
			{Label: "Layak", GreaterThan: above(1.0), Message: "Investasi sehat dengan margin memadai"},
			{Label: "Perlu Dievaluasi", GreaterThan: above(0.7), Message: "Profit tipis dan sensitif terhadap fluktuasi"},
			{Label: "Rugi", Message: "Berpotensi rugi signifikan"},
		},
		CostPerKmBands: []Band{
			{Label: "Efisien", AtMost: atMost(5200), Message: "Biaya kompetitif, aman untuk profit"},
			{Label: "Wajar", AtMost: atMost(5500), Message: "Biaya mulai menekan margin"},
			{Label: "Mahal", Message: "Biaya tinggi, kurang kompetitif"},
		},
		BreakEvenBands: []Band{
			{Label: "Cepat", AtMost: atMost(3), Message: "Waktu impas kompetitif"},
			{Label: "Sedang", AtMost: atMost(4), Message: "Balik modal cukup lama"},
			{Label: "Lambat", Message: "Balik modal terlalu lama"},
		},
		MarginBands: []Band{
			{Label: "Tinggi", AtLeast: atLeast(5500), Message: "Margin sehat dan stabil"},
			{Label: "Sedang", AtLeast: atLeast(5000), Message: "Margin moderat"},
			{Label: "Rendah", Message: "Margin tipis"},
		},
		Structure: StructureConfig{
			DominanceMargin:    0.20,
			OwningLabel:        "Owning Dominan",
			OwningMessage:      "CAPEX berat",
			OperationalLabel:   "Operational Dominan",
			OperationalMessage: "OPEX berat",
			BalancedLabel:      "Seimbang",
			BalancedMessage:    "Struktur sehat",
		},
		Warnings: WarningConfig{
			MinViableROI:      1.0,
			SlowPaybackYears:  3,
			ThinMarginFloor:   5000,
			OwningCeilingPct:  0.65,
			CostPerKmCeiling:  5500,
			RevenuePerKmFloor: 7000,
			PremiumTCO:        1_500_000_000,
		},
		NarrativeTimeoutSeconds: 20,
	}
}
