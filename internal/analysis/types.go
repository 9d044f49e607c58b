package analysis

import (
	"context"
	"time"
)

const Disclaimer = "Analisis ini dihasilkan secara otomatis dari parameter finansial yang diberikan. " +
	"Seluruh narasi bersifat deskriptif dan bukan rekomendasi investasi."

type Dimension string

const (
	DimensionROI       Dimension = "roi"
	DimensionTCO       Dimension = "tco"
	DimensionStructure Dimension = "owning_vs_operational"
	DimensionBreakEven Dimension = "break_even_point"
	DimensionMargin    Dimension = "contribution_margin_per_km"
	DimensionOverall   Dimension = "overall_insight"
)

type ReportMode string

const (
	ReportModeComplete ReportMode = "COMPLETE"
	ReportModeDegraded ReportMode = "DEGRADED"
)

// VehicleInput is the validated analysis request. ROI and the percentage
// fields are ratios (1.25 = 125%), never pre-multiplied percentages.
type VehicleInput struct {
	UnitName           string  `json:"unit_name"`
	Segment            string  `json:"segment"`
	UnitPrice          float64 `json:"unit_price"`
	UsesLeasing        bool    `json:"uses_leasing"`
	TCO                float64 `json:"tco"`
	AnnualTCO          float64 `json:"annual_tco"`
	CostPerKm          float64 `json:"cost_per_km"`
	RevenuePerKm       float64 `json:"revenue_per_km"`
	ContributionMargin float64 `json:"contribution_margin"`
	TotalRevenue       float64 `json:"total_revenue"`
	ROI                float64 `json:"roi"`
	BEPYears           float64 `json:"bep_years"`
	BEPKm              float64 `json:"bep_km"`
	OwningPct          float64 `json:"owning_pct"`
	OperationalPct     float64 `json:"operational_pct"`
	ResidualValuePct   float64 `json:"residual_value_pct"`
}

// Fact is one formatted figure handed to the narrative capability.
// Order matters: facts are rendered into the prompt in slice order.
type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type NarrativeRequest struct {
	Dimension Dimension `json:"dimension"`
	Category  string    `json:"category"`
	UnitName  string    `json:"unit_name"`
	Segment   string    `json:"segment"`
	Facts     []Fact    `json:"facts"`
}

// Narrator is the external text-generation capability. Implementations may
// fail or time out; the engine degrades to a deterministic fallback and
// never propagates narrator errors to the caller.
type Narrator interface {
	Narrate(ctx context.Context, req NarrativeRequest) (string, error)
}

type UnitInfo struct {
	Name        string `json:"name"`
	Segment     string `json:"segment"`
	Price       string `json:"price"`
	UsesLeasing bool   `json:"uses_leasing"`
}

type ROIResult struct {
	Percentage       string `json:"percentage"`
	Category         string `json:"category"`
	ShortSentence    string `json:"short_sentence"`
	InsightNarrative string `json:"insight_narrative"`
}

type TCOResult struct {
	Total            string `json:"total"`
	Annual           string `json:"annual"`
	AmountRp         string `json:"amount_rp"`
	Category         string `json:"category"`
	ShortSentence    string `json:"short_sentence"`
	InsightNarrative string `json:"insight_narrative"`
}

type StructureResult struct {
	OwningPercentage      string `json:"owning_percentage"`
	OperationalPercentage string `json:"operational_percentage"`
	Category              string `json:"category"`
	ShortSentence         string `json:"short_sentence"`
	CashflowImplication   string `json:"cashflow_implication"`
}

type MonthlySimulation struct {
	Installment     string `json:"installment"`
	Revenue         string `json:"revenue"`
	OperationalCost string `json:"operational_cost"`
	NetCashflow     string `json:"net_cashflow"`
}

type BreakEvenResult struct {
	Period            string            `json:"period"`
	BEPKm             string            `json:"bep_km"`
	Category          string            `json:"category"`
	ShortSentence     string            `json:"short_sentence"`
	MonthlySimulation MonthlySimulation `json:"monthly_simulation"`
	BEPInsight        string            `json:"bep_insight"`
}

type MarginResult struct {
	MarginRp      string `json:"margin_rp"`
	RevenuePerKm  string `json:"revenue_per_km"`
	Category      string `json:"category"`
	ShortSentence string `json:"short_sentence"`
	MarginInsight string `json:"margin_insight"`
}

type OverallInsight struct {
	Summary    string `json:"summary"`
	KeyInsight string `json:"key_insight"`
}

type ReportMetadata struct {
	Mode               ReportMode `json:"mode"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        time.Time  `json:"completed_at"`
	NarrativeCalls     int        `json:"narrative_calls"`
	NarrativeFallbacks int        `json:"narrative_fallbacks"`
}

// Report is assembled once per request and returned directly; it is never
// persisted.
type Report struct {
	UnitInfo       UnitInfo        `json:"unit_info"`
	ROI            ROIResult       `json:"roi"`
	TCO            TCOResult       `json:"tco"`
	Structure      StructureResult `json:"owning_vs_operational"`
	BreakEven      BreakEvenResult `json:"break_even_point"`
	Margin         MarginResult    `json:"contribution_margin_per_km"`
	Overall        OverallInsight  `json:"overall_insight"`
	Warnings       []string        `json:"warnings"`
	ReportMode     ReportMode      `json:"report_mode"`
	ReportMarkdown string          `json:"report_markdown"`
	Metadata       ReportMetadata  `json:"metadata"`
	Disclaimer     string          `json:"disclaimer"`
}
