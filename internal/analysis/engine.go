package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Engine turns a validated VehicleInput into an AnalysisReport. Categorization,
// formatting, and warnings are deterministic; only the narrative slots depend
// on the injected Narrator, and those degrade to fallbacks on failure.
type Engine struct {
	cfg      Config
	narrator Narrator
	tracer   trace.Tracer

	roiTable    ruleTable
	costTable   ruleTable
	bepTable    ruleTable
	marginTable ruleTable
}

// NewEngine validates every rule table up front. A table without a trailing
// catch-all is a configuration defect and refuses to start rather than
// failing requests later.
func NewEngine(cfg Config, narrator Narrator) (*Engine, error) {
	roi, err := newRuleTable("roi_bands", cfg.ROIBands)
	if err != nil {
		return nil, err
	}
	cost, err := newRuleTable("cost_per_km_bands", cfg.CostPerKmBands)
	if err != nil {
		return nil, err
	}
	bep, err := newRuleTable("break_even_bands", cfg.BreakEvenBands)
	if err != nil {
		return nil, err
	}
	margin, err := newRuleTable("margin_bands", cfg.MarginBands)
	if err != nil {
		return nil, err
	}
	if cfg.AssumedMonthlyKm <= 0 {
		return nil, fmt.Errorf("assumed_monthly_km must be positive")
	}
	return &Engine{
		cfg:         cfg,
		narrator:    narrator,
		tracer:      otel.Tracer("armada-insight/analysis"),
		roiTable:    roi,
		costTable:   cost,
		bepTable:    bep,
		marginTable: margin,
	}, nil
}

// Config returns the active threshold configuration.
func (e *Engine) Config() Config { return e.cfg }

// monthlyInstallment is the single decision point for how the leasing flag
// affects the simulated installment. Units bought outright carry none.
func (e *Engine) monthlyInstallment(in VehicleInput) float64 {
	if !in.UsesLeasing {
		return 0
	}
	return in.AnnualTCO / 12
}

func (e *Engine) monthlySimulation(in VehicleInput) MonthlySimulation {
	installment := e.monthlyInstallment(in)
	revenue := in.TotalRevenue / (in.BEPYears * 12)
	operational := in.CostPerKm * e.cfg.AssumedMonthlyKm
	net := revenue - installment - operational
	return MonthlySimulation{
		Installment:     e.cfg.FormatCurrency(installment),
		Revenue:         e.cfg.FormatCurrency(revenue),
		OperationalCost: e.cfg.FormatCurrency(operational),
		NetCashflow:     e.cfg.FormatCurrency(net),
	}
}

type narrativeJob struct {
	req      NarrativeRequest
	fallback string
	slot     *string
}

// Analyze runs categorization, formatting, and warnings synchronously, then
// fills the narrative slots with one concurrent Narrate call per dimension
// plus one for the overall summary. Slot ordering in the report is fixed
// regardless of call completion order. Deterministic fields are byte-stable
// across identical inputs.
func (e *Engine) Analyze(ctx context.Context, in VehicleInput) (Report, error) {
	ctx, span := e.tracer.Start(ctx, "analysis.Analyze",
		trace.WithAttributes(attribute.String("unit", in.UnitName)))
	defer span.End()

	started := time.Now()

	roiBand := e.roiTable.categorize(in.ROI)
	costBand := e.costTable.categorize(in.CostPerKm)
	bepBand := e.bepTable.categorize(in.BEPYears)
	marginBand := e.marginTable.categorize(in.ContributionMargin)
	structLabel, structMsg := e.cfg.Structure.classify(in.OwningPct, in.OperationalPct)

	sim := e.monthlySimulation(in)
	period := FormatBEPPeriod(in.BEPYears)

	rep := Report{
		UnitInfo: UnitInfo{
			Name:        in.UnitName,
			Segment:     in.Segment,
			Price:       e.cfg.FormatCurrency(in.UnitPrice),
			UsesLeasing: in.UsesLeasing,
		},
		ROI: ROIResult{
			Percentage:    FormatPercent(in.ROI, 1),
			Category:      roiBand.Label,
			ShortSentence: roiBand.Message,
		},
		TCO: TCOResult{
			Total:         e.cfg.FormatCurrency(in.TCO),
			Annual:        e.cfg.FormatCurrency(in.AnnualTCO),
			AmountRp:      e.cfg.FormatCurrency(in.CostPerKm),
			Category:      costBand.Label,
			ShortSentence: costBand.Message,
		},
		Structure: StructureResult{
			OwningPercentage:      FormatPercent(in.OwningPct, 0),
			OperationalPercentage: FormatPercent(in.OperationalPct, 0),
			Category:              structLabel,
			ShortSentence:         structMsg,
		},
		BreakEven: BreakEvenResult{
			Period:            period,
			BEPKm:             FormatKilometers(in.BEPKm),
			Category:          bepBand.Label,
			ShortSentence:     bepBand.Message,
			MonthlySimulation: sim,
		},
		Margin: MarginResult{
			MarginRp:      e.cfg.FormatCurrency(in.ContributionMargin),
			RevenuePerKm:  e.cfg.FormatCurrency(in.RevenuePerKm),
			Category:      marginBand.Label,
			ShortSentence: marginBand.Message,
		},
		Warnings:   EvaluateWarnings(e.cfg, in),
		Disclaimer: Disclaimer,
	}
	rep.Overall.KeyInsight = SanitizeNeutral(
		fmt.Sprintf("Kondisi umum selaras dengan kategori ROI: %s.", roiBand.Label))

	jobs := []narrativeJob{
		{
			req: NarrativeRequest{
				Dimension: DimensionROI, Category: roiBand.Label,
				UnitName: in.UnitName, Segment: in.Segment,
				Facts: []Fact{{"ROI", rep.ROI.Percentage}},
			},
			fallback: fallbackROINarrative(rep.ROI.Percentage, roiBand.Label),
			slot:     &rep.ROI.InsightNarrative,
		},
		{
			req: NarrativeRequest{
				Dimension: DimensionTCO, Category: costBand.Label,
				UnitName: in.UnitName, Segment: in.Segment,
				Facts: []Fact{
					{"Biaya per km", rep.TCO.AmountRp},
					{"TCO total", rep.TCO.Total},
					{"TCO tahunan", rep.TCO.Annual},
				},
			},
			fallback: fallbackTCONarrative(rep.TCO.AmountRp, costBand.Label),
			slot:     &rep.TCO.InsightNarrative,
		},
		{
			req: NarrativeRequest{
				Dimension: DimensionStructure, Category: structLabel,
				UnitName: in.UnitName, Segment: in.Segment,
				Facts: []Fact{
					{"Owning", rep.Structure.OwningPercentage},
					{"Operational", rep.Structure.OperationalPercentage},
				},
			},
			fallback: fallbackStructureNarrative(structLabel),
			slot:     &rep.Structure.CashflowImplication,
		},
		{
			req: NarrativeRequest{
				Dimension: DimensionBreakEven, Category: bepBand.Label,
				UnitName: in.UnitName, Segment: in.Segment,
				Facts: []Fact{
					{"Periode BEP", period},
					{"Jarak BEP", rep.BreakEven.BEPKm},
					{"Cicilan bulanan", sim.Installment},
					{"Pendapatan bulanan", sim.Revenue},
					{"Net cashflow bulanan", sim.NetCashflow},
				},
			},
			fallback: fallbackBreakEvenNarrative(period, bepBand.Label, in.UsesLeasing, sim),
			slot:     &rep.BreakEven.BEPInsight,
		},
		{
			req: NarrativeRequest{
				Dimension: DimensionMargin, Category: marginBand.Label,
				UnitName: in.UnitName, Segment: in.Segment,
				Facts: []Fact{
					{"Margin per km", rep.Margin.MarginRp},
					{"Revenue per km", rep.Margin.RevenuePerKm},
				},
			},
			fallback: fallbackMarginNarrative(rep.Margin.MarginRp, marginBand.Label),
			slot:     &rep.Margin.MarginInsight,
		},
		{
			req: NarrativeRequest{
				Dimension: DimensionOverall, Category: roiBand.Label,
				UnitName: in.UnitName, Segment: in.Segment,
				Facts: []Fact{
					{"ROI", rep.ROI.Percentage},
					{"Biaya per km", rep.TCO.AmountRp},
					{"Struktur biaya", structLabel},
					{"BEP", period},
					{"Margin per km", rep.Margin.MarginRp},
				},
			},
			fallback: fallbackOverallNarrative(rep),
			slot:     &rep.Overall.Summary,
		},
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		calls     int
		fallbacks int
	)
	for i := range jobs {
		wg.Add(1)
		go func(job narrativeJob) {
			defer wg.Done()
			called, fellBack := e.narrateInto(ctx, job)
			mu.Lock()
			if called {
				calls++
			}
			if fellBack {
				fallbacks++
			}
			mu.Unlock()
		}(jobs[i])
	}
	wg.Wait()

	mode := ReportModeComplete
	if fallbacks > 0 {
		mode = ReportModeDegraded
	}
	rep.ReportMode = mode
	rep.Metadata = ReportMetadata{
		Mode:               mode,
		StartedAt:          started,
		CompletedAt:        time.Now(),
		NarrativeCalls:     calls,
		NarrativeFallbacks: fallbacks,
	}
	rep.ReportMarkdown = BuildMarkdown(rep)
	return rep, nil
}

// narrateInto fills one narrative slot. Any narrator error, timeout, or
// empty/fully-sanitized response falls back to the deterministic sentence.
func (e *Engine) narrateInto(ctx context.Context, job narrativeJob) (called, fellBack bool) {
	if e.narrator == nil {
		*job.slot = job.fallback
		return false, true
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.narrativeTimeout())
	defer cancel()
	callCtx, span := e.tracer.Start(callCtx, "analysis.Narrate",
		trace.WithAttributes(attribute.String("dimension", string(job.req.Dimension))))
	defer span.End()

	text, err := e.narrator.Narrate(callCtx, job.req)
	if err != nil {
		log.Printf("narrative %s failed: %v", job.req.Dimension, err)
		*job.slot = job.fallback
		return true, true
	}
	text = SanitizeNeutral(text)
	if strings.TrimSpace(text) == "" {
		*job.slot = job.fallback
		return true, true
	}
	*job.slot = text
	return true, false
}
