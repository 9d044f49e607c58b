package render

import (
	"strings"
	"testing"
	"time"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
)

func sampleReport() analysis.Report {
	return analysis.Report{
		UnitInfo: analysis.UnitInfo{
			Name:    "Hino Dutro 300",
			Segment: "Logistik Regional",
			Price:   "Rp 800.000.000",
		},
		ROI:        analysis.ROIResult{Percentage: "125.0%", Category: "Layak"},
		ReportMode: analysis.ReportModeComplete,
		ReportMarkdown: "# Analisis Investasi Armada\n\n## Return on Investment\n\n" +
			"| Metrik | Nilai |\n|--------|-------|\n| ROI | 125.0% |\n",
		Metadata: analysis.ReportMetadata{
			CompletedAt: time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
		},
	}
}

func TestBuildHTMLRendersMarkdownAndMeta(t *testing.T) {
	doc, err := buildHTML(sampleReport())
	if err != nil {
		t.Fatalf("buildHTML: %v", err)
	}
	for _, want := range []string{
		"<h1", "Analisis Investasi Armada",
		"<table>", "<td>125.0%</td>",
		"Hino Dutro 300", "Logistik Regional",
		"ROI: Layak",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("html misses %q", want)
		}
	}
	if strings.Contains(doc, "degraded") {
		t.Error("degraded badge rendered for COMPLETE report")
	}
}

func TestBuildHTMLEscapesUnitName(t *testing.T) {
	rep := sampleReport()
	rep.UnitInfo.Name = `Truk <script>alert("x")</script>`
	doc, err := buildHTML(rep)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "<script>alert") {
		t.Fatal("unit name not escaped")
	}
}

func TestBuildHTMLDegradedBadge(t *testing.T) {
	rep := sampleReport()
	rep.ReportMode = analysis.ReportModeDegraded
	doc, err := buildHTML(rep)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "report-badge degraded") {
		t.Fatal("degraded badge missing")
	}
}
