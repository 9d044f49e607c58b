package analysis

import (
	"context"
	"strings"
	"testing"
)

func TestBuildMarkdownSections(t *testing.T) {
	eng := newTestEngine(t, &mockNarrator{})
	rep, err := eng.Analyze(context.Background(), healthyInput())
	if err != nil {
		t.Fatal(err)
	}
	md := rep.ReportMarkdown
	for _, section := range []string{
		"# Analisis Investasi Armada",
		"## Return on Investment",
		"## Biaya Kepemilikan (TCO)",
		"## Struktur Biaya",
		"## Titik Impas (BEP)",
		"## Margin Kontribusi per Km",
		"## Ringkasan",
		"Hino Dutro 300",
		"2 tahun 6 bulan",
		"150.000 km",
		Disclaimer,
	} {
		if !strings.Contains(md, section) {
			t.Errorf("markdown misses %q", section)
		}
	}
	if strings.Contains(md, "## Catatan Dinamis") {
		t.Error("warning section rendered without warnings")
	}
	if strings.Contains(md, "fallback") {
		t.Error("degraded banner rendered in COMPLETE mode")
	}
}

func TestBuildMarkdownRendersWarnings(t *testing.T) {
	eng := newTestEngine(t, &mockNarrator{})
	in := healthyInput()
	in.ROI = 0.5
	rep, err := eng.Analyze(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rep.ReportMarkdown, "## Catatan Dinamis") {
		t.Fatal("warning section missing")
	}
	if !strings.Contains(rep.ReportMarkdown, "Evaluasi Profitabilitas") {
		t.Fatal("warning bullet missing")
	}
}

func TestBuildMarkdownDegradedBanner(t *testing.T) {
	eng := newTestEngine(t, nil)
	rep, err := eng.Analyze(context.Background(), healthyInput())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rep.ReportMarkdown, "teks fallback") {
		t.Fatal("degraded banner missing")
	}
	if !strings.Contains(rep.ReportMarkdown, string(ReportModeDegraded)) {
		t.Fatal("mode line missing")
	}
}
