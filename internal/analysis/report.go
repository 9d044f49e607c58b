package analysis

import (
	"fmt"
	"strings"
)

// BuildMarkdown renders the business report used by the PDF endpoint and
// the terminal client. Section order mirrors the JSON report.
func BuildMarkdown(rep Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analisis Investasi Armada\n\n")
	fmt.Fprintf(&b, "- Unit: %s\n", rep.UnitInfo.Name)
	fmt.Fprintf(&b, "- Segmen: %s\n", rep.UnitInfo.Segment)
	fmt.Fprintf(&b, "- Harga Unit: %s\n", rep.UnitInfo.Price)
	fmt.Fprintf(&b, "- Leasing: %s\n", yaTidak(rep.UnitInfo.UsesLeasing))
	fmt.Fprintf(&b, "- Mode: %s\n\n", rep.ReportMode)
	fmt.Fprintf(&b, "%s\n\n", Disclaimer)

	if rep.ReportMode == ReportModeDegraded {
		fmt.Fprintf(&b, "> Sebagian narasi menggunakan teks fallback karena layanan narasi tidak tersedia. "+
			"Seluruh angka dan kategori tetap dihitung penuh.\n\n")
	}

	fmt.Fprintf(&b, "## Return on Investment\n\n")
	fmt.Fprintf(&b, "- Nilai: %s (`%s`)\n", rep.ROI.Percentage, rep.ROI.Category)
	fmt.Fprintf(&b, "- %s\n\n", oneLine(rep.ROI.ShortSentence))
	fmt.Fprintf(&b, "%s\n\n", oneLine(rep.ROI.InsightNarrative))

	fmt.Fprintf(&b, "## Biaya Kepemilikan (TCO)\n\n")
	fmt.Fprintf(&b, "| Metrik | Nilai |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| TCO total | %s |\n", rep.TCO.Total)
	fmt.Fprintf(&b, "| TCO tahunan | %s |\n", rep.TCO.Annual)
	fmt.Fprintf(&b, "| Biaya per km | %s |\n", rep.TCO.AmountRp)
	fmt.Fprintf(&b, "| Kategori | %s |\n\n", rep.TCO.Category)
	fmt.Fprintf(&b, "%s\n\n", oneLine(rep.TCO.InsightNarrative))

	fmt.Fprintf(&b, "## Struktur Biaya\n\n")
	fmt.Fprintf(&b, "- Owning: %s, Operational: %s (`%s`)\n\n",
		rep.Structure.OwningPercentage, rep.Structure.OperationalPercentage, rep.Structure.Category)
	fmt.Fprintf(&b, "%s\n\n", oneLine(rep.Structure.CashflowImplication))

	fmt.Fprintf(&b, "## Titik Impas (BEP)\n\n")
	fmt.Fprintf(&b, "- Periode: %s (`%s`)\n", rep.BreakEven.Period, rep.BreakEven.Category)
	fmt.Fprintf(&b, "- Jarak: %s\n\n", rep.BreakEven.BEPKm)
	fmt.Fprintf(&b, "| Simulasi Bulanan | Nilai |\n|------------------|-------|\n")
	fmt.Fprintf(&b, "| Cicilan | %s |\n", rep.BreakEven.MonthlySimulation.Installment)
	fmt.Fprintf(&b, "| Pendapatan | %s |\n", rep.BreakEven.MonthlySimulation.Revenue)
	fmt.Fprintf(&b, "| Biaya operasional | %s |\n", rep.BreakEven.MonthlySimulation.OperationalCost)
	fmt.Fprintf(&b, "| Net cashflow | %s |\n\n", rep.BreakEven.MonthlySimulation.NetCashflow)
	fmt.Fprintf(&b, "%s\n\n", oneLine(rep.BreakEven.BEPInsight))

	fmt.Fprintf(&b, "## Margin Kontribusi per Km\n\n")
	fmt.Fprintf(&b, "- Margin: %s (`%s`)\n", rep.Margin.MarginRp, rep.Margin.Category)
	fmt.Fprintf(&b, "- Revenue per km: %s\n\n", rep.Margin.RevenuePerKm)
	fmt.Fprintf(&b, "%s\n\n", oneLine(rep.Margin.MarginInsight))

	if len(rep.Warnings) > 0 {
		fmt.Fprintf(&b, "## Catatan Dinamis\n\n")
		for _, w := range rep.Warnings {
			fmt.Fprintf(&b, "- %s\n", oneLine(w))
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Ringkasan\n\n")
	fmt.Fprintf(&b, "%s\n\n", oneLine(rep.Overall.Summary))
	fmt.Fprintf(&b, "%s\n", oneLine(rep.Overall.KeyInsight))
	return b.String()
}

func oneLine(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func yaTidak(v bool) string {
	if v {
		return "Ya"
	}
	return "Tidak"
}
