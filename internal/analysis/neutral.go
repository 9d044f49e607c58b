package analysis

import (
	"fmt"
	"strings"
)

// Words that turn a neutral description into advice. Model output is cut at
// the first occurrence so the report never tells the reader what to do.
var bannedNarrativeWords = []string{
	"namun", "di sisi lain", "rekomendasi", "strategi", "harus",
	"segera", "prioritas", "tantangan", "disarankan", "anjurkan",
	"sebaiknya", "langkah", "action", "mitigasi", "optimasi",
}

// SanitizeNeutral trims narrative text at the first advice-triggering word
// and closes the remaining sentence with a period.
func SanitizeNeutral(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return ""
	}
	low := strings.ToLower(t)
	cut := len(t)
	for _, w := range bannedNarrativeWords {
		if i := strings.Index(low, w); i != -1 && i < cut {
			cut = i
		}
	}
	t = strings.TrimRight(t[:cut], " .,\n")
	if t == "" {
		return ""
	}
	if !strings.HasSuffix(t, ".") {
		t += "."
	}
	return t
}

// fallbackNarratives are the deterministic sentences substituted when the
// narrative capability is unavailable. Built purely from computed numbers.

func fallbackROINarrative(percentage, category string) string {
	return SanitizeNeutral(fmt.Sprintf(
		"Nilai ROI %s merefleksikan kinerja pengembalian sesuai kategori %s berdasarkan indikator internal.",
		percentage, category))
}

func fallbackTCONarrative(perKm, category string) string {
	return SanitizeNeutral(fmt.Sprintf(
		"Biaya per kilometer %s menunjukkan tingkat efisiensi operasional pada kategori %s menurut parameter yang digunakan.",
		perKm, category))
}

func fallbackStructureNarrative(category string) string {
	return SanitizeNeutral(fmt.Sprintf(
		"Komposisi tersebut mencerminkan struktur biaya pada kategori %s sesuai pembobotan persentase.",
		category))
}

func fallbackBreakEvenNarrative(period, category string, usesLeasing bool, sim MonthlySimulation) string {
	if !usesLeasing {
		return SanitizeNeutral(fmt.Sprintf(
			"Periode %s dikategorikan %s. Simulasi bulanan tanpa komponen cicilan (tanpa leasing).",
			period, category))
	}
	return SanitizeNeutral(fmt.Sprintf(
		"Periode %s dikategorikan %s. Simulasi bulanan: cicilan %s, pendapatan %s, net cashflow %s.",
		period, category, sim.Installment, sim.Revenue, sim.NetCashflow))
}

func fallbackMarginNarrative(marginRp, category string) string {
	return SanitizeNeutral(fmt.Sprintf(
		"Nilai margin %s menggambarkan kontribusi per kilometer sesuai kategori %s berdasarkan perhitungan internal.",
		marginRp, category))
}

func fallbackOverallNarrative(rep Report) string {
	return SanitizeNeutral(fmt.Sprintf(
		"Analisis menunjukkan ROI %s, biaya per kilometer %s, komposisi biaya Owning %s dan Operational %s, "+
			"serta perkiraan BEP %s. Informasi tersebut menggambarkan kondisi finansial unit berdasarkan parameter yang digunakan.",
		rep.ROI.Percentage, rep.TCO.AmountRp, rep.Structure.OwningPercentage,
		rep.Structure.OperationalPercentage, rep.BreakEven.Period))
}
