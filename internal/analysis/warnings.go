package analysis

import "fmt"

type warningRule struct {
	when    func(VehicleInput) bool
	message string
}

// warningRules builds the exhaustive warning list. Unlike the category
// tables this is not first-match: every rule is evaluated and every hit is
// collected.
func warningRules(cfg Config) []warningRule {
	w := cfg.Warnings
	return []warningRule{
		{
			when: func(in VehicleInput) bool { return in.ROI < w.MinViableROI },
			message: fmt.Sprintf("Evaluasi Profitabilitas: ROI di bawah %s menunjukkan investasi tidak menguntungkan. "+
				"Pertimbangkan revisi strategi pricing atau efisiensi operasional.", FormatPercent(w.MinViableROI, 0)),
		},
		{
			when: func(in VehicleInput) bool { return in.BEPYears > w.SlowPaybackYears },
			message: fmt.Sprintf("Risiko Durasi Balik Modal: Break-even point lebih dari %.0f tahun meningkatkan eksposur "+
				"risiko pasar dan teknologi. Evaluasi skenario worst-case.", w.SlowPaybackYears),
		},
		{
			when: func(in VehicleInput) bool { return in.BEPYears > cfg.UsefulLifeYears },
			message: fmt.Sprintf("Umur Pakai Terlampaui: Periode balik modal melebihi estimasi umur pakai kendaraan "+
				"(%.0f tahun). Investasi tidak impas selama masa pakai unit.", cfg.UsefulLifeYears),
		},
		{
			when: func(in VehicleInput) bool { return in.UsesLeasing && in.BEPYears > cfg.LeasingTermYears },
			message: fmt.Sprintf("Risiko Tenor Leasing: BEP melebihi tenor leasing %.0f tahun. Cicilan selesai sebelum "+
				"unit balik modal.", cfg.LeasingTermYears),
		},
		{
			when: func(in VehicleInput) bool { return in.ContributionMargin < w.ThinMarginFloor },
			message: fmt.Sprintf("Risiko Ketahanan Profit: Margin kontribusi rendah (<%s) membuat bisnis rentan terhadap "+
				"fluktuasi biaya operasional dan kompetisi harga.", cfg.FormatCurrency(w.ThinMarginFloor)),
		},
		{
			when: func(in VehicleInput) bool {
				return in.ContributionMargin*cfg.AssumedMonthlyKm < in.AnnualTCO/12
			},
			message: "Cakupan Biaya Tetap: Margin kontribusi pada asumsi jarak bulanan tidak menutup beban biaya " +
				"tetap bulanan. Arus kas operasional berpotensi negatif.",
		},
		{
			when: func(in VehicleInput) bool { return in.OwningPct > w.OwningCeilingPct },
			message: fmt.Sprintf("Optimasi Struktur Modal: Owning cost dominan (>%s) - pertimbangkan opsi leasing atau "+
				"perpanjangan masa pakai untuk mengurangi beban CAPEX.", FormatPercent(w.OwningCeilingPct, 0)),
		},
		{
			when: func(in VehicleInput) bool { return in.CostPerKm > w.CostPerKmCeiling },
			message: fmt.Sprintf("Tinjauan Efisiensi: Biaya per km tinggi (>%s) memerlukan audit operasional untuk "+
				"identifikasi area penghematan biaya.", cfg.FormatCurrency(w.CostPerKmCeiling)),
		},
		{
			when: func(in VehicleInput) bool { return in.RevenuePerKm < w.RevenuePerKmFloor },
			message: fmt.Sprintf("Evaluasi Tarif: Revenue per km rendah (<%s) - analisis kompetitif pricing dan potensi "+
				"segmen premium diperlukan.", cfg.FormatCurrency(w.RevenuePerKmFloor)),
		},
		{
			when: func(in VehicleInput) bool { return in.TCO > w.PremiumTCO },
			message: fmt.Sprintf("Validasi Premium Investment: TCO tinggi (>%s) memerlukan justifikasi premium melalui "+
				"revenue superior atau efisiensi operasional yang terbukti.", cfg.FormatCurrency(w.PremiumTCO)),
		},
	}
}

// EvaluateWarnings returns every warning triggered by the input, in rule
// order.
func EvaluateWarnings(cfg Config, in VehicleInput) []string {
	var out []string
	for _, rule := range warningRules(cfg) {
		if rule.when(in) {
			out = append(out, rule.message)
		}
	}
	return out
}
