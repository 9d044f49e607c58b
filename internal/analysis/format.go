package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as "Rp 5.000": rounded to whole rupiah,
// dot-grouped thousands, no decimals. Negative amounts keep the sign after
// the prefix ("Rp -5.000").
func (c Config) FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return c.CurrencyPrefix + " " + sign + groupThousands(d.String(), '.')
}

// FormatPercent renders a ratio as a percentage string, e.g. 1.25 with one
// decimal gives "125.0%".
func FormatPercent(ratio float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, ratio*100)
}

// FormatKilometers renders a distance as "150.000 km".
func FormatKilometers(km float64) string {
	d := decimal.NewFromFloat(km).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + groupThousands(d.String(), '.') + " km"
}

// FormatBEPPeriod converts fractional years into "2 tahun 6 bulan". The
// fractional remainder rounds to the nearest month and carries into years
// when it rounds up to twelve.
func FormatBEPPeriod(bepYears float64) string {
	years := int(bepYears)
	months := int(math.Round((bepYears - float64(years)) * 12))
	if months == 12 {
		years++
		months = 0
	}
	switch {
	case years == 0:
		return fmt.Sprintf("%d bulan", months)
	case months == 0:
		return fmt.Sprintf("%d tahun", years)
	default:
		return fmt.Sprintf("%d tahun %d bulan", years, months)
	}
}

func groupThousands(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	rem := len(digits) % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
