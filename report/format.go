package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const placeholder = "—"

// Money formats a dollar amount rounded to whole units: "$2,900",
// "-$1,234". Non-finite values render as a placeholder.
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return placeholder
	}

	d := decimal.NewFromFloat(v).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + groupThousands(d.StringFixed(0))
}

// Percent formats v (already in percent units) with the given decimals.
func Percent(v float64, decimals int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return placeholder
	}
	return decimal.NewFromFloat(v).StringFixed(decimals) + "%"
}

// Ratio formats a fraction as a whole percentage: 0.16 -> "16%".
func Ratio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return placeholder
	}
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

func Years(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
