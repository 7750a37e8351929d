// Package render formats an evaluation for people: text tables, a PDF
// report and an Excel workbook. Numbers are rounded half away from zero
// with shopspring/decimal so printed figures match a spreadsheet.
package render

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Null is printed for cells that do not apply.
const Null = "-"

// Number formats v with thousands separators and the given decimal places.
func Number(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null
	}
	d := decimal.NewFromFloat(v).Round(places)
	text := group(d.Abs().StringFixed(places))
	if d.IsNegative() {
		return "-" + text
	}
	return text
}

// Currency formats v as US dollars, "-$1,234" for negatives.
func Currency(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null
	}
	d := decimal.NewFromFloat(v).Round(places)
	text := "$" + group(d.Abs().StringFixed(places))
	if d.IsNegative() {
		return "-" + text
	}
	return text
}

// Accounting formats v as dollars and cents with negatives in parentheses.
func Accounting(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null
	}
	d := decimal.NewFromFloat(v).Round(2)
	text := "$" + group(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "(" + text + ")"
	}
	return text
}

// Price formats a nullable whole-dollar cell.
func Price(v *float64) string {
	if v == nil {
		return Null
	}
	return Currency(*v, 0)
}

// Qty formats a nullable quantity cell with one decimal place.
func Qty(v *float64) string {
	if v == nil {
		return Null
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Null
	}
	return decimal.NewFromFloat(*v).StringFixed(1)
}

// Units prefixes a non-empty unit with " / ".
func Units(unit string) string {
	if unit == "" {
		return ""
	}
	return " / " + unit
}

// Percent formats v with the given decimal places and a percent sign.
func Percent(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null
	}
	return decimal.NewFromFloat(v).StringFixed(places) + "%"
}

// Ratio formats a dimensionless ratio with two decimal places.
func Ratio(v float64) string {
	if math.IsNaN(v) {
		return Null
	}
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// group inserts thousands separators into an unsigned fixed-point string.
func group(s string) string {
	whole, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
