package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/analytics"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/cost"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/roi"
)

// OutputHeader is the header of the itemized outputs table.
var OutputHeader = []string{"", "Quantity", "Unit Cost", "Cost", "Cost per Acre"}

// CashFlowHeader is the header of the cash-flow table.
var CashFlowHeader = []string{"Year", "Costs", "Benefits", "Net Benefit"}

// Pair is a labeled, formatted value.
type Pair struct {
	Label string
	Value string
}

// Section is a titled group of pairs.
type Section struct {
	Title string
	Rows  []Pair
}

// Table formats the itemized outputs, one string row per line item.
func Table(items []cost.LineItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		qty := Qty(it.Quantity)
		if it.Quantity != nil && it.QuantityUnit != "" {
			qty += " " + it.QuantityUnit
		}
		unitCost := Price(it.UnitCost)
		if it.UnitCost != nil {
			unitCost += Units(it.UnitCostUnit)
		}
		rows = append(rows, []string{it.Label, qty, unitCost, Price(it.Cost), Price(it.CostPerAcre)})
	}
	return rows
}

// CashFlowTable formats the schedule with negatives in parentheses.
func CashFlowTable(rows []roi.CashFlowRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprint(r.Year),
			Accounting(r.Costs),
			Accounting(r.Benefits),
			Accounting(r.NetBenefit),
		})
	}
	return out
}

// Inputs lists the parameters in form order with their labels and units.
func Inputs(p basin.Parameters) []Pair {
	in := basin.FromParameters(p)
	pairs := make([]Pair, 0, len(basin.Fields)+1)
	for _, f := range basin.Fields {
		v, _ := in.Value(f.ID)
		value := Number(v, 2)
		if f.Unit != "" {
			value += " " + f.Unit
		}
		pairs = append(pairs, Pair{f.Label, value})
		if f.ID == "infiltration_rate" {
			pairs = append(pairs, Pair{"Soil Type", p.SoilType.Label()})
		}
	}
	return pairs
}

// Calculations groups the intermediate geometry the way the results page
// shows it.
func Calculations(e *analytics.Evaluation) []Section {
	ew, wa := e.Earthwork, e.WettedArea
	return []Section{
		{"Dimensions", []Pair{
			{"Area", Number(e.AreaSqMi, 4) + " sq mi"},
			{"Perimeter", Number(ew.Perimeter, 0) + " ft"},
		}},
		{"Earthwork", []Pair{
			{"Center of Levee", Number(ew.CenterOfLevee, 0) + " cu yd"},
			{"Inside of Levee", Number(ew.InsideOfLevee, 0) + " cu yd"},
			{"Outside of Levee", Number(ew.OutsideOfLevee, 0) + " cu yd"},
			{"Total Volume of Earthwork", Number(ew.TotalVolume, 0) + " cu yd"},
			{"Total Cost of Earthwork", Currency(ew.TotalCost, 0)},
		}},
		{"Wetted Area", []Pair{
			{"Outside Length", Number(wa.OutsideLength, 0) + " ft"},
			{"Less Outside Levee", Number(wa.LessOutsideLevee, 0) + " ft"},
			{"Less Top Levee", Number(wa.LessTopLevee, 0) + " ft"},
			{"Less Inside Levee", Number(wa.LessInsideLevee, 0) + " ft"},
			{"Plus Wetted Inside Levee", Number(wa.PlusWettedInsideLevee, 0) + " ft"},
			{"Net Inside Length", Number(wa.NetInsideLength, 0) + " ft"},
			{"Wetted Area (sq yds)", Number(wa.AreaSqYds, 0) + " sq yds"},
			{"Wetted Area (acres)", Number(wa.AreaAcres, 0) + " acres"},
			{"Wetted Area (gross %)", Number(wa.GrossPercent, 0) + " %"},
		}},
	}
}

// Summary lists the discounted ROI results.
func Summary(s roi.Summary) []Pair {
	irr := Null
	if s.IRRComputable() {
		irr = Percent(s.IRR, 2)
	}
	return []Pair{
		{"Net Present Value of Costs", Accounting(s.NPV)},
		{"Total Discounted Benefits", Accounting(s.TotalBenefits)},
		{"Total Net Benefits", Accounting(s.TotalNetBenefits)},
		{"Benefit-Cost Ratio", Ratio(s.BenefitCostRatio)},
		{"Internal Rate of Return", irr},
	}
}

// WriteTable writes a header and rows as right-aligned text columns.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if header != nil {
		fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	}
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t")+"\t")
	}
	return tw.Flush()
}

// WritePairs writes label/value pairs as two aligned columns.
func WritePairs(w io.Writer, pairs []Pair) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "  %s\t%s\n", p.Label, p.Value)
	}
	return tw.Flush()
}
