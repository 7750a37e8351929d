package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/analytics"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
)

// Workbook sheet names, in order.
const (
	SheetInputs       = "Inputs"
	SheetCalculations = "Calculations"
	SheetOutputs      = "Outputs"
	SheetCashFlow     = "Cash Flow"
)

// ErrEmptySheet is returned when a parameter sheet has no scenario rows.
var ErrEmptySheet = errors.New("sheet has no scenarios")

// WriteXLSX writes the evaluation as a workbook with one sheet per part of
// the results. Cells hold raw numbers; nil cells are left blank.
func WriteXLSX(w io.Writer, e *analytics.Evaluation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetInputs); err != nil {
		return err
	}
	for _, name := range []string{SheetCalculations, SheetOutputs, SheetCashFlow} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	writers := []struct {
		sheet string
		rows  [][]any
	}{
		{SheetInputs, inputRows(e.Parameters)},
		{SheetCalculations, calculationRows(e)},
		{SheetOutputs, outputRows(e)},
		{SheetCashFlow, cashFlowRows(e)},
	}
	for _, wr := range writers {
		if err := writeRows(f, wr.sheet, wr.rows); err != nil {
			return fmt.Errorf("writing sheet %s: %w", wr.sheet, err)
		}
		if err := f.SetCellStyle(wr.sheet, "A1", "H1", bold); err != nil {
			return err
		}
		if err := f.SetColWidth(wr.sheet, "A", "B", 36); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func inputRows(p basin.Parameters) [][]any {
	in := basin.FromParameters(p)
	rows := [][]any{{"ID", "Input", "Value", "Unit"}}
	for _, fd := range basin.Fields {
		v, _ := in.Value(fd.ID)
		rows = append(rows, []any{fd.ID, fd.Label, v, fd.Unit})
	}
	rows = append(rows, []any{"soil_type", "Soil Type", string(p.SoilType), ""})
	return rows
}

func calculationRows(e *analytics.Evaluation) [][]any {
	ew, wa := e.Earthwork, e.WettedArea
	return [][]any{
		{"Section", "Item", "Value", "Unit"},
		{"Dimensions", "Area", e.AreaSqMi, "sq mi"},
		{"Dimensions", "Perimeter", ew.Perimeter, "ft"},
		{"Earthwork", "Center of Levee", ew.CenterOfLevee, "cu yd"},
		{"Earthwork", "Inside of Levee", ew.InsideOfLevee, "cu yd"},
		{"Earthwork", "Outside of Levee", ew.OutsideOfLevee, "cu yd"},
		{"Earthwork", "Total Volume of Earthwork", ew.TotalVolume, "cu yd"},
		{"Earthwork", "Total Cost of Earthwork", ew.TotalCost, "$"},
		{"Wetted Area", "Outside Length", wa.OutsideLength, "ft"},
		{"Wetted Area", "Less Outside Levee", wa.LessOutsideLevee, "ft"},
		{"Wetted Area", "Less Top Levee", wa.LessTopLevee, "ft"},
		{"Wetted Area", "Less Inside Levee", wa.LessInsideLevee, "ft"},
		{"Wetted Area", "Plus Wetted Inside Levee", wa.PlusWettedInsideLevee, "ft"},
		{"Wetted Area", "Net Inside Length", wa.NetInsideLength, "ft"},
		{"Wetted Area", "Wetted Area", wa.AreaSqYds, "sq yds"},
		{"Wetted Area", "Wetted Area", wa.AreaAcres, "acres"},
		{"Wetted Area", "Wetted Area (gross)", wa.GrossPercent, "%"},
	}
}

func outputRows(e *analytics.Evaluation) [][]any {
	rows := [][]any{{"Item", "Quantity", "Quantity Unit", "Unit Cost", "Unit Cost Units", "Cost", "Cost per Acre"}}
	for _, it := range e.Outputs {
		rows = append(rows, []any{
			it.Label, cellValue(it.Quantity), it.QuantityUnit,
			cellValue(it.UnitCost), it.UnitCostUnit,
			cellValue(it.Cost), cellValue(it.CostPerAcre),
		})
	}
	return rows
}

func cashFlowRows(e *analytics.Evaluation) [][]any {
	rows := [][]any{{"Year", "Costs", "Benefits", "Net Benefit"}}
	for _, r := range e.CashFlows {
		rows = append(rows, []any{r.Year, r.Costs, r.Benefits, r.NetBenefit})
	}
	s := e.ROI
	rows = append(rows,
		[]any{},
		[]any{"Discount Rate (%)", s.DiscountRate},
		[]any{"Net Present Value of Costs", finiteCell(s.NPV)},
		[]any{"Total Discounted Benefits", finiteCell(s.TotalBenefits)},
		[]any{"Total Net Benefits", finiteCell(s.TotalNetBenefits)},
		[]any{"Benefit-Cost Ratio", finiteCell(s.BenefitCostRatio)},
		[]any{"Internal Rate of Return (%)", finiteCell(s.IRR)},
	)
	return rows
}

func cellValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// finiteCell keeps non-finite results readable; spreadsheets have no NaN.
func finiteCell(v float64) any {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return v
}

// Scenario is one parameter row of an imported workbook.
type Scenario struct {
	Name  string
	Row   int
	Input basin.Input
}

// ReadParametersXLSX reads scenarios from the first sheet. The header row
// names input ids; an optional "name" column labels each scenario. Blank
// cells stay unset so validation reports them. Soil types are kept as
// written so an unknown value is reported rather than dropped.
func ReadParametersXLSX(r io.Reader) ([]Scenario, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		id := strings.ToLower(strings.TrimSpace(h))
		if id != "name" && id != "soil_type" && id != "" {
			if _, ok := basin.FieldByID(id); !ok {
				return nil, fmt.Errorf("column %d: unknown input %q", i+1, h)
			}
		}
		header[i] = id
	}

	var scenarios []Scenario
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}

		sc := Scenario{Row: i + 1, Name: fmt.Sprintf("Row %d", i+1)}
		for j, cell := range row {
			if j >= len(header) || header[j] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}

			switch header[j] {
			case "name":
				sc.Name = cell
			case "soil_type":
				soil, err := basin.ParseSoilType(cell)
				if err != nil {
					soil = basin.SoilType(cell)
				}
				sc.Input.SoilType = &soil
			default:
				v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, %s: %q is not a number", i+1, header[j], cell)
				}
				if err := sc.Input.Set(header[j], v); err != nil {
					return nil, fmt.Errorf("row %d: %w", i+1, err)
				}
			}
		}
		scenarios = append(scenarios, sc)
	}

	if len(scenarios) == 0 {
		return nil, ErrEmptySheet
	}
	return scenarios, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
