package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/analytics"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/cost"
)

func referenceEvaluation(t *testing.T) *analytics.Evaluation {
	t.Helper()
	eval, _ := analytics.Resolve(basin.Defaults())
	return eval
}

func TestTableRows(t *testing.T) {
	eval := referenceEvaluation(t)
	rows := Table(eval.Outputs)
	if len(rows) != len(eval.Outputs) {
		t.Fatalf("expected %d rows, got %d", len(eval.Outputs), len(rows))
	}

	land := rows[0]
	if land[0] != cost.LabelLand {
		t.Errorf("first row = %q, want %q", land[0], cost.LabelLand)
	}
	if land[2] != "$6,000 / acre" {
		t.Errorf("land unit cost = %q, want $6,000 / acre", land[2])
	}

	for _, r := range rows {
		if r[0] == cost.LabelTotal && r[3] != "$1,967,296" {
			t.Errorf("total = %q, want $1,967,296", r[3])
		}
		if r[0] == cost.LabelSubtotal && r[1] != Null {
			t.Errorf("subtotal quantity = %q, want -", r[1])
		}
	}
}

func TestCashFlowTable(t *testing.T) {
	eval := referenceEvaluation(t)
	rows := CashFlowTable(eval.CashFlows)
	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}
	if rows[0][1] != "($1,967,296.00)" {
		t.Errorf("year 0 costs = %q", rows[0][1])
	}
	if rows[1][2] != "$472,181.63" {
		t.Errorf("year 1 benefits = %q", rows[1][2])
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, CashFlowHeader, [][]string{{"0", "1", "2", "3"}}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "Net Benefit") {
		t.Errorf("header missing: %q", lines[0])
	}
}

func TestSummaryPairs(t *testing.T) {
	pairs := Summary(referenceEvaluation(t).ROI)
	if len(pairs) != 5 {
		t.Fatalf("expected 5 pairs, got %d", len(pairs))
	}
	if pairs[3].Value != "1.35" {
		t.Errorf("benefit-cost ratio = %q, want 1.35", pairs[3].Value)
	}
	if pairs[4].Value == Null {
		t.Error("reference IRR should be computable")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, referenceEvaluation(t)); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(buf.Len(), 8)])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, referenceEvaluation(t)); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	want := []string{SheetInputs, SheetCalculations, SheetOutputs, SheetCashFlow}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	rows, err := f.GetRows(SheetOutputs)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 19 {
		t.Errorf("outputs sheet has %d rows, want header + 18", len(rows))
	}
	if rows[1][0] != cost.LabelLand {
		t.Errorf("first output = %q", rows[1][0])
	}
}

func TestReadParametersXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := []any{"name"}
	row := []any{"reference"}
	in := basin.FromParameters(basin.Defaults())
	for _, fd := range basin.Fields {
		if fd.ID == "cost_om" {
			continue
		}
		v, _ := in.Value(fd.ID)
		header = append(header, fd.ID)
		row = append(row, v)
	}
	header = append(header, "soil_type")
	row = append(row, "Sand")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatal(err)
	}
	var wb bytes.Buffer
	if err := f.Write(&wb); err != nil {
		t.Fatal(err)
	}

	scenarios, err := ReadParametersXLSX(&wb)
	if err != nil {
		t.Fatalf("ReadParametersXLSX: %v", err)
	}
	if len(scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(scenarios))
	}
	sc := scenarios[0]
	if sc.Name != "reference" {
		t.Errorf("name = %q", sc.Name)
	}
	if v, ok := sc.Input.Value("ac_pond"); !ok || v != 160 {
		t.Errorf("ac_pond = %v, %v", v, ok)
	}
	if sc.Input.CostOM != nil {
		t.Error("missing column should stay unset")
	}
	if sc.Input.SoilType == nil || *sc.Input.SoilType != basin.SoilSand {
		t.Errorf("soil type = %v", sc.Input.SoilType)
	}
}

func TestReadParametersXLSXErrors(t *testing.T) {
	build := func(rows ...[]any) *bytes.Buffer {
		f := excelize.NewFile()
		defer f.Close()
		for i, r := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(f.GetSheetName(0), cell, &r); err != nil {
				t.Fatal(err)
			}
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			t.Fatal(err)
		}
		return &buf
	}

	if _, err := ReadParametersXLSX(build([]any{"ac_pond"})); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("header only: got %v, want ErrEmptySheet", err)
	}
	if _, err := ReadParametersXLSX(build([]any{"pond_depth"}, []any{1})); err == nil {
		t.Error("expected error for unknown column")
	}
	if _, err := ReadParametersXLSX(build([]any{"ac_pond"}, []any{"lots"})); err == nil {
		t.Error("expected error for non-numeric cell")
	}
}
