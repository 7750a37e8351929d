package render

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/analytics"
)

// ReportTitle heads the PDF report.
const ReportTitle = "Recharge Basin Cost Estimate"

const (
	pdfMargin     = 36.0
	pdfLineHeight = 14.0
	pdfLabelWidth = 260.0
)

// WritePDF renders the evaluation as a landscape letter report: inputs,
// calculation data, itemized outputs, cash flows and the ROI summary.
func WritePDF(w io.Writer, e *analytics.Evaluation) error {
	pdf := gofpdf.New("L", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 24, ReportTitle)
	pdf.Ln(30)

	pdfHeading(pdf, "Inputs")
	pdfPairs(pdf, tr, Inputs(e.Parameters))

	for _, sec := range Calculations(e) {
		pdfHeading(pdf, sec.Title)
		pdfPairs(pdf, tr, sec.Rows)
	}

	pdf.AddPage()
	pdfHeading(pdf, "Outputs")
	pdfTable(pdf, tr, OutputHeader, Table(e.Outputs), []float64{280, 110, 140, 110, 110})

	pdf.AddPage()
	pdfHeading(pdf, fmt.Sprintf("Return on Investment (%d years at %s)", e.ROI.Years, Percent(e.ROI.DiscountRate, 2)))
	pdfTable(pdf, tr, CashFlowHeader, CashFlowTable(e.CashFlows), []float64{60, 160, 160, 160})
	pdf.Ln(pdfLineHeight)
	pdfPairs(pdf, tr, Summary(e.ROI))

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func pdfHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 20, title)
	pdf.Ln(22)
}

func pdfPairs(pdf *gofpdf.Fpdf, tr func(string) string, pairs []Pair) {
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range pairs {
		pdf.CellFormat(pdfLabelWidth, pdfLineHeight, tr(p.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(140, pdfLineHeight, tr(p.Value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func pdfTable(pdf *gofpdf.Fpdf, tr func(string) string, header []string, rows [][]string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 236, 242)
	for i, h := range header {
		pdf.CellFormat(widths[i], pdfLineHeight+4, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], pdfLineHeight, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
