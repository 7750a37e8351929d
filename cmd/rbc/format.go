package main

import (
	"fmt"
	"os"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/analytics"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/render"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/soil"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.Field != "" {
		if res.ActualValue != nil {
			fmt.Printf("    -> %s = %v\n", res.Field, res.ActualValue)
		} else {
			fmt.Printf("    -> %s\n", res.Field)
		}
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	if res.ConflictWith != "" {
		fmt.Printf("    conflicts with: %s\n", res.ConflictWith)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

// printWarnings prints the report only when it has something to say
// beyond the always-present info notes.
func printWarnings(r *validation.Report) {
	if len(r.Warnings) == 0 {
		return
	}
	fmt.Println()
	printValidationReport(r)
}

func printCalculations(e *analytics.Evaluation) {
	for i, s := range render.Calculations(e) {
		if i > 0 {
			fmt.Println()
		}
		printHeading(s.Title)
		render.WritePairs(os.Stdout, s.Rows)
	}
}

func printCostReport(e *analytics.Evaluation) {
	printHeading("Outputs")
	render.WriteTable(os.Stdout, render.OutputHeader, render.Table(e.Outputs))
}

func printROIReport(e *analytics.Evaluation) {
	printHeading(fmt.Sprintf("Cash Flow (%d years at %s discount)", e.ROI.Years, render.Percent(e.ROI.DiscountRate, 2)))
	render.WriteTable(os.Stdout, render.CashFlowHeader, render.CashFlowTable(e.CashFlows))

	fmt.Println()
	printHeading("Summary")
	render.WritePairs(os.Stdout, render.Summary(e.ROI))
}

func printBatch(results []batchResult) {
	header := []string{"Row", "Scenario", "Total Cost", "Net Recharge (AF/yr)", "NPV", "B/C Ratio", "IRR"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		name := r.Name
		if name == "" {
			name = render.Null
		}
		if r.Evaluation == nil {
			rows = append(rows, []string{fmt.Sprint(r.Row), name, "INVALID", render.Null, render.Null, render.Null, r.Validation.Summary})
			continue
		}
		e := r.Evaluation
		irr := render.Null
		if e.ROI.IRRComputable() {
			irr = render.Percent(e.ROI.IRR, 2)
		}
		rows = append(rows, []string{
			fmt.Sprint(r.Row),
			name,
			render.Currency(e.Summary.TotalCostEstimate, 0),
			render.Number(e.Summary.NetRecharge, 2),
			render.Accounting(e.ROI.NPV),
			render.Ratio(e.ROI.BenefitCostRatio),
			irr,
		})
	}
	render.WriteTable(os.Stdout, header, rows)
}

func printSoilSuggestion(s soil.Suggestion, units []soil.MapUnit) {
	printHeading("Map Units")
	rows := make([][]string, 0, len(units))
	for _, u := range units {
		rows = append(rows, []string{u.Symbol, u.Description, render.Number(u.Acres, 1)})
	}
	render.WriteTable(os.Stdout, []string{"Symbol", "Description", "Acres"}, rows)

	fmt.Println()
	printHeading("Suggested Inputs")
	soilType := s.SoilType.Label()
	if !s.Classified {
		soilType += " (unclassified, default)"
	}
	render.WritePairs(os.Stdout, []render.Pair{
		{Label: "Acres of Pond Surface Area", Value: render.Number(s.AcPond, 2) + " acres"},
		{Label: "Length of Pond", Value: render.Number(s.LengthPond, 0) + " ft"},
		{Label: "Width of Pond", Value: render.Number(s.WidthPond, 0) + " ft"},
		{Label: "Pipeline Length", Value: render.Number(s.PipelineLength, 0) + " ft"},
		{Label: "Boundary Length", Value: render.Number(s.BoundaryLength, 0) + " ft"},
		{Label: "Soil Type", Value: soilType},
		{Label: "Infiltration Rate", Value: render.Number(s.InfiltrationRate, 2) + " ft/day"},
	})
}

func printHeading(title string) {
	fmt.Println(title)
	for range title {
		fmt.Print("=")
	}
	fmt.Println()
}
