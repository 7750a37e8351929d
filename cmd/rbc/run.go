package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/internal/config"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/internal/server"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/internal/store"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/analytics"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/geo"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/render"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/soil"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/validation"
)

// loadAndEvaluate loads the scenario and evaluates it. The evaluation is nil
// when the scenario has validation errors.
func loadAndEvaluate(projectPath string) (*analytics.Evaluation, *validation.Report, error) {
	in, err := basin.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scenario: %w", err)
	}
	return analytics.Evaluate(in)
}

// mustEvaluate is loadAndEvaluate for commands that need results.
func mustEvaluate(projectPath string) (*analytics.Evaluation, *validation.Report, error) {
	eval, report, err := loadAndEvaluate(projectPath)
	if err != nil {
		return nil, nil, err
	}
	if eval == nil {
		printValidationReport(report)
		return nil, nil, fmt.Errorf("scenario has validation errors; fix before computing results")
	}
	return eval, report, nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndEvaluate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runEvaluate(projectPath string) error {
	eval, report, err := loadAndEvaluate(projectPath)
	if err != nil {
		return err
	}

	output := map[string]any{
		"evaluation": eval,
		"validation": report,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return err
	}
	if eval == nil {
		return fmt.Errorf("scenario has validation errors")
	}
	return nil
}

func runCost(projectPath string) error {
	eval, report, err := mustEvaluate(projectPath)
	if err != nil {
		return err
	}

	printCalculations(eval)
	fmt.Println()
	printCostReport(eval)
	printWarnings(report)
	return nil
}

func runROI(projectPath string) error {
	eval, report, err := mustEvaluate(projectPath)
	if err != nil {
		return err
	}

	printROIReport(eval)
	printWarnings(report)
	return nil
}

func runExport(projectPath, pdfPath, xlsxPath string) error {
	eval, _, err := mustEvaluate(projectPath)
	if err != nil {
		return err
	}

	if pdfPath != "" {
		if err := writeFile(pdfPath, func(f *os.File) error { return render.WritePDF(f, eval) }); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		fmt.Printf("Wrote %s\n", pdfPath)
	}
	if xlsxPath != "" {
		if err := writeFile(xlsxPath, func(f *os.File) error { return render.WriteXLSX(f, eval) }); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Printf("Wrote %s\n", xlsxPath)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// batchResult is one evaluated workbook row.
type batchResult struct {
	Name       string                `json:"name"`
	Row        int                   `json:"row"`
	Evaluation *analytics.Evaluation `json:"evaluation,omitempty"`
	Validation *validation.Report    `json:"validation"`
}

func runBatch(workbook string, asJSON bool) error {
	f, err := os.Open(workbook)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	scenarios, err := render.ReadParametersXLSX(f)
	if err != nil {
		return err
	}

	results := make([]batchResult, 0, len(scenarios))
	failed := 0
	for _, sc := range scenarios {
		eval, report, err := analytics.Evaluate(&sc.Input)
		if err != nil {
			return fmt.Errorf("row %d: %w", sc.Row, err)
		}
		if eval == nil {
			failed++
		}
		results = append(results, batchResult{Name: sc.Name, Row: sc.Row, Evaluation: eval, Validation: report})
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printBatch(results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios have validation errors", failed, len(results))
	}
	return nil
}

// soilLookup is satisfied by *soil.Client.
type soilLookup interface {
	Lookup(ctx context.Context, b geo.Bounds) ([]soil.MapUnit, error)
}

func runSoil(ctx context.Context, client soilLookup, b geo.Bounds, projectPath string, write, geoJSON bool) error {
	if err := b.Validate(); err != nil {
		return err
	}

	if geoJSON {
		fmt.Println(b.FeatureCollection("area of interest").String())
		fmt.Println()
	}

	units, err := client.Lookup(ctx, b)
	if err != nil {
		return fmt.Errorf("soil lookup: %w", err)
	}
	s := soil.Suggest(b, units)
	printSoilSuggestion(s, units)
	printWarnings(s.Check())

	if !write {
		return nil
	}

	path := filepath.Join(projectPath, basin.ProjectFile)
	in, err := basin.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		defaults := basin.FromParameters(basin.Defaults())
		in = &defaults
	}
	s.Apply(in)
	if err := basin.Save(path, in); err != nil {
		return err
	}
	fmt.Printf("\nUpdated %s\n", path)
	return nil
}

func runServe(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(cfg, st, soil.NewClient(cfg.SoilURL, cfg.SoilTimeout))
	return srv.Run(ctx)
}
