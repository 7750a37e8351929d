package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/internal/config"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/geo"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/soil"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rbc",
		Short: "Recharge basin cost and return-on-investment calculator",
	}

	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(costCmd())
	rootCmd.AddCommand(roiCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(soilCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func evaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate [project-path]",
		Short: "Evaluate a basin scenario and print the full result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEvaluate(args[0])
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a basin scenario without printing results",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func costCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost [project-path]",
		Short: "Print the itemized cost and benefit table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCost(args[0])
		},
	}
}

func roiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roi [project-path]",
		Short: "Print the cash-flow schedule and discounted ROI summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runROI(args[0])
		},
	}
}

func exportCmd() *cobra.Command {
	var pdfPath, xlsxPath string

	cmd := &cobra.Command{
		Use:   "export [project-path]",
		Short: "Write the results as a PDF report and/or an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if pdfPath == "" && xlsxPath == "" {
				return fmt.Errorf("nothing to export: pass --pdf and/or --xlsx")
			}
			return runExport(args[0], pdfPath, xlsxPath)
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "PDF report output path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Excel workbook output path")
	return cmd
}

func batchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch [workbook.xlsx]",
		Short: "Evaluate every scenario row of a workbook and compare the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBatch(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func soilCmd() *cobra.Command {
	var (
		b       geo.Bounds
		url     string
		timeout time.Duration
		write   bool
		geoJSON bool
	)

	cmd := &cobra.Command{
		Use:   "soil [project-path]",
		Short: "Look up the dominant soil of an area and suggest basin inputs",
		Long: `Queries the NRCS Soil Data Access service for the rectangle given by
--north/--south/--east/--west and suggests pond dimensions and an
infiltration rate. With --write the suggestion is applied to basin.yaml
in the project directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := ""
			if len(args) == 1 {
				project = args[0]
			}
			if write && project == "" {
				return fmt.Errorf("--write needs a project path")
			}
			return runSoil(cmd.Context(), soil.NewClient(url, timeout), b, project, write, geoJSON)
		},
	}

	cmd.Flags().Float64Var(&b.North, "north", 0, "northern latitude (degrees)")
	cmd.Flags().Float64Var(&b.South, "south", 0, "southern latitude (degrees)")
	cmd.Flags().Float64Var(&b.East, "east", 0, "eastern longitude (degrees)")
	cmd.Flags().Float64Var(&b.West, "west", 0, "western longitude (degrees)")
	cmd.Flags().StringVar(&url, "url", soil.DefaultURL, "Soil Data Access endpoint")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	cmd.Flags().BoolVar(&write, "write", false, "apply the suggestion to the project's basin.yaml")
	cmd.Flags().BoolVar(&geoJSON, "geojson", false, "print the area of interest as GeoJSON")
	for _, f := range []string{"north", "south", "east", "west"} {
		cmd.MarkFlagRequired(f)
	}
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		configFile string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (default rbc.yaml if present)")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port, overrides the config")
	return cmd
}
