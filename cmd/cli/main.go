package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ekurtovic/boardsim/internal/csvio"
	"github.com/ekurtovic/boardsim/internal/report"
	"github.com/ekurtovic/boardsim/internal/simulate"
)

// Program parameters
var cfg = simulate.NewDefaultConfiguration()

const (
	comparisonFile = "comparison.csv"
	heatmapFile    = "boarding_order.csv"
	workbookFile   = "boardsim_report.xlsx"
)

func main() {
	runner, err := simulate.NewRunner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Boarding simulation: %d passengers, %d rows x %d seats, %d seeds\n",
		cfg.Passengers, cfg.Rows, cfg.SeatsPerRow, cfg.Seeds)

	start := time.Now()
	rep, err := runner.RunScenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	fmt.Println()
	fmt.Println("Strategy comparison")
	for _, row := range rep.Comparison {
		fmt.Printf("- %-14s mean %7.1fs (std %5.1fs) | ODE %7.1fs | efficiency %.2fx\n",
			row.Strategy, row.MeanDiscrete, row.StdDiscrete, row.ODEPredicted, row.RelativeEfficiency)
	}

	fmt.Println()
	fmt.Printf("Calibrated continuous model: k=%.4f alpha=%.4f (rms residual %.4f)\n",
		rep.Fit.Params.K, rep.Fit.Params.Alpha, rep.Fit.Residual)
	if rep.Fit.Warning != nil {
		fmt.Printf("Warning: %s\n", rep.Fit.Warning)
	}
	fmt.Printf("Calibrated completion: %.1fs\n", rep.CalibratedTime)

	fmt.Println()
	fmt.Println("Disembarkation")
	f2b := rep.DisembarkMeans[simulate.FrontToBack]
	for _, s := range simulate.DisembarkStrategies() {
		m := rep.DisembarkMeans[s]
		saving := (1 - m/f2b) * 100
		fmt.Printf("- %-14s mean exit %6.1fs (%.0f%% vs front-to-back)\n", s, m, math.Abs(saving))
	}

	if err := csvio.ExportComparison(rep.Comparison, comparisonFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	if err := csvio.ExportHeatmap(rep.Heatmap, heatmapFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	for _, s := range simulate.BoardingStrategies() {
		path := fmt.Sprintf("progress_%s.csv", s)
		if err := csvio.ExportSeries(rep.Aggregates[s].MeanSeries, path); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
	}
	if err := report.WriteWorkbook(rep, workbookFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Timer: %f ms\n", float64(elapsed.Nanoseconds())/1000000.0)
	fmt.Printf("Exported %s, %s and %s\n", comparisonFile, heatmapFile, workbookFile)
}
