package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ekurtovic/boardsim/internal/simulate"
)

// WriteWorkbook saves the full scenario report as an xlsx workbook: one
// comparison sheet, one disembarkation sheet, and a mean-progress sheet per
// boarding strategy.
func WriteWorkbook(rep *simulate.ScenarioReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const comparisonSheet = "Comparison"
	f.NewSheet(comparisonSheet)

	headers := []string{"Strategy", "Mean Discrete (s)", "Std Discrete (s)", "ODE Predicted (s)", "Relative Efficiency"}
	if err := f.SetSheetRow(comparisonSheet, "A1", &headers); err != nil {
		return err
	}
	row := 2
	for _, c := range rep.Comparison {
		data := []interface{}{c.Strategy, c.MeanDiscrete, c.StdDiscrete, c.ODEPredicted, c.RelativeEfficiency}
		if err := f.SetSheetRow(comparisonSheet, fmt.Sprintf("A%d", row), &data); err != nil {
			return err
		}
		row++
	}
	fitRow := []interface{}{"calibrated", rep.CalibratedTime, "", "", ""}
	if err := f.SetSheetRow(comparisonSheet, fmt.Sprintf("A%d", row), &fitRow); err != nil {
		return err
	}

	const disembarkSheet = "Disembarkation"
	f.NewSheet(disembarkSheet)
	dHeaders := []string{"Strategy", "Mean Exit (s)"}
	if err := f.SetSheetRow(disembarkSheet, "A1", &dHeaders); err != nil {
		return err
	}
	row = 2
	for _, s := range simulate.DisembarkStrategies() {
		data := []interface{}{s.String(), rep.DisembarkMeans[s]}
		if err := f.SetSheetRow(disembarkSheet, fmt.Sprintf("A%d", row), &data); err != nil {
			return err
		}
		row++
	}

	for _, s := range simulate.BoardingStrategies() {
		agg, ok := rep.Aggregates[s]
		if !ok {
			continue
		}
		sheet := "Progress_" + s.String()
		f.NewSheet(sheet)
		sHeaders := []string{"Time (s)", "Fraction Seated"}
		if err := f.SetSheetRow(sheet, "A1", &sHeaders); err != nil {
			return err
		}
		for i, p := range agg.MeanSeries {
			data := []interface{}{p.Time, p.FractionSeated}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &data); err != nil {
				return err
			}
		}
	}

	f.DeleteSheet("Sheet1")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
