package csvio

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// ExportComparison writes the strategy comparison table to the CSV file
// specified by the given path.
func ExportComparison(rows []model.ComparisonRow, path string) error {
	return writeCSV(&rows, path)
}

// ExportSeries writes a progress time series (boarding curve) to a CSV file.
func ExportSeries(series []model.ProgressPoint, path string) error {
	return writeCSV(&series, path)
}

// ExportSeatingEvents writes per-passenger seating timestamps to a CSV file.
func ExportSeatingEvents(events []model.SeatingEvent, path string) error {
	return writeCSV(&events, path)
}

// ExportHeatmap writes the normalized boarding-order grid of a strategy,
// suitable for external heatmap plotting.
func ExportHeatmap(cells []model.HeatmapCell, path string) error {
	return writeCSV(&cells, path)
}

// ComparisonString renders the comparison table as CSV in memory, for
// transport surfaces that do not touch the filesystem.
func ComparisonString(rows []model.ComparisonRow) (string, error) {
	return gocsv.MarshalString(&rows)
}

func writeCSV(data interface{}, path string) error {
	// Remove file if exists
	if _, err := os.Stat(path); err == nil {
		os.Remove(path)
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()
	return gocsv.MarshalFile(data, out)
}
