package simulate

import (
	"log"
	"math"
	"math/rand"
	"sync"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// meanSeriesPoints is the common resampling grid size for averaging
// progress curves across seeds.
const meanSeriesPoints = 120

// Runner orchestrates multi-seed simulation runs per strategy and aggregates
// the results. Runs are independent: each owns its rng, passengers and seat
// state, so they execute in parallel without locking, joined before any
// statistics are computed.
type Runner struct {
	cfg    *Configuration
	layout *model.Layout
	sim    *Simulator
	dis    *DisembarkSimulator
}

func NewRunner(cfg *Configuration) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := model.NewLayout(cfg.Rows, cfg.SeatsPerRow)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:    cfg,
		layout: layout,
		sim:    NewSimulator(cfg, layout),
		dis:    NewDisembarkSimulator(cfg, layout),
	}, nil
}

func (r *Runner) Layout() *model.Layout { return r.layout }

// ScenarioReport is the full comparison output consumed by the CLI, the
// server and the exporters.
type ScenarioReport struct {
	Aggregates      map[Strategy]*model.StrategyAggregate
	Fit             FitResult // calibrated against the Random reference runs
	CalibratedTime  float64   // seconds, continuous-model completion with fitted params
	Comparison      []model.ComparisonRow
	DisembarkMeans  map[DisembarkStrategy]float64 // seconds, mean exit over passengers and seeds
	DisembarkRuns   []model.DisembarkResult
	HeatmapStrategy Strategy
	Heatmap         []model.HeatmapCell
}

// RunBoarding executes cfg.Seeds independent runs of one strategy and
// aggregates mean/variance of the total time plus the mean progress curve.
func (r *Runner) RunBoarding(strategy Strategy) *model.StrategyAggregate {
	results := make([]model.RunResult, r.cfg.Seeds)
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Seeds; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.sim.Run(strategy, r.cfg.SeedBase+int64(i))
		}(i)
	}
	wg.Wait()

	agg := &model.StrategyAggregate{
		Strategy: strategy.String(),
		Runs:     len(results),
		Results:  results,
	}
	totals := make([]float64, len(results))
	for i, res := range results {
		totals[i] = res.TotalTime
	}
	agg.MeanTotal = mean(totals)
	agg.VarTotal = variance(totals, agg.MeanTotal)
	agg.MeanSeries = meanSeries(results)
	return agg
}

// RunDisembark executes cfg.Seeds independent exit runs of one strategy.
func (r *Runner) RunDisembark(strategy DisembarkStrategy) []model.DisembarkResult {
	results := make([]model.DisembarkResult, r.cfg.Seeds)
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Seeds; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.dis.Run(strategy, r.cfg.SeedBase+int64(i))
		}(i)
	}
	wg.Wait()
	return results
}

// RunScenario runs the full pipeline: every boarding strategy across all
// seeds, calibration of (k, alpha) against the Random reference aggregate,
// the continuous model per strategy, every disembark strategy, and the
// normalized comparison table.
func (r *Runner) RunScenario() (*ScenarioReport, error) {
	report := &ScenarioReport{
		Aggregates:     make(map[Strategy]*model.StrategyAggregate),
		DisembarkMeans: make(map[DisembarkStrategy]float64),
	}

	for _, s := range BoardingStrategies() {
		report.Aggregates[s] = r.RunBoarding(s)
	}

	// Calibration closes the loop between the two models: discrete
	// aggregates in, continuous parameters out.
	reference := report.Aggregates[Random]
	fit, err := FitParameters(toMinutes(reference.MeanSeries), r.cfg.Passengers, r.cfg)
	if err != nil {
		return nil, err
	}
	if fit.Warning != nil {
		log.Printf("warning: %s", fit.Warning)
	}
	report.Fit = fit

	calibrated := &ODEModel{Params: fit.Params, N: r.cfg.Passengers, Congestion: true}
	if _, completion, err := calibrated.Integrate(r.cfg.ODEStep, r.cfg.ODEMaxTime); err == nil {
		report.CalibratedTime = completion * 60
	} else {
		return nil, err
	}

	randomMean := report.Aggregates[Random].MeanTotal
	for _, s := range BoardingStrategies() {
		agg := report.Aggregates[s]
		odePredicted, err := r.predictedCompletion(s)
		if err != nil {
			return nil, err
		}
		row := model.ComparisonRow{
			Strategy:     s.String(),
			MeanDiscrete: agg.MeanTotal,
			StdDiscrete:  math.Sqrt(agg.VarTotal),
			ODEPredicted: odePredicted,
		}
		if agg.MeanTotal > 0 {
			row.RelativeEfficiency = randomMean / agg.MeanTotal
		}
		report.Comparison = append(report.Comparison, row)
	}

	for _, s := range DisembarkStrategies() {
		runs := r.RunDisembark(s)
		report.DisembarkRuns = append(report.DisembarkRuns, runs...)
		sum := 0.0
		for _, run := range runs {
			sum += run.MeanExit
		}
		report.DisembarkMeans[s] = sum / float64(len(runs))
	}

	report.HeatmapStrategy = BackToFront
	heatRng := rand.New(rand.NewSource(r.cfg.SeedBase))
	report.Heatmap = HeatmapGrid(r.layout, BoardingOrder(r.layout, report.HeatmapStrategy, r.cfg.Zones, heatRng))
	return report, nil
}

// predictedCompletion integrates the continuous model with the documented
// per-strategy rate constant, returning seconds.
func (r *Runner) predictedCompletion(s Strategy) (float64, error) {
	k, ok := r.cfg.RateConstants[s]
	if !ok {
		return 0, &model.ConfigError{Field: "RateConstants[" + s.String() + "]", Reason: "missing"}
	}
	m := &ODEModel{Params: ODEParams{K: k, Alpha: r.cfg.Alpha}, N: r.cfg.Passengers, Congestion: true}
	_, completion, err := m.Integrate(r.cfg.ODEStep, r.cfg.ODEMaxTime)
	if err != nil {
		return 0, err
	}
	return completion * 60, nil
}

// meanSeries averages run curves on a common time grid.
func meanSeries(results []model.RunResult) []model.ProgressPoint {
	maxT := 0.0
	for _, res := range results {
		if res.TotalTime > maxT {
			maxT = res.TotalTime
		}
	}
	if maxT == 0 {
		return nil
	}
	out := make([]model.ProgressPoint, 0, meanSeriesPoints+1)
	for i := 0; i <= meanSeriesPoints; i++ {
		t := maxT * float64(i) / float64(meanSeriesPoints)
		sum := 0.0
		for _, res := range results {
			sum += CurveAt(res.Series, t)
		}
		out = append(out, model.ProgressPoint{Time: t, FractionSeated: sum / float64(len(results))})
	}
	return out
}

func toMinutes(series []model.ProgressPoint) []model.ProgressPoint {
	out := make([]model.ProgressPoint, len(series))
	for i, p := range series {
		out[i] = model.ProgressPoint{Time: p.Time / 60, FractionSeated: p.FractionSeated}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}
