package simulate

import (
	"math"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// FitResult is the outcome of deriving (k, alpha) from discrete aggregates.
type FitResult struct {
	Params   ODEParams
	Residual float64 // RMS residual of S(t) against the empirical curve
	Warning  *CalibrationWarning
}

// Search box for the two parameters. Wide enough to contain every rate the
// paper reports with an order of magnitude to spare on both sides.
const (
	fitKMin     = 0.02
	fitKMax     = 0.60
	fitAlphaMin = 0.001
	fitAlphaMax = 0.100

	fitGridPoints = 21
	fitZoomLevels = 4

	// Dense input curves are thinned before the search so the cost of one
	// candidate does not depend on the caller's sampling interval.
	fitMaxSamples = 61
)

// FitParameters derives the continuous-model constants from an empirical
// fraction-seated curve (time axis in minutes, averaged over seeds). It runs
// a 2-parameter grid search with iterative zoom, minimizing the sum of
// squared residuals between the integrated model and the empirical samples.
// A non-nil Warning flags a residual above cfg.ResidualThreshold; the fitted
// parameters are still returned.
func FitParameters(empirical []model.ProgressPoint, n int, cfg *Configuration) (FitResult, error) {
	if len(empirical) < 2 {
		return FitResult{}, &model.ConfigError{Field: "empirical", Reason: "needs at least two samples"}
	}
	empirical = downsample(empirical, fitMaxSamples)
	maxTime := empirical[len(empirical)-1].Time * 2
	if maxTime < cfg.ODEMaxTime {
		maxTime = cfg.ODEMaxTime
	}

	kLo, kHi := fitKMin, fitKMax
	aLo, aHi := fitAlphaMin, fitAlphaMax
	best := ODEParams{}
	bestSSR := math.Inf(1)

	for level := 0; level < fitZoomLevels; level++ {
		kStep := (kHi - kLo) / float64(fitGridPoints-1)
		aStep := (aHi - aLo) / float64(fitGridPoints-1)
		for i := 0; i < fitGridPoints; i++ {
			for j := 0; j < fitGridPoints; j++ {
				p := ODEParams{K: kLo + float64(i)*kStep, Alpha: aLo + float64(j)*aStep}
				ssr, ok := residualSSR(p, empirical, n, cfg.ODEStep, maxTime)
				if ok && ssr < bestSSR {
					bestSSR = ssr
					best = p
				}
			}
		}
		// zoom onto the best cell, clamped to the outer box
		kLo = math.Max(fitKMin, best.K-2*kStep)
		kHi = math.Min(fitKMax, best.K+2*kStep)
		aLo = math.Max(fitAlphaMin, best.Alpha-2*aStep)
		aHi = math.Min(fitAlphaMax, best.Alpha+2*aStep)
	}

	if math.IsInf(bestSSR, 1) {
		return FitResult{}, ErrNonConvergence
	}
	result := FitResult{
		Params:   best,
		Residual: math.Sqrt(bestSSR / float64(len(empirical))),
	}
	if cfg.ResidualThreshold > 0 && result.Residual > cfg.ResidualThreshold {
		result.Warning = &CalibrationWarning{Residual: result.Residual, Threshold: cfg.ResidualThreshold}
	}
	return result, nil
}

func residualSSR(p ODEParams, empirical []model.ProgressPoint, n int, h, maxTime float64) (float64, bool) {
	m := &ODEModel{Params: p, N: n, Congestion: true}
	curve, _, err := m.Integrate(h, maxTime)
	if err != nil {
		return 0, false
	}
	ssr := 0.0
	idx := 0
	for _, pt := range empirical {
		for idx+1 < len(curve) && curve[idx+1].Time <= pt.Time {
			idx++
		}
		diff := interpolateAt(curve, idx, pt.Time) - pt.FractionSeated
		ssr += diff * diff
	}
	return ssr, true
}

// interpolateAt evaluates the curve at time t, given that curve[i] is the
// last sample at or before t. Times past the end hold the final value.
func interpolateAt(curve []model.ProgressPoint, i int, t float64) float64 {
	if i+1 >= len(curve) {
		return curve[len(curve)-1].FractionSeated
	}
	a, b := curve[i], curve[i+1]
	if b.Time == a.Time {
		return b.FractionSeated
	}
	frac := (t - a.Time) / (b.Time - a.Time)
	return a.FractionSeated + frac*(b.FractionSeated-a.FractionSeated)
}

// downsample thins a curve to at most limit evenly spaced samples, always
// keeping the first and last point.
func downsample(curve []model.ProgressPoint, limit int) []model.ProgressPoint {
	if len(curve) <= limit {
		return curve
	}
	out := make([]model.ProgressPoint, 0, limit)
	for i := 0; i < limit; i++ {
		idx := i * (len(curve) - 1) / (limit - 1)
		out = append(out, curve[idx])
	}
	return out
}
