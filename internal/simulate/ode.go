package simulate

import (
	"fmt"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// ODEParams are the continuous-model constants: K is the base boarding rate
// (1/min), Alpha the congestion sensitivity (min per passenger). Immutable
// once derived.
type ODEParams struct {
	K     float64
	Alpha float64
}

// ODEModel represents the fraction seated S as
//
//	dS/dt = K * (1 - S) / (1 + Alpha * N * (1 - S))
//
// with the congestion term linear in the number of passengers not yet
// seated. Setting Congestion to false drops the denominator, giving the
// basic exponential model dS/dt = K * (1 - S).
type ODEModel struct {
	Params     ODEParams
	N          int
	Congestion bool
}

// Rate is the right-hand side of the differential equation. It only depends
// on S, not t, but keeps the (t, S) signature of a first-order ODE.
func (m *ODEModel) Rate(_, sv float64) float64 {
	r := m.Params.K * (1 - sv)
	if m.Congestion {
		r /= 1 + m.Params.Alpha*float64(m.N)*(1-sv)
	}
	return r
}

const completionEpsilon = 0.01

// Integrate advances S from 0 with classic 4th-order Runge-Kutta at fixed
// step h (minutes). It returns the progress curve and the completion time,
// interpolated where S crosses 1-epsilon. ErrNonConvergence is returned when
// S has not converged by maxTime.
func (m *ODEModel) Integrate(h, maxTime float64) ([]model.ProgressPoint, float64, error) {
	if h <= 0 {
		return nil, 0, &model.ConfigError{Field: "ODEStep", Reason: "must be positive"}
	}
	sv := 0.0
	t := 0.0
	curve := []model.ProgressPoint{{Time: 0, FractionSeated: 0}}
	for t < maxTime {
		k1 := m.Rate(t, sv)
		k2 := m.Rate(t+h/2, sv+h/2*k1)
		k3 := m.Rate(t+h/2, sv+h/2*k2)
		k4 := m.Rate(t+h, sv+h*k3)
		next := sv + h/6*(k1+2*k2+2*k3+k4)
		if next > 1 {
			next = 1
		}
		t += h
		if next >= 1-completionEpsilon {
			// linear interpolation inside the crossing step
			frac := 1.0
			if next > sv {
				frac = (1 - completionEpsilon - sv) / (next - sv)
			}
			completion := t - h + h*frac
			curve = append(curve, model.ProgressPoint{Time: completion, FractionSeated: 1 - completionEpsilon})
			return curve, completion, nil
		}
		sv = next
		curve = append(curve, model.ProgressPoint{Time: t, FractionSeated: sv})
	}
	return curve, 0, fmt.Errorf("k=%.4f alpha=%.4f after %.1f min: %w", m.Params.K, m.Params.Alpha, maxTime, ErrNonConvergence)
}

// CurveAt samples a progress curve at time t with linear interpolation,
// holding the last value past the end.
func CurveAt(curve []model.ProgressPoint, t float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	if t <= curve[0].Time {
		return curve[0].FractionSeated
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Time >= t {
			a, b := curve[i-1], curve[i]
			if b.Time == a.Time {
				return b.FractionSeated
			}
			frac := (t - a.Time) / (b.Time - a.Time)
			return a.FractionSeated + frac*(b.FractionSeated-a.FractionSeated)
		}
	}
	return curve[len(curve)-1].FractionSeated
}

// SweepCompletion evaluates boarding completion time across parameter values,
// the numeric counterpart of the paper's sensitivity plots. Entries that do
// not converge are reported as negative.
func SweepCompletion(n int, ks, alphas []float64, h, maxTime float64) map[ODEParams]float64 {
	out := make(map[ODEParams]float64, len(ks)*len(alphas))
	for _, k := range ks {
		for _, a := range alphas {
			m := &ODEModel{Params: ODEParams{K: k, Alpha: a}, N: n, Congestion: true}
			_, completion, err := m.Integrate(h, maxTime)
			if err != nil {
				out[m.Params] = -1
				continue
			}
			out[m.Params] = completion
		}
	}
	return out
}
