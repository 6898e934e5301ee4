package simulate

import (
	"github.com/ekurtovic/boardsim/pkg/model"
)

// CongestionModel computes the per-step slowdown from local aisle density
// and the one-off seat interference penalty on row arrival. The hyperbolic
// shape 1/(1+beta*n) is the discrete analogue of the continuous model's
// congestion term: both decay monotonically in local density.
type CongestionModel struct {
	LookAhead float64 // rows scanned ahead of the passenger
	Beta      float64 // slowdown per passenger inside the window
	Penalty   map[model.SeatColumn]float64
}

func NewCongestionModel(cfg *Configuration) *CongestionModel {
	return &CongestionModel{
		LookAhead: cfg.LookAheadRows,
		Beta:      cfg.CongestionBeta,
		Penalty:   cfg.SeatPenalty,
	}
}

// Factor scales a passenger's forward progress rate for the current step
// given the number of passengers within the look-ahead window.
func (m *CongestionModel) Factor(nAhead int) float64 {
	return 1.0 / (1.0 + m.Beta*float64(nAhead))
}

// CountAhead counts aisle occupants strictly ahead of pos within the window.
func (m *CongestionModel) CountAhead(pos float64, occupants []float64) int {
	n := 0
	for _, p := range occupants {
		if p > pos && p-pos <= m.LookAhead {
			n++
		}
	}
	return n
}

// SeatInterference is the shuffle delay charged once, on row arrival, when
// passengers already seated between the aisle and the target seat have to
// stand up. The penalty is keyed by the arriving passenger's seat class, so
// aisle seats are always free to reach.
func (m *CongestionModel) SeatInterference(l *model.Layout, seats []model.Seat, row, col int) float64 {
	for _, idx := range l.CrossedSeats(row, col) {
		if seats[idx].Occupied {
			return m.Penalty[l.ColumnClass(col)]
		}
	}
	return 0
}
