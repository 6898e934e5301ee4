package simulate

import (
	"math/rand"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// DisembarkSimulator estimates exit times with a per-door release model:
// aisle congestion is folded into DoorReleaseInterval, the pacing between
// consecutive exits through one door. A passenger's exit time is the time to
// gather luggage, plus their slot in the door's release queue, plus the walk
// from their row to the door. Doors drain in parallel.
type DisembarkSimulator struct {
	cfg    *Configuration
	layout *model.Layout
}

func NewDisembarkSimulator(cfg *Configuration, l *model.Layout) *DisembarkSimulator {
	return &DisembarkSimulator{cfg: cfg, layout: l}
}

func (d *DisembarkSimulator) Run(strategy DisembarkStrategy, seed int64) model.DisembarkResult {
	rng := rand.New(rand.NewSource(seed))
	assignments := ExitOrder(d.layout, strategy, d.cfg.PrestigeRows, rng)
	assignments = boardedOnly(d.layout, assignments, d.cfg.Passengers, rng)

	result := model.DisembarkResult{Strategy: strategy.String(), Seed: seed}
	total := 0.0
	for _, a := range assignments {
		gather := clampedNormal(rng, d.cfg.GatherTimeMean, d.cfg.GatherTimeStd, minGatherTime)
		speed := clampedNormal(rng, d.cfg.WalkSpeedMean, d.cfg.WalkSpeedStd, minWalkSpeed)
		exit := gather + float64(a.Rank)*d.cfg.DoorReleaseInterval + d.walkDistance(a)/speed
		total += exit
		if exit > result.LastExit {
			result.LastExit = exit
		}
	}
	if len(assignments) > 0 {
		result.MeanExit = total / float64(len(assignments))
	}
	return result
}

// boardedOnly restricts the exit schedule to the n occupied seats. Occupancy
// is drawn with the run's rng so partial loads stay reproducible per seed.
// Each door's release queue is re-ranked without gaps after the filter.
func boardedOnly(l *model.Layout, assignments []ExitAssignment, n int, rng *rand.Rand) []ExitAssignment {
	if n >= len(l.Seats) {
		return assignments
	}
	occupied := make(map[int]bool, n)
	for _, i := range rng.Perm(len(l.Seats))[:n] {
		occupied[i] = true
	}
	out := make([]ExitAssignment, 0, n)
	rank := make(map[Door]int)
	for _, a := range assignments {
		if !occupied[l.SeatIndex(a.Seat.Row, a.Seat.Column)] {
			continue
		}
		a.Rank = rank[a.Door]
		rank[a.Door]++
		out = append(out, a)
	}
	return out
}

// walkDistance is the aisle length between the seat row and the exit door,
// in rows. The front door sits ahead of row 1, the rear door behind the
// last row.
func (d *DisembarkSimulator) walkDistance(a ExitAssignment) float64 {
	if a.Door == RearDoor {
		return float64(d.layout.Rows - a.Seat.Row + 1)
	}
	return float64(a.Seat.Row)
}
