package simulate

import (
	"math/rand"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// Simulator advances the discrete agent-based boarding model with a fixed
// timestep. Each Run owns fresh copies of all mutable state, so concurrent
// runs never share anything.
type Simulator struct {
	cfg        *Configuration
	layout     *model.Layout
	congestion *CongestionModel
}

func NewSimulator(cfg *Configuration, l *model.Layout) *Simulator {
	return &Simulator{
		cfg:        cfg,
		layout:     l,
		congestion: NewCongestionModel(cfg),
	}
}

// Run simulates one boarding with the given strategy and seed.
// Passengers enter the aisle no earlier than their door metering slot and
// only when the door has a follower gap of clear aisle, walk forward at
// speed scaled by the local congestion factor without overtaking, stow on
// row arrival, then sit. A stowing passenger steps aside and only adds to
// local density, unless the stow includes a seat shuffle: a shuffle spills
// into the aisle, and anyone passing that row is cut to crawl speed.
func (s *Simulator) Run(strategy Strategy, seed int64) model.RunResult {
	rng := rand.New(rand.NewSource(seed))
	passengers := GeneratePassengers(s.cfg, s.layout, strategy, rng)
	seats := make([]model.Seat, len(s.layout.Seats))
	copy(seats, s.layout.Seats)

	n := len(passengers)
	result := model.RunResult{Strategy: strategy.String(), Seed: seed}

	dt := s.cfg.TimeStep
	seated := 0
	step := 0
	t := 0.0

	occupants := make([]float64, 0, n) // aisle positions, rebuilt every step
	shuffles := make([]float64, 0, n)  // rows with an active seat shuffle
	for seated < n && t < s.cfg.SimTimeLimit {
		occupants = occupants[:0]
		shuffles = shuffles[:0]
		for _, p := range passengers {
			if p.State == model.StateWalking || p.State == model.StateStowing {
				occupants = append(occupants, p.Position)
				if p.State == model.StateStowing && p.Shuffling {
					shuffles = append(shuffles, p.Position)
				}
			}
		}

		// aheadWalk tracks the nearest walking passenger ahead of the one
		// being updated; rank order equals aisle order among walkers
		// because nobody overtakes.
		aheadWalk := -1.0
		haveWalk := false
		for _, p := range passengers {
			switch p.State {
			case model.StateQueued:
				doorClear := !haveWalk || aheadWalk >= s.cfg.FollowerGap
				if t >= p.EntryTime && doorClear {
					p.State = model.StateWalking
					p.Position = 0
					aheadWalk, haveWalk = 0, true
				}
			case model.StateWalking:
				nAhead := s.congestion.CountAhead(p.Position, occupants)
				speed := p.WalkingSpeed * s.congestion.Factor(nAhead)
				for _, b := range shuffles {
					if p.Position < b && b <= p.Position+s.cfg.FollowerGap {
						speed *= s.cfg.CrawlFactor
						break
					}
				}
				next := p.Position + speed*dt
				if haveWalk && next > aheadWalk-s.cfg.FollowerGap {
					next = aheadWalk - s.cfg.FollowerGap
				}
				if next < p.Position {
					next = p.Position
				}
				target := float64(p.Row)
				if next >= target {
					p.Position = target
					p.State = model.StateStowing
					interference := s.congestion.SeatInterference(s.layout, seats, p.Row, p.Column)
					p.Shuffling = interference > 0
					p.StowEnd = t + p.LuggageTime + interference
				} else {
					p.Position = next
					aheadWalk, haveWalk = p.Position, true
				}
			case model.StateStowing:
				if t >= p.StowEnd {
					p.State = model.StateSeated
					p.SeatedAt = p.StowEnd
					idx := s.layout.SeatIndex(p.Row, p.Column)
					seats[idx].Occupied = true
					seats[idx].Occupant = p.ID
					seated++
					result.Events = append(result.Events, model.SeatingEvent{
						PassengerID: p.ID,
						Row:         p.Row,
						Seat:        s.layout.ColumnLetter(p.Column),
						SeatedAt:    p.SeatedAt,
					})
				}
			}
		}

		if step%s.cfg.SampleEvery == 0 {
			result.Series = append(result.Series, model.ProgressPoint{
				Time:           t,
				FractionSeated: float64(seated) / float64(n),
			})
		}
		step++
		t += dt
	}

	for _, p := range passengers {
		if p.SeatedAt > result.TotalTime {
			result.TotalTime = p.SeatedAt
		}
	}
	if seated < n {
		// timed out; report the bound itself so callers see the truncation
		result.TotalTime = s.cfg.SimTimeLimit
	}
	// The run completes between two samples, so any point recorded on the
	// completion step would sit past the final seating time. Drop those and
	// close the curve exactly at TotalTime.
	for len(result.Series) > 0 && result.Series[len(result.Series)-1].Time >= result.TotalTime {
		result.Series = result.Series[:len(result.Series)-1]
	}
	result.Series = append(result.Series, model.ProgressPoint{
		Time:           result.TotalTime,
		FractionSeated: float64(seated) / float64(n),
	})
	return result
}
