package simulate

import (
	"math/rand"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// Floors for clamped sampling. Negative or zero draws are recovered locally
// so a pathological sample can never stall the simulation.
const (
	minWalkSpeed   = 0.1 // rows per second
	minLuggageTime = 1.0 // seconds
	minGatherTime  = 1.0 // seconds
)

// GeneratePassengers produces the boarding population for one run: seats
// follow the strategy ordering (first Passengers seats when the cabin is not
// full), attributes are clamped normal draws from the injected rng, and
// entry times follow the door metering schedule.
//
// The schedule is cumulative over consecutive pairs in the boarding order.
// Each release waits MinEntryInterval, plus HeadwayPerRow for every row the
// newcomer continues past the previous entrant's row, plus ShuffleHold when
// the previous entrant has to clear a seat shuffle on the newcomer's path.
// Whether an entrant shuffles is read off the order itself: someone earlier
// in the queue already claimed a seat between theirs and the aisle.
func GeneratePassengers(cfg *Configuration, l *model.Layout, strategy Strategy, rng *rand.Rand) []*model.Passenger {
	order := BoardingOrder(l, strategy, cfg.Zones, rng)
	n := cfg.Passengers
	if n > len(order) {
		n = len(order)
	}
	passengers := make([]*model.Passenger, 0, n)
	claimed := make(map[int]bool, n)
	entry := 0.0
	prevRow := 0
	prevShuffles := false
	for i := 0; i < n; i++ {
		seat := order[i]
		if i > 0 {
			ahead := seat.Row - prevRow
			if ahead < 0 {
				ahead = 0
			}
			entry += cfg.MinEntryInterval + cfg.HeadwayPerRow*float64(ahead)
			if prevShuffles && seat.Row > prevRow {
				entry += cfg.ShuffleHold
			}
		}
		passengers = append(passengers, &model.Passenger{
			ID:           i,
			Row:          seat.Row,
			Column:       seat.Column,
			WalkingSpeed: clampedNormal(rng, cfg.WalkSpeedMean, cfg.WalkSpeedStd, minWalkSpeed),
			LuggageTime:  clampedNormal(rng, cfg.LuggageTimeMean, cfg.LuggageTimeStd, minLuggageTime),
			Rank:         i,
			State:        model.StateQueued,
			Position:     -1,
			EntryTime:    entry,
		})
		prevShuffles = cfg.SeatPenalty[seat.Class] > 0 && anyClaimed(claimed, l.CrossedSeats(seat.Row, seat.Column))
		claimed[l.SeatIndex(seat.Row, seat.Column)] = true
		prevRow = seat.Row
	}
	return passengers
}

func anyClaimed(claimed map[int]bool, indices []int) bool {
	for _, idx := range indices {
		if claimed[idx] {
			return true
		}
	}
	return false
}

func clampedNormal(rng *rand.Rand, mean, std, floor float64) float64 {
	v := rng.NormFloat64()*std + mean
	if v < floor {
		return floor
	}
	return v
}
