package simulate

import (
	"math/rand"

	"github.com/ekurtovic/boardsim/pkg/model"
)

// Strategy selects the boarding queue ordering policy.
type Strategy string

const (
	Random      Strategy = "random"
	BackToFront Strategy = "back-to-front"
	OutsideIn   Strategy = "outside-in"
	Hybrid      Strategy = "hybrid"
)

func (s Strategy) String() string { return string(s) }

// BoardingStrategies lists all boarding policies in comparison order.
// Random goes first because it is the efficiency baseline.
func BoardingStrategies() []Strategy {
	return []Strategy{Random, BackToFront, OutsideIn, Hybrid}
}

// DisembarkStrategy selects the exit ordering policy.
type DisembarkStrategy string

const (
	FrontToBack   DisembarkStrategy = "front-to-back"
	DualDoor      DisembarkStrategy = "dual-door"
	PriorityBased DisembarkStrategy = "priority"
)

func (s DisembarkStrategy) String() string { return string(s) }

func DisembarkStrategies() []DisembarkStrategy {
	return []DisembarkStrategy{FrontToBack, DualDoor, PriorityBased}
}

// Door identifies an exit door. The front door doubles as the boarding door.
type Door int

const (
	FrontDoor Door = iota
	RearDoor
)

// BoardingOrder maps the seat set to an ordered boarding queue. Every seat
// appears exactly once. Ties within a zone or column group are broken by a
// seeded shuffle only, so the order is reproducible per rng seed.
func BoardingOrder(l *model.Layout, s Strategy, zones int, rng *rand.Rand) []model.Seat {
	switch s {
	case BackToFront:
		order := make([]model.Seat, 0, len(l.Seats))
		for _, zone := range zoneRows(l.Rows, zones) {
			order = append(order, shuffledSeats(l, zone, nil, rng)...)
		}
		return order
	case OutsideIn:
		allRows := rowRange(1, l.Rows)
		order := make([]model.Seat, 0, len(l.Seats))
		for _, class := range []model.SeatColumn{model.Window, model.Middle, model.Aisle} {
			c := class
			order = append(order, shuffledSeats(l, allRows, &c, rng)...)
		}
		return order
	case Hybrid:
		// Outside-in major, back-to-front zones within each column group.
		order := make([]model.Seat, 0, len(l.Seats))
		for _, class := range []model.SeatColumn{model.Window, model.Middle, model.Aisle} {
			c := class
			for _, zone := range zoneRows(l.Rows, zones) {
				order = append(order, shuffledSeats(l, zone, &c, rng)...)
			}
		}
		return order
	default: // Random
		return shuffledSeats(l, rowRange(1, l.Rows), nil, rng)
	}
}

// zoneRows splits the cabin into zones rear first. The frontmost zone
// absorbs the remainder rows.
func zoneRows(rows, zones int) [][]int {
	if zones < 1 {
		zones = 1
	}
	if zones > rows {
		zones = rows
	}
	perZone := rows / zones
	out := make([][]int, 0, zones)
	for i := 0; i < zones; i++ {
		lo := rows - (i+1)*perZone + 1
		hi := rows - i*perZone
		if i == zones-1 {
			lo = 1
		}
		out = append(out, rowRange(lo, hi))
	}
	return out
}

func rowRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// shuffledSeats collects the seats of the given rows, optionally filtered by
// class, and shuffles them with the injected rng.
func shuffledSeats(l *model.Layout, rows []int, class *model.SeatColumn, rng *rand.Rand) []model.Seat {
	var group []model.Seat
	for _, r := range rows {
		for c := 0; c < l.SeatsPerRow; c++ {
			seat := l.Seats[l.SeatIndex(r, c)]
			if class != nil && seat.Class != *class {
				continue
			}
			group = append(group, seat)
		}
	}
	rng.Shuffle(len(group), func(i, j int) {
		group[i], group[j] = group[j], group[i]
	})
	return group
}

// ExitAssignment schedules one seat through a door during disembarkation.
type ExitAssignment struct {
	Seat model.Seat
	Door Door
	Rank int // position in that door's release queue
}

// ExitOrder builds the per-door release queues for a disembark strategy.
// Within a row, aisle seats step out before middle and window seats.
func ExitOrder(l *model.Layout, s DisembarkStrategy, prestigeRows int, rng *rand.Rand) []ExitAssignment {
	var seats []model.Seat
	switch s {
	case DualDoor:
		half := l.Rows / 2
		front := rowsByExitOrder(l, rowRange(1, half))
		rear := rowsByExitOrder(l, reversed(rowRange(half+1, l.Rows)))
		out := make([]ExitAssignment, 0, len(front)+len(rear))
		for i, seat := range front {
			out = append(out, ExitAssignment{Seat: seat, Door: FrontDoor, Rank: i})
		}
		for i, seat := range rear {
			out = append(out, ExitAssignment{Seat: seat, Door: RearDoor, Rank: i})
		}
		return out
	case PriorityBased:
		if prestigeRows > l.Rows {
			prestigeRows = l.Rows
		}
		remaining := rowRange(prestigeRows+1, l.Rows)
		connecting := pickRows(remaining, l.Rows/5, rng)
		rest := excludeRows(remaining, connecting)
		seats = rowsByExitOrder(l, rowRange(1, prestigeRows))
		seats = append(seats, rowsByExitOrder(l, connecting)...)
		seats = append(seats, rowsByExitOrder(l, rest)...)
	default: // FrontToBack
		seats = rowsByExitOrder(l, rowRange(1, l.Rows))
	}
	out := make([]ExitAssignment, 0, len(seats))
	for i, seat := range seats {
		out = append(out, ExitAssignment{Seat: seat, Door: FrontDoor, Rank: i})
	}
	return out
}

// rowsByExitOrder expands rows to seats, aisle class first within each row.
func rowsByExitOrder(l *model.Layout, rows []int) []model.Seat {
	var out []model.Seat
	for _, r := range rows {
		for _, class := range []model.SeatColumn{model.Aisle, model.Middle, model.Window} {
			for c := 0; c < l.SeatsPerRow; c++ {
				seat := l.Seats[l.SeatIndex(r, c)]
				if seat.Class == class {
					out = append(out, seat)
				}
			}
		}
	}
	return out
}

func reversed(rows []int) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}

// pickRows draws n distinct rows, order preserved front to back.
func pickRows(rows []int, n int, rng *rand.Rand) []int {
	if n > len(rows) {
		n = len(rows)
	}
	perm := rng.Perm(len(rows))[:n]
	chosen := make(map[int]bool, n)
	for _, i := range perm {
		chosen[rows[i]] = true
	}
	var out []int
	for _, r := range rows {
		if chosen[r] {
			out = append(out, r)
		}
	}
	return out
}

func excludeRows(rows, exclude []int) []int {
	drop := make(map[int]bool, len(exclude))
	for _, r := range exclude {
		drop[r] = true
	}
	var out []int
	for _, r := range rows {
		if !drop[r] {
			out = append(out, r)
		}
	}
	return out
}

// HeatmapGrid exports the normalized boarding order per seat for plotting.
func HeatmapGrid(l *model.Layout, order []model.Seat) []model.HeatmapCell {
	cells := make([]model.HeatmapCell, 0, len(order))
	for i, seat := range order {
		cells = append(cells, model.HeatmapCell{
			Row:   seat.Row,
			Seat:  l.ColumnLetter(seat.Column),
			Order: float64(i) / float64(len(order)),
		})
	}
	return cells
}
