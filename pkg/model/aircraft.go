package model

import "fmt"

// SeatColumn classifies a seat by its distance from the aisle.
type SeatColumn int

const (
	Window SeatColumn = iota
	Middle
	Aisle
)

func (c SeatColumn) String() string {
	switch c {
	case Window:
		return "window"
	case Middle:
		return "middle"
	default:
		return "aisle"
	}
}

// ConfigError reports an invalid layout or simulation parameter.
// It is fatal and raised before any simulation starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

type Seat struct {
	Row      int // 1-based, row 1 is at the front door
	Column   int // 0-based position within the row
	Class    SeatColumn
	Occupied bool
	Occupant int // passenger id, -1 when empty
}

// Layout is the static aircraft geometry. Row r sits at aisle position r,
// the boarding door is at position 0.
type Layout struct {
	Rows        int
	SeatsPerRow int
	AisleLength float64 // rows, >= Rows
	Seats       []Seat
}

var columnLetters = []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K"}

// NewLayout builds the ordered seat set for a single-aisle cabin.
func NewLayout(rows, seatsPerRow int) (*Layout, error) {
	if rows <= 0 {
		return nil, &ConfigError{Field: "rows", Reason: "must be positive"}
	}
	if seatsPerRow <= 0 {
		return nil, &ConfigError{Field: "seatsPerRow", Reason: "must be positive"}
	}
	if seatsPerRow > len(columnLetters) {
		return nil, &ConfigError{Field: "seatsPerRow", Reason: fmt.Sprintf("must be at most %d", len(columnLetters))}
	}
	l := &Layout{
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		AisleLength: float64(rows),
		Seats:       make([]Seat, 0, rows*seatsPerRow),
	}
	for r := 1; r <= rows; r++ {
		for c := 0; c < seatsPerRow; c++ {
			l.Seats = append(l.Seats, Seat{
				Row:      r,
				Column:   c,
				Class:    l.ColumnClass(c),
				Occupant: -1,
			})
		}
	}
	return l, nil
}

// ColumnClass derives the seat class from the column position: outermost
// columns are window seats, the ones beside them middle, the rest aisle.
func (l *Layout) ColumnClass(col int) SeatColumn {
	switch {
	case col == 0 || col == l.SeatsPerRow-1:
		return Window
	case col == 1 || col == l.SeatsPerRow-2:
		return Middle
	default:
		return Aisle
	}
}

// ColumnLetter returns the cabin letter for a column position.
func (l *Layout) ColumnLetter(col int) string {
	return columnLetters[col]
}

// SeatIndex maps (row, column) to the seat slice index.
func (l *Layout) SeatIndex(row, col int) int {
	return (row-1)*l.SeatsPerRow + col
}

// RowAt maps a continuous aisle position to the nearest row, clamped to [1, Rows].
func (l *Layout) RowAt(position float64) int {
	r := int(position + 0.5)
	if r < 1 {
		return 1
	}
	if r > l.Rows {
		return l.Rows
	}
	return r
}

func (l *Layout) TotalSeats() int {
	return l.Rows * l.SeatsPerRow
}

// CrossedSeats lists the seat indices a passenger has to pass between the
// aisle and the given seat, nearest first. For a 3-3 cabin these are the
// aisle and middle seats on the target's side of the aisle.
func (l *Layout) CrossedSeats(row, col int) []int {
	half := l.SeatsPerRow / 2
	var crossed []int
	if col < half {
		// left side: aisle is past the highest column index of this side
		for c := half - 1; c > col; c-- {
			crossed = append(crossed, l.SeatIndex(row, c))
		}
	} else {
		for c := half; c < col; c++ {
			crossed = append(crossed, l.SeatIndex(row, c))
		}
	}
	return crossed
}
