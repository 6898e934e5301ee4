package model

import (
	"errors"
	"testing"
)

func TestNewLayoutRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		rows, seatsPerRow int
	}{
		{0, 6},
		{-3, 6},
		{21, 0},
		{21, -1},
		{21, 11},
	}
	for _, c := range cases {
		_, err := NewLayout(c.rows, c.seatsPerRow)
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected ConfigError for %dx%d, got %v", c.rows, c.seatsPerRow, err)
		}
	}
}

func TestNewLayoutSeatSet(t *testing.T) {
	l, err := NewLayout(21, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.TotalSeats(); got != 126 {
		t.Fatalf("expected 126 seats, got %d", got)
	}
	if len(l.Seats) != 126 {
		t.Fatalf("expected 126 seat entries, got %d", len(l.Seats))
	}
	for _, seat := range l.Seats {
		if l.Seats[l.SeatIndex(seat.Row, seat.Column)] != seat {
			t.Fatalf("seat index mismatch at row %d column %d", seat.Row, seat.Column)
		}
		if seat.Occupied || seat.Occupant != -1 {
			t.Fatalf("expected empty seat at row %d column %d", seat.Row, seat.Column)
		}
	}
}

func TestColumnClassSixAbreast(t *testing.T) {
	l, _ := NewLayout(21, 6)
	want := []SeatColumn{Window, Middle, Aisle, Aisle, Middle, Window}
	for col, class := range want {
		if got := l.ColumnClass(col); got != class {
			t.Fatalf("expected column %d class %s, got %s", col, class, got)
		}
	}
}

func TestColumnClassFourAbreast(t *testing.T) {
	l, _ := NewLayout(10, 4)
	want := []SeatColumn{Window, Middle, Middle, Window}
	for col, class := range want {
		if got := l.ColumnClass(col); got != class {
			t.Fatalf("expected column %d class %s, got %s", col, class, got)
		}
	}
}

func TestRowAtClamps(t *testing.T) {
	l, _ := NewLayout(21, 6)
	cases := []struct {
		pos  float64
		want int
	}{
		{-2, 1},
		{0, 1},
		{1.4, 1},
		{1.6, 2},
		{20.9, 21},
		{30, 21},
	}
	for _, c := range cases {
		if got := l.RowAt(c.pos); got != c.want {
			t.Fatalf("expected row %d at position %.1f, got %d", c.want, c.pos, got)
		}
	}
}

func TestCrossedSeats(t *testing.T) {
	l, _ := NewLayout(21, 6)

	// window seat on the left: crosses aisle then middle, nearest first
	got := l.CrossedSeats(5, 0)
	want := []int{l.SeatIndex(5, 2), l.SeatIndex(5, 1)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected crossed %v for left window, got %v", want, got)
	}

	// window seat on the right
	got = l.CrossedSeats(5, 5)
	want = []int{l.SeatIndex(5, 3), l.SeatIndex(5, 4)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected crossed %v for right window, got %v", want, got)
	}

	// aisle seats cross nothing
	if got := l.CrossedSeats(5, 2); len(got) != 0 {
		t.Fatalf("expected no crossed seats for aisle column, got %v", got)
	}
	if got := l.CrossedSeats(5, 3); len(got) != 0 {
		t.Fatalf("expected no crossed seats for aisle column, got %v", got)
	}
}
