package game

import "testing"

func TestIsValidMoveRejectsRowWrap(t *testing.T) {
	// Square 9 and square 10 are adjacent as flat indices but sit on
	// opposite edges of the grid.
	if IsValidMove(9, 10, 1) {
		t.Error("move from 9 to 10 should wrap and be rejected")
	}
	if IsValidMove(10, 9, 1) {
		t.Error("move from 10 to 9 should wrap and be rejected")
	}
	if !IsValidMove(9, 19, 1) {
		t.Error("move from 9 straight down to 19 should be valid")
	}
}

func TestIsValidMoveOffBoard(t *testing.T) {
	if IsValidMove(0, -10, 1) {
		t.Error("destination above the board should be invalid")
	}
	if IsValidMove(95, 105, 1) {
		t.Error("destination below the board should be invalid")
	}
}

func TestIsValidMoveDistance(t *testing.T) {
	if !IsValidMove(44, 33, 1) {
		t.Error("diagonal neighbor should be within distance 1")
	}
	if IsValidMove(44, 22, 1) {
		t.Error("two rows away should exceed distance 1")
	}
	if !IsValidMove(44, 22, 2) {
		t.Error("two rows away should be within distance 2")
	}
}

func TestRowColOfNegativeIndices(t *testing.T) {
	// Off-board indices land in the row/column the flat arithmetic
	// implies, which keeps a one-step move past the edge at distance 1.
	cases := []struct {
		idx, row, col int
	}{
		{-10, -1, 0},
		{-1, -1, -1},
		{105, 10, 5},
		{0, 0, 0},
		{99, 9, 9},
	}
	for _, c := range cases {
		if got := rowOf(c.idx); got != c.row {
			t.Errorf("rowOf(%d) = %d, want %d", c.idx, got, c.row)
		}
		if got := colOf(c.idx); got != c.col {
			t.Errorf("colOf(%d) = %d, want %d", c.idx, got, c.col)
		}
	}
}

func TestBoardCount(t *testing.T) {
	b := boardWith([]int{0, 1, 2}, []int{99})
	if got := b.Count(PlayerOne); got != 3 {
		t.Errorf("Count(PlayerOne) = %d, want 3", got)
	}
	if got := b.Count(PlayerTwo); got != 1 {
		t.Errorf("Count(PlayerTwo) = %d, want 1", got)
	}
	if got := b.Count(Empty); got != 96 {
		t.Errorf("Count(Empty) = %d, want 96", got)
	}
}

func TestOpponent(t *testing.T) {
	if PlayerOne.Opponent() != PlayerTwo || PlayerTwo.Opponent() != PlayerOne {
		t.Error("players should be each other's opponents")
	}
	if Empty.Opponent() != Empty {
		t.Error("Empty has no opponent")
	}
}
