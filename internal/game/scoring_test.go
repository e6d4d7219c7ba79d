package game

import "testing"

func TestCalculateGameScore(t *testing.T) {
	// P1: a 2x2 polygon and a lone point. P2: a diagonal line of three.
	b := boardWith([]int{0, 1, 10, 11, 99}, []int{44, 55, 66})
	scores := CalculateGameScore(b)

	// 5 cells + 2*4 polygon + 3 largest = 16.
	if scores.PlayerOne.FinalScore != 16 {
		t.Errorf("player one score = %d, want 16", scores.PlayerOne.FinalScore)
	}
	// 3 cells + 2 line = 5.
	if scores.PlayerTwo.FinalScore != 5 {
		t.Errorf("player two score = %d, want 5", scores.PlayerTwo.FinalScore)
	}
	if scores.TotalPolygons != 1 || scores.TotalLines != 1 || scores.TotalFeatures != 2 {
		t.Errorf("feature totals = %+v", scores)
	}
	if scores.LargestPolygonOwner != PlayerOne || scores.LargestPolygonSize != 4 {
		t.Errorf("largest polygon = %d squares for %s", scores.LargestPolygonSize, scores.LargestPolygonOwner)
	}
	if scores.Winner() != PlayerOne {
		t.Errorf("winner = %s, want player one", scores.Winner())
	}
}

func TestLargestPolygonBonusNotStolenByTie(t *testing.T) {
	// Both players hold a polygon of four. Player one is scanned first and
	// an equal-sized polygon must not take the bonus from them.
	b := boardWith([]int{0, 1, 10, 11}, []int{88, 89, 98, 99})
	scores := CalculateGameScore(b)

	if scores.LargestPolygonOwner != PlayerOne {
		t.Errorf("bonus owner = %s, want player one", scores.LargestPolygonOwner)
	}
	if scores.PlayerOne.LargestBonus != 3 || scores.PlayerTwo.LargestBonus != 0 {
		t.Errorf("bonuses = %d/%d, want 3/0", scores.PlayerOne.LargestBonus, scores.PlayerTwo.LargestBonus)
	}
	// 12 + 3 vs 12: the bonus decides it.
	if scores.Winner() != PlayerOne {
		t.Errorf("winner = %s, want player one", scores.Winner())
	}
}

func TestLargestPolygonBonusMovesOnStrictlyLarger(t *testing.T) {
	b := boardWith([]int{0, 1, 10, 11}, []int{85, 86, 87, 95, 96})
	scores := CalculateGameScore(b)

	if scores.LargestPolygonOwner != PlayerTwo || scores.LargestPolygonSize != 5 {
		t.Errorf("largest = %d for %s, want 5 for player two", scores.LargestPolygonSize, scores.LargestPolygonOwner)
	}
}

func TestScoreEmptyBoard(t *testing.T) {
	scores := CalculateGameScore(Board{})
	if scores.PlayerOne.FinalScore != 0 || scores.PlayerTwo.FinalScore != 0 {
		t.Error("empty board scores zero")
	}
	if scores.Winner() != Empty {
		t.Error("empty board is a tie")
	}
	if scores.LargestPolygonOwner != Empty {
		t.Error("no polygon, no bonus owner")
	}
}
