package game

import (
	"sort"
	"testing"
)

func TestDeterminePolygon(t *testing.T) {
	b := boardWith([]int{0, 1, 10, 11}, nil)
	members := DeterminePolygon(b, 0, PlayerOne)
	if len(members) != 4 {
		t.Fatalf("expected 4 polygon members, got %d", len(members))
	}
	sort.Ints(members)
	want := []int{0, 1, 10, 11}
	for i, sq := range want {
		if members[i] != sq {
			t.Errorf("member %d = %d, want %d", i, members[i], sq)
		}
	}
}

func TestDeterminePolygonTooSmall(t *testing.T) {
	b := boardWith([]int{0, 1, 10}, nil)
	if DeterminePolygon(b, 0, PlayerOne) != nil {
		t.Error("three connected squares should not form a polygon")
	}
}

func TestDeterminePolygonIgnoresDiagonals(t *testing.T) {
	// Four pieces connected only diagonally are not a polygon.
	b := boardWith([]int{0, 11, 22, 33}, nil)
	if DeterminePolygon(b, 0, PlayerOne) != nil {
		t.Error("diagonal chain should not form a polygon")
	}
}

func TestDetermineLine(t *testing.T) {
	// A diagonal run of three connects eight-way.
	b := boardWith([]int{0, 11, 22}, nil)
	members := DetermineLine(b, 0, PlayerOne)
	if len(members) != 3 {
		t.Fatalf("expected 3 line members, got %d", len(members))
	}
}

func TestDetermineLinePolygonWins(t *testing.T) {
	// A square inside a polygon is never a line member.
	b := boardWith([]int{0, 1, 10, 11}, nil)
	if DetermineLine(b, 0, PlayerOne) != nil {
		t.Error("polygon member should not be classified as a line")
	}
}

func TestDetermineLineDoesNotWrap(t *testing.T) {
	// 9 and 10 touch as flat indices but sit on opposite edges.
	b := boardWith([]int{8, 9, 10}, nil)
	if DetermineLine(b, 8, PlayerOne) != nil {
		t.Error("line should not wrap around the board edge")
	}
}

func TestDetectFeatures(t *testing.T) {
	// One 2x2 polygon, one diagonal line, one lone point at 99.
	b := boardWith([]int{0, 1, 10, 11, 55, 66, 77, 99}, nil)
	features := DetectFeatures(b, PlayerOne)
	if len(features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(features))
	}
	var polygons, lines int
	for _, f := range features {
		switch f.Type {
		case FeaturePolygon:
			polygons++
			if len(f.Squares) != 4 {
				t.Errorf("polygon has %d squares, want 4", len(f.Squares))
			}
		case FeatureLine:
			lines++
			if len(f.Squares) != 3 {
				t.Errorf("line has %d squares, want 3", len(f.Squares))
			}
		}
	}
	if polygons != 1 || lines != 1 {
		t.Errorf("got %d polygons and %d lines, want 1 each", polygons, lines)
	}
}

func TestDetectFeaturesIgnoresOpponent(t *testing.T) {
	b := boardWith(nil, []int{0, 1, 10, 11})
	if got := DetectFeatures(b, PlayerOne); len(got) != 0 {
		t.Errorf("expected no features for player one, got %d", len(got))
	}
}

func TestClassifyBoard(t *testing.T) {
	// P1: polygon at 0,1,10,11 and a lone point at 99.
	// P2: line at 44,55,66.
	b := boardWith([]int{0, 1, 10, 11, 99}, []int{44, 55, 66})
	layers := ClassifyBoard(b)

	if len(layers.Polygons) != 4 {
		t.Errorf("polygons layer has %d squares, want 4", len(layers.Polygons))
	}
	if len(layers.Lines) != 3 {
		t.Errorf("lines layer has %d squares, want 3", len(layers.Lines))
	}
	if len(layers.Points) != 1 || !layers.Points[99] {
		t.Errorf("points layer = %v, want just square 99", layers.Points)
	}
	// The partition is strict: no square appears in two layers.
	for sq := range layers.Polygons {
		if layers.Lines[sq] || layers.Points[sq] {
			t.Errorf("square %d appears in more than one layer", sq)
		}
	}
}
