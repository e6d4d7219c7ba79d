package game

// Feature thresholds. A polygon is an orthogonally connected blob of at
// least four pieces; a line is a diagonally-or-orthogonally connected run
// of at least three pieces that does not qualify as a polygon.
const (
	PolygonMinSize = 4
	LineMinSize    = 3
)

// FeatureType classifies a detected feature.
type FeatureType int

const (
	FeaturePolygon FeatureType = iota
	FeatureLine
)

func (t FeatureType) String() string {
	if t == FeaturePolygon {
		return "polygon"
	}
	return "line"
}

// Feature is one connected group of a single player's pieces.
type Feature struct {
	Type    FeatureType
	Player  Owner
	Squares []int
}

// Neighbor offsets on the flat index. Flood fills gate every step through
// IsValidMove at distance 1, which rejects the wrap-around cases these raw
// offsets would otherwise produce at the board edges.
var (
	orthoOffsets = [4]int{-BoardCols, -1, 1, BoardCols}
	eightOffsets = [8]int{-BoardCols - 1, -BoardCols, -BoardCols + 1, -1, 1, BoardCols - 1, BoardCols, BoardCols + 1}
)

func floodFill(b Board, start int, p Owner, offsets []int) []int {
	if start < 0 || start >= BoardSize || b[start] != p {
		return nil
	}
	visited := make(map[int]bool, 8)
	var members []int
	stack := []int{start}
	for len(stack) > 0 {
		sq := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[sq] {
			continue
		}
		visited[sq] = true
		members = append(members, sq)
		for _, off := range offsets {
			n := sq + off
			if IsValidMove(sq, n, 1) && b[n] == p && !visited[n] {
				stack = append(stack, n)
			}
		}
	}
	return members
}

// DeterminePolygon returns the orthogonally connected group containing
// start if it holds at least four of p's pieces, nil otherwise.
func DeterminePolygon(b Board, start int, p Owner) []int {
	members := floodFill(b, start, p, orthoOffsets[:])
	if len(members) >= PolygonMinSize {
		return members
	}
	return nil
}

// DetermineLine returns the eight-way connected group containing start if
// it holds at least three of p's pieces and start is not part of a polygon.
// Polygon membership wins: a piece inside a polygon is never a line member.
func DetermineLine(b Board, start int, p Owner) []int {
	if DeterminePolygon(b, start, p) != nil {
		return nil
	}
	members := floodFill(b, start, p, eightOffsets[:])
	if len(members) >= LineMinSize {
		return members
	}
	return nil
}

// DetectFeatures scans the board left to right and returns every polygon
// and line belonging to p, each square appearing in at most one feature.
func DetectFeatures(b Board, p Owner) []Feature {
	visited := make(map[int]bool)
	var features []Feature
	for sq := 0; sq < BoardSize; sq++ {
		if b[sq] != p || visited[sq] {
			continue
		}
		if members := DeterminePolygon(b, sq, p); members != nil {
			for _, m := range members {
				visited[m] = true
			}
			features = append(features, Feature{Type: FeaturePolygon, Player: p, Squares: members})
			continue
		}
		if members := DetermineLine(b, sq, p); members != nil {
			for _, m := range members {
				visited[m] = true
			}
			features = append(features, Feature{Type: FeatureLine, Player: p, Squares: members})
		}
	}
	return features
}

// BoardLayers is the three-way partition of all occupied squares, both
// players combined: polygon members, line members, and unclassified points.
type BoardLayers struct {
	Polygons map[int]bool
	Lines    map[int]bool
	Points   map[int]bool
}

// ClassifyBoard partitions every occupied square into exactly one layer.
func ClassifyBoard(b Board) BoardLayers {
	layers := BoardLayers{
		Polygons: make(map[int]bool),
		Lines:    make(map[int]bool),
		Points:   make(map[int]bool),
	}
	for _, p := range []Owner{PlayerOne, PlayerTwo} {
		for _, f := range DetectFeatures(b, p) {
			set := layers.Polygons
			if f.Type == FeatureLine {
				set = layers.Lines
			}
			for _, sq := range f.Squares {
				set[sq] = true
			}
		}
	}
	for sq := 0; sq < BoardSize; sq++ {
		if b[sq] != Empty && !layers.Polygons[sq] && !layers.Lines[sq] {
			layers.Points[sq] = true
		}
	}
	return layers
}
