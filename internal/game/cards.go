package game

// Card constructors. Each returns a fresh immutable definition; effect
// hooks work on a board copy and report acceptance where the protocol
// allows a click to be rejected.

// stampResult applies a pattern stamp around sq: for every offset whose
// target passes the validator at maxDist and satisfies cond, the target is
// set to val. Returns the updated board and how many cells changed.
func stampResult(b Board, sq int, pattern []int, maxDist int, valid Validator, cond func(Owner) bool, val Owner) (Board, int) {
	n := 0
	for _, off := range pattern {
		t := sq + off
		if valid(sq, t, maxDist) && cond(b[t]) {
			b[t] = val
			n++
		}
	}
	return b, n
}

// OpeningMoves is the sentinel opening card (ID 99): ten single-cell
// placements on empty squares. It is dealt to both players, must be the
// first card either plays, and is never discarded.
func OpeningMoves() *Card {
	return &Card{
		ID:          99,
		Name:        "Player's First Turn",
		Description: "Add ten features anywhere on the board.",
		Kind:        KindPlacement,
		Pattern:     []int{0},
		Plays:       10,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			if !valid(sq, sq, 1) || b[sq] != Empty {
				e.reject("Invalid move, try again")
				return b, false
			}
			b[sq] = p
			e.note("Opening Moves: Placed feature at square %d", sq)
			return b, true
		},
	}
}

func CreateFeatures() *Card {
	return &Card{
		ID:          1,
		Name:        "Create Features",
		Description: "Create a new 2x2 feature on the board. You cannot convert your opponent's features.",
		Kind:        KindPlacement,
		Pattern:     []int{0, 1, 10, 11},
		Plays:       1,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			next, n := stampResult(b, sq, []int{0, 1, 10, 11}, 1, valid, func(o Owner) bool { return o == Empty }, p)
			if n == 0 {
				e.reject("Invalid move, try again")
				return b, false
			}
			e.note("Created %d features at square %d", n, sq)
			return next, true
		},
	}
}

func EraseFeatures() *Card {
	return &Card{
		ID:          2,
		Name:        "Erase Features",
		Description: "Erase features in a 2x3 mask. This can remove both your and your opponent's features.",
		Kind:        KindPlacement,
		Pattern:     []int{0, 1, 10, 11, 20, 21},
		Plays:       1,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			// Always succeeds, even when nothing was erased.
			next, n := stampResult(b, sq, []int{0, 1, 10, 11, 20, 21}, 2, valid, func(o Owner) bool { return o != Empty }, Empty)
			e.note("Erased %d features", n)
			return next, true
		},
	}
}

func Clip() *Card {
	return &Card{
		ID:          3,
		Name:        "Clip",
		Description: "Convert an opponent's 2x2 feature to your own.",
		Kind:        KindPlacement,
		Pattern:     []int{0, 1, 10, 11},
		Plays:       1,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			next, n := stampResult(b, sq, []int{0, 1, 10, 11}, 1, valid, func(o Owner) bool { return o != Empty && o != p }, p)
			if n == 0 {
				e.reject("Invalid move, try again")
				return b, false
			}
			e.note("Clipped %d opponent features", n)
			return next, true
		},
	}
}

func FieldCollection() *Card {
	return &Card{
		ID:          4,
		Name:        "Field Collection",
		Description: "Add four features anywhere on the board.",
		Kind:        KindPlacement,
		Pattern:     []int{0},
		Plays:       4,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			if !valid(sq, sq, 1) || b[sq] != Empty {
				e.reject("Invalid move, try again")
				return b, false
			}
			b[sq] = p
			e.note("Field Collection: Placed feature at square %d", sq)
			return b, true
		},
	}
}

func Interpolate() *Card {
	return &Card{
		ID:          5,
		Name:        "Interpolate",
		Description: "Squares with at least three of your features neighboring are filled with your pieces. This can convert opponent's features.",
		Kind:        KindImmediate,
		OnSweep: func(e *Engine, b, prev Board, p Owner) Board {
			// Neighbor counts come from a pre-mutation snapshot so fills
			// cannot cascade within the sweep.
			orig := b
			filled := 0
			for sq := 0; sq < BoardSize; sq++ {
				n := 0
				for _, off := range eightOffsets {
					t := sq + off
					if IsValidMove(sq, t, 1) && orig[t] == p {
						n++
					}
				}
				if n >= 3 {
					b[sq] = p
					filled++
				}
			}
			e.note("Interpolate: Filled %d squares", filled)
			return b
		},
	}
}

func Dissolve() *Card {
	return &Card{
		ID:          6,
		Name:        "Dissolve",
		Description: "Convert a polygon of your opponent's features touching a polygon feature of your own to your features.",
		Kind:        KindPlacement,
		Pattern:     []int{0},
		Plays:       1,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			oppPoly := DeterminePolygon(b, sq, p.Opponent())
			if oppPoly == nil {
				e.reject("Must click on an opponent's polygon feature")
				return b, false
			}
			touching := false
		scan:
			for _, m := range oppPoly {
				for _, off := range orthoOffsets {
					n := m + off
					if !valid(m, n, 1) || b[n] != p {
						continue
					}
					if DeterminePolygon(b, n, p) != nil || DetermineLine(b, n, p) != nil {
						touching = true
						break scan
					}
				}
			}
			if !touching {
				e.reject("Opponent's polygon must be touching one of your polygon or line features")
				return b, false
			}
			for _, m := range oppPoly {
				b[m] = p
			}
			e.note("Dissolved opponent polygon of %d squares", len(oppPoly))
			return b, true
		},
	}
}

func GroundTruth() *Card {
	return &Card{
		ID:          7,
		Name:        "Ground Truth",
		Description: "Make up to 6 one-space moves of any pieces. Pieces can be moved off the side of the map to be removed.",
		Kind:        KindGroundTruth,
		Plays:       6,
		OnMove: func(e *Engine, b Board, from, to int, p Owner, valid Validator) (Board, bool) {
			if b[from] == Empty {
				e.reject("No piece at selected square")
				return b, false
			}
			rowDiff := abs(rowOf(from) - rowOf(to))
			colDiff := abs(colOf(from) - colOf(to))
			if rowDiff > 1 || colDiff > 1 || (rowDiff == 0 && colDiff == 0) {
				e.reject("Can only move one space at a time")
				return b, false
			}
			if to < 0 || to >= BoardSize {
				b[from] = Empty
				e.note("Piece moved off edge and removed")
				return b, true
			}
			if b[to] != Empty {
				e.reject("Cannot move to occupied square")
				return b, false
			}
			b[to] = b[from]
			b[from] = Empty
			e.note("Moved piece from square %d to %d", from, to)
			return b, true
		},
	}
}

func Buffer() *Card {
	return &Card{
		ID:          8,
		Name:        "Buffer",
		Description: "Choose one of your polygon features. All empty squares orthogonally adjacent to that polygon are filled with your features.",
		Kind:        KindPlacement,
		Pattern:     []int{0},
		Plays:       1,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			members := DeterminePolygon(b, sq, p)
			if members == nil {
				e.reject("No valid polygon found for buffering")
				return b, false
			}
			buffered := 0
			for _, m := range members {
				for _, off := range orthoOffsets {
					n := m + off
					if valid(m, n, 1) && b[n] == Empty {
						b[n] = p
						buffered++
					}
				}
			}
			e.note("Buffer: Added %d features around polygon", buffered)
			return b, true
		},
	}
}

func DiscardEdits() *Card {
	return &Card{
		ID:          9,
		Name:        "Discard Edits",
		Description: "Return the board to its state previous to your opponent's last turn.",
		Kind:        KindImmediate,
		OnSweep: func(e *Engine, b, prev Board, p Owner) Board {
			e.note("Discard Edits: Reverted the board")
			return prev
		},
	}
}

func FillSinks() *Card {
	return &Card{
		ID:          10,
		Name:        "Fill Sinks",
		Description: "Any square with four pieces around it is filled with your pieces. This cannot convert your opponent's features. The edge of the map counts as a surrounding piece.",
		Kind:        KindImmediate,
		OnSweep: func(e *Engine, b, prev Board, p Owner) Board {
			// Progressive: earlier fills in the ascending pass count as
			// surrounding pieces for later squares.
			filled := 0
			for sq := 0; sq < BoardSize; sq++ {
				if b[sq] != Empty {
					continue
				}
				surrounding := 0
				for _, off := range orthoOffsets {
					n := sq + off
					if !IsValidMove(sq, n, 1) || b[n] != Empty {
						surrounding++
					}
				}
				if surrounding == 4 {
					b[sq] = p
					filled++
				}
			}
			e.note("Fill Sinks: Filled %d squares", filled)
			return b
		},
	}
}

func Project() *Card {
	return &Card{
		ID:          11,
		Name:        "Project",
		Description: "Choose a direction to reproject the map into. All pieces move one square in that direction. Pieces that move off the side of the map are removed.",
		Kind:        KindChoiceDirection,
		OnDirection: func(e *Engine, b Board, dir Direction, p Owner) Board {
			// The leading edge moves first so a whole row can slide in one
			// pass; for south and east that means iterating high to low.
			start, end, step := 0, BoardSize, 1
			if dir == South || dir == East {
				start, end, step = BoardSize-1, -1, -1
			}
			for sq := start; sq != end; sq += step {
				piece := b[sq]
				if piece == Empty {
					continue
				}
				t := sq + dir.Offset()
				if IsValidMove(sq, t, 1) && b[t] == Empty {
					b[t] = piece
					b[sq] = Empty
				} else if !IsValidMove(sq, t, 1) {
					b[sq] = Empty
				}
			}
			e.note("Project: Moved all pieces %s", dir)
			return b
		},
	}
}

func SpatialJoin() *Card {
	return &Card{
		ID:          12,
		Name:        "Spatial Join",
		Description: "Add a piece to all of your line and polygon features.",
		Kind:        KindSpatialJoin,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			if !e.turn.validSquares[sq] {
				e.reject("Must place piece adjacent to a highlighted feature")
				return b, false
			}
			if b[sq] != Empty {
				e.reject("Square already occupied")
				return b, false
			}
			b[sq] = p
			delete(e.turn.validSquares, sq)
			e.note("Spatial Join: Placed piece at square %d", sq)
			return b, true
		},
	}
}

func TurnOffLayer() *Card {
	return &Card{
		ID:          13,
		Name:        "Turn Off Layer",
		Description: "Remove all features of a selected type: line, polygon, or point. This affects both your and your opponent's features.",
		Kind:        KindChoiceLayer,
		OnLayer: func(e *Engine, b Board, layer Layer) Board {
			layers := ClassifyBoard(b)
			var set map[int]bool
			switch layer {
			case LayerPolygons:
				set = layers.Polygons
			case LayerLines:
				set = layers.Lines
			default:
				set = layers.Points
			}
			for sq := range set {
				b[sq] = Empty
			}
			e.note("Turn Off Layer: Removed %d %s", len(set), layer)
			return b
		},
	}
}

func CrunchTime() *Card {
	return &Card{
		ID:          14,
		Name:        "Crunch Time",
		Description: "Discard this card and skip a turn. At the end of the game, choose a tool from the top 3 of the remaining deck and play immediately.",
		Kind:        KindCrunch,
	}
}

func HotspotAnalysis() *Card {
	return &Card{
		ID:          15,
		Name:        "Hotspot Analysis",
		Description: "Add one piece to the board. Move four of your pieces any number of squares to create a continuous polygon feature with this new piece.",
		Kind:        KindHotspot,
		Plays:       4,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			if sq < 0 || sq >= BoardSize || b[sq] != Empty {
				e.reject("Must place on empty square")
				return b, false
			}
			b[sq] = p
			e.turn.anchor = sq
			e.note("Hotspot: Placed anchor piece at square %d", sq)
			return b, true
		},
		OnMove: func(e *Engine, b Board, from, to int, p Owner, valid Validator) (Board, bool) {
			if b[from] != p {
				e.reject("Must select one of your pieces")
				return b, false
			}
			if to < 0 || to >= BoardSize || b[to] != Empty {
				e.reject("Destination must be empty")
				return b, false
			}
			b[to] = b[from]
			b[from] = Empty
			e.note("Hotspot: Moved piece from square %d to %d", from, to)
			return b, true
		},
	}
}

func NearestNeighbor() *Card {
	return &Card{
		ID:          16,
		Name:        "Nearest Neighbor",
		Description: "Choose an orthogonal direction. All empty spaces adjacent to one of your features in that direction are filled with your features.",
		Kind:        KindChoiceDirection,
		OnDirection: func(e *Engine, b Board, dir Direction, p Owner) Board {
			// Snapshot-additive: new pieces never seed further fills.
			orig := b
			filled := 0
			for sq := 0; sq < BoardSize; sq++ {
				if orig[sq] != p {
					continue
				}
				t := sq + dir.Offset()
				if IsValidMove(sq, t, 1) && orig[t] == Empty {
					b[t] = p
					filled++
				}
			}
			e.note("Nearest Neighbor: Filled %d squares to the %s", filled, dir)
			return b
		},
	}
}

func Tesselate() *Card {
	return &Card{
		ID:          17,
		Name:        "Tesselate",
		Description: "Create a 3x3 alternating grid of your features centered on the selected square. This cannot convert your opponent's features.",
		Kind:        KindPlacement,
		Pattern:     []int{0, 2, 11, 13, 20, 22, 31, 33},
		Plays:       1,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			next, n := stampResult(b, sq, []int{0, 2, 11, 13, 20, 22, 31, 33}, 3, valid, func(o Owner) bool { return o == Empty }, p)
			e.note("Tesselate: Placed %d features", n)
			return next, true
		},
	}
}

func CtrlZ() *Card {
	return &Card{
		ID:          18,
		Name:        "Ctrl+Z",
		Description: "Choose a tool from the discard pile and play it immediately.",
		Kind:        KindChoiceDiscard,
	}
}

func Collaboration() *Card {
	return &Card{
		ID:          19,
		Name:        "Collaboration",
		Description: "Choose one of your opponent's cards to reveal. Choose whether to use it for yourself or force a discard. If the opposing player is out of cards, use the top card from the remaining deck.",
		Kind:        KindChoiceOpponent,
	}
}

func ModelBuilder() *Card {
	return &Card{
		ID:          20,
		Name:        "Model Builder",
		Description: "Choose a tool from the top 5 cards in the remaining deck. This tool will be played at the end of the game.",
		Kind:        KindChoiceDeck,
	}
}

func DataValidation() *Card {
	return &Card{
		ID:          21,
		Name:        "Data Validation",
		Description: "Choose three pieces from anywhere on the board to flip to your features. Chosen spaces can be blank or occupied by your opponent's features.",
		Kind:        KindPlacement,
		Pattern:     []int{0},
		Plays:       3,
		OnPlace: func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool) {
			if !valid(sq, sq, 1) || b[sq] == p {
				e.reject("Invalid move, try again")
				return b, false
			}
			b[sq] = p
			e.note("Data Validation: Flipped square %d to %s", sq, p)
			return b, true
		},
	}
}
