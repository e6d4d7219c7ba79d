package game

// Board geometry. The grid is fixed at 10x10; there is no configuration
// surface for other sizes.
const (
	BoardCols = 10
	BoardSize = 100
)

// Owner identifies who holds a cell.
type Owner int

const (
	Empty Owner = iota
	PlayerOne
	PlayerTwo
)

func (o Owner) String() string {
	switch o {
	case PlayerOne:
		return "Player 1"
	case PlayerTwo:
		return "Player 2"
	default:
		return "nobody"
	}
}

// Opponent returns the other player. Calling it on Empty returns Empty.
func (o Owner) Opponent() Owner {
	switch o {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Empty
	}
}

// Board is the shared grid, indexed 0-99 in row-major order. It is a pure
// value type: card effects receive a copy, mutate it, and the engine commits
// the result only on success.
type Board [BoardSize]Owner

// Count returns how many cells the given player holds.
func (b Board) Count(p Owner) int {
	n := 0
	for _, cell := range b {
		if cell == p {
			n++
		}
	}
	return n
}

// rowOf and colOf use floored division and signed remainder so that
// off-board indices (negative, or past 99) land in the row/column the
// flat-offset arithmetic implies. Ground Truth relies on this to accept a
// one-step move off the edge of the map.
func rowOf(idx int) int {
	if idx < 0 {
		return -((-idx + BoardCols - 1) / BoardCols)
	}
	return idx / BoardCols
}

func colOf(idx int) int {
	return idx % BoardCols
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Validator is the adjacency/distance primitive handed to card effects.
type Validator func(from, to, maxDistance int) bool

// IsValidMove reports whether to is on the board and within maxDistance rows
// and columns of from. The grid is non-toroidal: a flat offset that would
// wrap to a different row fails the column check and is rejected.
func IsValidMove(from, to, maxDistance int) bool {
	if to < 0 || to >= BoardSize {
		return false
	}
	if abs(rowOf(from)-rowOf(to)) > maxDistance || abs(colOf(from)-colOf(to)) > maxDistance {
		return false
	}
	return true
}
