package game

// ExecKind is a card's execution protocol: what inputs the engine collects
// before or while the card resolves.
type ExecKind int

const (
	// KindPlacement collects one or more cell clicks, each validated and
	// applied independently by the card's OnPlace hook.
	KindPlacement ExecKind = iota
	// KindImmediate resolves in a single board sweep with no input.
	KindImmediate
	// KindChoiceDirection asks the player for a compass direction.
	KindChoiceDirection
	// KindChoiceLayer asks the player for a map layer to remove.
	KindChoiceLayer
	// KindGroundTruth is the two-click select-then-move protocol.
	KindGroundTruth
	// KindSpatialJoin precomputes valid squares from existing features and
	// collects one click per feature.
	KindSpatialJoin
	// KindHotspot places an anchor and then collects four free moves.
	KindHotspot
	// KindCrunch queues a deferred deck pick for the end of the game.
	KindCrunch
	// KindChoiceDiscard asks the player to replay a card from the discard pile.
	KindChoiceDiscard
	// KindChoiceDeck asks the player to pick from the top of the deck.
	KindChoiceDeck
	// KindChoiceOpponent reveals an opponent card and asks use-or-discard.
	KindChoiceOpponent
)

func (k ExecKind) String() string {
	switch k {
	case KindPlacement:
		return "placement"
	case KindImmediate:
		return "immediate"
	case KindChoiceDirection:
		return "choice-direction"
	case KindChoiceLayer:
		return "choice-layer"
	case KindGroundTruth:
		return "ground-truth"
	case KindSpatialJoin:
		return "spatial-join"
	case KindHotspot:
		return "hotspot"
	case KindCrunch:
		return "crunch"
	case KindChoiceDiscard:
		return "choice-discard"
	case KindChoiceDeck:
		return "choice-deck"
	case KindChoiceOpponent:
		return "choice-opponent"
	default:
		return "unknown"
	}
}

// Direction is a compass direction choice.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Offset is the flat-index step one cell in this direction.
func (d Direction) Offset() int {
	switch d {
	case North:
		return -BoardCols
	case East:
		return 1
	case South:
		return BoardCols
	default:
		return -1
	}
}

// ParseDirection maps a wire string to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "north":
		return North, true
	case "east":
		return East, true
	case "south":
		return South, true
	case "west":
		return West, true
	}
	return North, false
}

// Layer is a map layer choice for Turn Off Layer.
type Layer int

const (
	LayerPoints Layer = iota
	LayerLines
	LayerPolygons
)

func (l Layer) String() string {
	switch l {
	case LayerPoints:
		return "points"
	case LayerLines:
		return "lines"
	case LayerPolygons:
		return "polygons"
	default:
		return "unknown"
	}
}

// ParseLayer maps a wire string to a Layer.
func ParseLayer(s string) (Layer, bool) {
	switch s {
	case "points":
		return LayerPoints, true
	case "lines":
		return LayerLines, true
	case "polygons":
		return LayerPolygons, true
	}
	return LayerPoints, false
}

// TurnPhase is the engine's top-level input state.
type TurnPhase int

const (
	// PhaseAwaitingCard waits for the current player to select a card.
	PhaseAwaitingCard TurnPhase = iota
	// PhaseResolving collects clicks or a pending choice for the active card.
	PhaseResolving
	// PhaseEndGame drains queued end-of-game moves.
	PhaseEndGame
	// PhaseGameOver accepts no further input.
	PhaseGameOver
)

func (p TurnPhase) String() string {
	switch p {
	case PhaseAwaitingCard:
		return "awaiting card"
	case PhaseResolving:
		return "resolving"
	case PhaseEndGame:
		return "end game"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// ChoiceKind identifies what a PendingChoice is asking for.
type ChoiceKind int

const (
	ChoiceDirection ChoiceKind = iota
	ChoiceLayer
	ChoiceDiscardPick
	ChoiceDeckPick
	ChoiceOpponentCard
)

func (k ChoiceKind) String() string {
	switch k {
	case ChoiceDirection:
		return "direction"
	case ChoiceLayer:
		return "layer"
	case ChoiceDiscardPick:
		return "discard pick"
	case ChoiceDeckPick:
		return "deck pick"
	case ChoiceOpponentCard:
		return "opponent card"
	default:
		return "unknown"
	}
}

// PendingChoice is a modal question blocking all other input until the
// named player answers it through ResolveChoice.
type PendingChoice struct {
	Kind    ChoiceKind
	Player  Owner
	CardID  int
	Options []int
	Prompt  string
}

// ChoiceValue is the answer to a PendingChoice. Only the field matching
// the choice kind is read. Discard distinguishes use-or-discard for
// opponent card reveals; Cancelled abandons the choice.
type ChoiceValue struct {
	Direction Direction
	Layer     Layer
	CardID    int
	Discard   bool
	Cancelled bool
}

// DiscardEntry records one discarded card and who played it.
type DiscardEntry struct {
	CardID int   `json:"cardId"`
	Player Owner `json:"player"`
}

// PendingKind tags a deferred end-of-game move.
type PendingKind int

const (
	PendingCrunch PendingKind = iota
	PendingModelBuilder
)

func (k PendingKind) String() string {
	if k == PendingCrunch {
		return "crunch"
	}
	return "modelBuilder"
}

// PendingMove is a move queued during play and executed after both hands
// empty. Crunch entries pick a card from the deck top at execution time;
// model-builder entries carry the card chosen when they were queued.
type PendingMove struct {
	Kind   PendingKind `json:"kind"`
	Player Owner       `json:"player"`
	CardID int         `json:"cardId,omitempty"`
}

// Effect hook signatures. Effects receive a copy of the board and return
// the updated copy; placement and move hooks also report acceptance.
type (
	// PlaceFunc applies one click at sq for p. ok=false rejects the click
	// without consuming a play.
	PlaceFunc func(e *Engine, b Board, sq int, p Owner, valid Validator) (Board, bool)
	// SweepFunc applies a whole-board transformation. prev is the acting
	// player's previous-turn snapshot.
	SweepFunc func(e *Engine, b, prev Board, p Owner) Board
	// DirectionFunc applies a direction choice to the whole board.
	DirectionFunc func(e *Engine, b Board, dir Direction, p Owner) Board
	// LayerFunc removes the chosen layer from the whole board.
	LayerFunc func(e *Engine, b Board, layer Layer) Board
	// MoveFunc applies a from/to move. to may be off the board.
	MoveFunc func(e *Engine, b Board, from, to int, p Owner, valid Validator) (Board, bool)
)

// Card is an immutable card definition. Which hooks are set depends on
// Kind; Plays is how many accepted clicks the card collects.
type Card struct {
	ID          int
	Name        string
	Description string
	Kind        ExecKind
	Pattern     []int
	Plays       int

	OnPlace     PlaceFunc
	OnSweep     SweepFunc
	OnDirection DirectionFunc
	OnLayer     LayerFunc
	OnMove      MoveFunc
}
