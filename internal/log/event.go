package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventCardSelected EventType = iota
	EventPlacement
	EventMove
	EventRemove
	EventConvert
	EventSweep
	EventRejected
	EventChoiceRequested
	EventChoiceResolved
	EventReveal
	EventDraw
	EventDiscard
	EventPendingQueued
	EventTurnEnd
	EventSkipTurn
	EventNewTurn
	EventEndGame
	EventScore
	EventWin
	EventTie
	EventReset
)

func (e EventType) String() string {
	switch e {
	case EventCardSelected:
		return "CardSelected"
	case EventPlacement:
		return "Placement"
	case EventMove:
		return "Move"
	case EventRemove:
		return "Remove"
	case EventConvert:
		return "Convert"
	case EventSweep:
		return "Sweep"
	case EventRejected:
		return "Rejected"
	case EventChoiceRequested:
		return "ChoiceRequested"
	case EventChoiceResolved:
		return "ChoiceResolved"
	case EventReveal:
		return "Reveal"
	case EventDraw:
		return "Draw"
	case EventDiscard:
		return "Discard"
	case EventPendingQueued:
		return "PendingQueued"
	case EventTurnEnd:
		return "TurnEnd"
	case EventSkipTurn:
		return "SkipTurn"
	case EventNewTurn:
		return "NewTurn"
	case EventEndGame:
		return "EndGame"
	case EventScore:
		return "Score"
	case EventWin:
		return "Win"
	case EventTie:
		return "Tie"
	case EventReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Player  int       // acting player (1 or 2, 0 when not player-scoped)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
