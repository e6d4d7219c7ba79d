package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display, "--" when not player-scoped.
func playerName(p int) string {
	if p == 0 {
		return "--"
	}
	return fmt.Sprintf("P%d", p)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d %s %s", e.Turn, playerName(e.Player), e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewCardSelectedEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCardSelected,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s", playerName(player), cardName),
	}
}

func NewRejectedEvent(turn, player int, cardName, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventRejected,
		Card:    cardName,
		Details: reason,
	}
}

func NewTurnEndEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventTurnEnd,
		Card:    cardName,
		Details: fmt.Sprintf("%s ends their turn", playerName(player)),
	}
}

func NewNewTurnEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewSkipTurnEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventSkipTurn,
		Details: fmt.Sprintf("%s has no cards left and skips their turn", playerName(player)),
	}
}

func NewEndGameEvent(turn int, pending int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventEndGame,
		Details: fmt.Sprintf("Both hands are empty; resolving %d pending moves", pending),
	}
}

func NewScoreEvent(turn, player, score int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventScore,
		Details: fmt.Sprintf("%s final score: %d", playerName(player), score),
	}
}

func NewWinEvent(turn, winner int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins!", playerName(winner)),
	}
}

func NewTieEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventTie,
		Details: "The game is a tie",
	}
}

func NewResetEvent() GameEvent {
	return GameEvent{
		Type:    EventReset,
		Details: "New game: deck reshuffled, hands redealt",
	}
}
