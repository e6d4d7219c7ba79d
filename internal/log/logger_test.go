package log

import (
	"strings"
	"testing"
)

func TestMemoryLoggerSequencing(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(GameEvent{Turn: 1, Type: EventCardSelected, Details: "a"})
	l.Log(GameEvent{Turn: 1, Type: EventPlacement, Details: "b"})
	l.Log(GameEvent{Turn: 2, Type: EventPlacement, Details: "c"})

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d has seq %d", i, e.Seq)
		}
	}

	placements := l.EventsOfType(EventPlacement)
	if len(placements) != 2 {
		t.Errorf("got %d placement events, want 2", len(placements))
	}
	if l.LastEvent().Details != "c" {
		t.Errorf("last event = %q", l.LastEvent().Details)
	}
}

func TestLastEventEmpty(t *testing.T) {
	l := NewMemoryLogger()
	if l.LastEvent() != (GameEvent{}) {
		t.Error("empty logger should return a zero event")
	}
}

func TestTextLoggerWrites(t *testing.T) {
	var sb strings.Builder
	l := NewTextLogger(&sb)
	l.Log(GameEvent{Turn: 3, Player: 1, Details: "P1 plays Buffer"})

	out := sb.String()
	if !strings.Contains(out, "T3") || !strings.Contains(out, "P1 plays Buffer") {
		t.Errorf("output = %q", out)
	}
	if len(l.Events()) != 1 {
		t.Error("text logger should also keep events in memory")
	}
}

func TestFormatEvent(t *testing.T) {
	got := FormatEvent(GameEvent{Turn: 7, Player: 2, Details: "hello"})
	if got != "T7   P2 hello" {
		t.Errorf("FormatEvent = %q", got)
	}
	unscoped := FormatEvent(GameEvent{Turn: 1, Details: "tick"})
	if !strings.Contains(unscoped, "--") {
		t.Errorf("unscoped event should show --, got %q", unscoped)
	}
}

func TestFormatAll(t *testing.T) {
	events := []GameEvent{
		{Turn: 1, Player: 1, Details: "one"},
		{Turn: 2, Player: 2, Details: "two"},
	}
	out := FormatAll(events)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected two lines, got %q", out)
	}
}
