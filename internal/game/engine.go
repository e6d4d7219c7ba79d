package game

import (
	"errors"
	"fmt"

	"cartograph/internal/log"
)

// Protocol errors. These signal misuse of the engine API (wrong player,
// wrong phase); in-game rule violations are not errors, they are rejected
// inputs surfaced as log events.
var (
	ErrGameOver        = errors.New("the game is over")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrWrongPhase      = errors.New("input not valid in this phase")
	ErrChoicePending   = errors.New("a choice is pending")
	ErrNoChoicePending = errors.New("no choice is pending")
	ErrUnknownCard     = errors.New("unknown card")
	ErrCardNotInHand   = errors.New("card not in hand")
	ErrOpeningFirst    = errors.New("opening moves must be played first")
)

// turnContext holds transient per-resolution annotations: the selected
// piece for two-click protocols, the hotspot anchor, and the precomputed
// spatial-join targets. It is discarded when the resolution ends.
type turnContext struct {
	firstClick    int
	anchor        int
	hotspotMoving bool
	validSquares  map[int]bool
}

func newTurnContext() turnContext {
	return turnContext{firstClick: -1, anchor: -1}
}

// Engine drives one session through the turn state machine. All entry
// points are synchronous: when a card needs a modal answer the engine
// parks in a PendingChoice and resumes when ResolveChoice is called.
type Engine struct {
	session *Session
	logger  log.EventLogger

	phase TurnPhase
	// actor is whose input drives the current resolution. It tracks the
	// current player during normal play and is overridden per pending
	// move while the end-game queue drains.
	actor Owner
	// turnCard is the card taken from the acting player's hand this turn;
	// active is the card currently resolving. They differ while Ctrl+Z or
	// Collaboration resolves another card.
	turnCard *Card
	active   *Card
	plays    int
	pending  *PendingChoice
	turn     turnContext

	endgameQueue []PendingMove
	turnCount    int
	scores       *Scores
	winner       Owner
}

// NewEngine wraps a session. A session with GameOver set yields an engine
// already in PhaseGameOver.
func NewEngine(s *Session, logger log.EventLogger) *Engine {
	e := &Engine{
		session:   s,
		logger:    logger,
		actor:     s.Current,
		turn:      newTurnContext(),
		turnCount: 1,
	}
	if s.GameOver {
		e.phase = PhaseGameOver
	}
	return e
}

// Accessors for transports and tests.

func (e *Engine) Session() *Session   { return e.session }
func (e *Engine) Phase() TurnPhase    { return e.phase }
func (e *Engine) Actor() Owner        { return e.actor }
func (e *Engine) Turn() int           { return e.turnCount }
func (e *Engine) PlaysRemaining() int { return e.plays }
func (e *Engine) Winner() Owner       { return e.winner }
func (e *Engine) Scores() *Scores     { return e.scores }

// ActiveCard returns the card currently resolving, or nil.
func (e *Engine) ActiveCard() *Card { return e.active }

// PendingChoice returns the modal question blocking input, or nil.
func (e *Engine) PendingChoice() *PendingChoice { return e.pending }

// ValidSquares returns the spatial-join targets still available.
func (e *Engine) ValidSquares() []int {
	out := make([]int, 0, len(e.turn.validSquares))
	for sq := range e.turn.validSquares {
		out = append(out, sq)
	}
	return out
}

// HotspotAnchor returns the anchor square, or -1 when none is placed.
func (e *Engine) HotspotAnchor() int { return e.turn.anchor }

// --- logging ---

func (e *Engine) emit(ev log.GameEvent) {
	if ev.Turn == 0 {
		ev.Turn = e.turnCount
	}
	e.logger.Log(ev)
	e.session.AppendLog(ev.Details)
}

func (e *Engine) actionEventType() log.EventType {
	if e.active == nil {
		return log.EventSweep
	}
	switch e.active.Kind {
	case KindPlacement, KindSpatialJoin:
		return log.EventPlacement
	case KindGroundTruth, KindHotspot:
		return log.EventMove
	default:
		return log.EventSweep
	}
}

// note records a successful action in the activity feed. Card effects call
// it for their per-play detail lines.
func (e *Engine) note(format string, args ...any) {
	e.emit(log.GameEvent{
		Player:  int(e.actor),
		Type:    e.actionEventType(),
		Details: fmt.Sprintf(format, args...),
	})
}

// reject records an invalid input. The phase does not change and the
// player may try again.
func (e *Engine) reject(reason string) {
	name := ""
	if e.active != nil {
		name = e.active.Name
	}
	e.emit(log.NewRejectedEvent(e.turnCount, int(e.actor), name, reason))
}

func (e *Engine) askChoice(pc PendingChoice) {
	e.pending = &pc
	e.emit(log.GameEvent{
		Player:  int(pc.Player),
		Type:    log.EventChoiceRequested,
		Card:    CardName(pc.CardID),
		Details: pc.Prompt,
	})
}

// --- card selection ---

// SelectCard takes a card from the current player's hand and begins
// resolving it. Until a player has finished their opening turn the
// sentinel opening card is the only legal selection.
func (e *Engine) SelectCard(p Owner, cardID int) error {
	if e.phase == PhaseGameOver {
		return ErrGameOver
	}
	if e.phase != PhaseAwaitingCard {
		return ErrWrongPhase
	}
	if p != e.session.Current {
		return ErrNotYourTurn
	}
	if !e.session.OpeningDone[handIndex(p)] && cardID != OpeningCardID {
		return ErrOpeningFirst
	}
	card := CardByID(cardID)
	if card == nil {
		return ErrUnknownCard
	}
	if !e.session.HandContains(p, cardID) {
		return ErrCardNotInHand
	}
	e.turnCard = card
	e.emit(log.NewCardSelectedEvent(e.turnCount, int(p), card.Name))
	e.beginResolve(card)
	return nil
}

// beginResolve starts resolution of a card for the current actor. It is
// shared by card selection, Ctrl+Z, Collaboration and the end-game drain.
func (e *Engine) beginResolve(card *Card) {
	s := e.session
	switch card.Kind {
	case KindPlacement:
		e.active = card
		e.plays = card.Plays
		if e.plays == 0 {
			e.plays = 1
		}
		e.enterResolving()

	case KindGroundTruth:
		e.active = card
		e.plays = card.Plays
		e.turn.firstClick = -1
		e.enterResolving()

	case KindHotspot:
		e.active = card
		e.plays = card.Plays
		e.turn = newTurnContext()
		e.enterResolving()

	case KindSpatialJoin:
		e.active = card
		e.initSpatialJoin()

	case KindImmediate:
		e.active = card
		s.Board = card.OnSweep(e, s.Board, s.Previous[handIndex(e.actor)], e.actor)
		e.finishResolution()

	case KindChoiceDirection:
		e.active = card
		e.enterResolving()
		e.askChoice(PendingChoice{
			Kind:   ChoiceDirection,
			Player: e.actor,
			CardID: card.ID,
			Prompt: "Choose a direction",
		})

	case KindChoiceLayer:
		e.active = card
		e.enterResolving()
		e.askChoice(PendingChoice{
			Kind:   ChoiceLayer,
			Player: e.actor,
			CardID: card.ID,
			Prompt: "Choose a layer to remove",
		})

	case KindCrunch:
		s.Pending = append(s.Pending, PendingMove{Kind: PendingCrunch, Player: e.actor})
		e.emit(log.GameEvent{
			Player:  int(e.actor),
			Type:    log.EventPendingQueued,
			Card:    card.Name,
			Details: fmt.Sprintf("Crunch Time: %s will choose a card at end of game", e.actor),
		})
		e.finishResolution()

	case KindChoiceDiscard:
		if len(s.Discard) == 0 {
			e.note("No cards in discard pile")
			e.finishResolution()
			return
		}
		e.active = card
		e.enterResolving()
		options := make([]int, 0, len(s.Discard))
		for _, entry := range s.Discard {
			options = append(options, entry.CardID)
		}
		e.askChoice(PendingChoice{
			Kind:    ChoiceDiscardPick,
			Player:  e.actor,
			CardID:  card.ID,
			Options: options,
			Prompt:  "Choose a card from the discard pile",
		})

	case KindChoiceDeck:
		if len(s.Deck) == 0 {
			e.note("No cards in remaining deck")
			e.finishResolution()
			return
		}
		e.active = card
		e.enterResolving()
		n := len(s.Deck)
		if n > 5 {
			n = 5
		}
		e.askChoice(PendingChoice{
			Kind:    ChoiceDeckPick,
			Player:  e.actor,
			CardID:  card.ID,
			Options: append([]int(nil), s.Deck[:n]...),
			Prompt:  "Choose a card from the top of the deck",
		})

	case KindChoiceOpponent:
		opp := e.actor.Opponent()
		oppHand := s.Hand(opp)
		if len(oppHand) == 0 {
			e.note("Opponent has no cards, using top card from remaining deck")
			if top, ok := s.DrawCard(); ok {
				s.Hands[handIndex(opp)] = append(s.Hands[handIndex(opp)], top)
				e.emit(log.GameEvent{
					Player:  int(opp),
					Type:    log.EventDraw,
					Details: fmt.Sprintf("%s draws a card from the deck", opp),
				})
			}
			e.finishResolution()
			return
		}
		e.active = card
		e.enterResolving()
		e.askChoice(PendingChoice{
			Kind:    ChoiceOpponentCard,
			Player:  e.actor,
			CardID:  card.ID,
			Options: append([]int(nil), oppHand...),
			Prompt:  "Choose an opponent card to reveal",
		})
	}
}

// enterResolving keeps the end-game phase sticky while queued moves run.
func (e *Engine) enterResolving() {
	if e.phase != PhaseEndGame {
		e.phase = PhaseResolving
	}
}

func (e *Engine) initSpatialJoin() {
	s := e.session
	features := DetectFeatures(s.Board, e.actor)
	if len(features) == 0 {
		e.note("No line or polygon features found")
		e.finishResolution()
		return
	}
	valid := make(map[int]bool)
	for _, f := range features {
		offsets := orthoOffsets[:]
		if f.Type == FeatureLine {
			offsets = eightOffsets[:]
		}
		for _, sq := range f.Squares {
			for _, off := range offsets {
				n := sq + off
				if IsValidMove(sq, n, 1) && s.Board[n] == Empty {
					valid[n] = true
				}
			}
		}
	}
	e.turn.validSquares = valid
	e.plays = len(features)
	e.enterResolving()
	e.note("Spatial Join: %d feature(s) found", len(features))
}

// --- cell clicks ---

// ClickCell feeds one board click to the active card.
func (e *Engine) ClickCell(p Owner, sq int) error {
	if e.phase == PhaseGameOver {
		return ErrGameOver
	}
	if e.pending != nil {
		return ErrChoicePending
	}
	if e.phase != PhaseResolving && e.phase != PhaseEndGame {
		return ErrWrongPhase
	}
	if e.active == nil {
		return ErrWrongPhase
	}
	if p != e.actor {
		return ErrNotYourTurn
	}
	s := e.session

	switch e.active.Kind {
	case KindGroundTruth:
		if e.turn.firstClick < 0 {
			if sq >= 0 && sq < BoardSize && s.Board[sq] != Empty {
				e.turn.firstClick = sq
				e.note("Selected piece at square %d to move", sq)
			} else {
				e.reject("No piece at selected square")
			}
			return nil
		}
		from := e.turn.firstClick
		e.turn.firstClick = -1
		e.applyMove(from, sq)

	case KindHotspot:
		if !e.turn.hotspotMoving {
			if b, ok := e.active.OnPlace(e, s.Board, sq, e.actor, IsValidMove); ok {
				s.Board = b
				e.turn.hotspotMoving = true
			}
			return nil
		}
		if e.turn.firstClick < 0 {
			if sq >= 0 && sq < BoardSize && s.Board[sq] == e.actor {
				e.turn.firstClick = sq
				e.note("Selected piece at square %d to move", sq)
			} else {
				e.reject("Must select one of your pieces")
			}
			return nil
		}
		from := e.turn.firstClick
		e.turn.firstClick = -1
		e.applyMove(from, sq)

	default:
		if b, ok := e.active.OnPlace(e, s.Board, sq, e.actor, IsValidMove); ok {
			s.Board = b
			e.plays--
			if e.plays == 0 {
				e.finishResolution()
			}
		}
	}
	return nil
}

func (e *Engine) applyMove(from, to int) {
	s := e.session
	b, ok := e.active.OnMove(e, s.Board, from, to, e.actor, IsValidMove)
	if !ok {
		return
	}
	s.Board = b
	e.plays--
	if e.plays != 0 {
		return
	}
	if e.active.Kind == KindHotspot && !e.validateHotspot() {
		// Moved pieces stay where they are; the player places a new
		// anchor and gets a fresh set of moves.
		e.note("Hotspot validation failed - turn cancelled")
		e.turn.anchor = -1
		e.turn.hotspotMoving = false
		e.plays = e.active.Plays
		return
	}
	e.finishResolution()
}

func (e *Engine) validateHotspot() bool {
	if e.turn.anchor < 0 {
		return false
	}
	if DeterminePolygon(e.session.Board, e.turn.anchor, e.actor) != nil {
		e.note("Valid polygon formed!")
		return true
	}
	e.note("Does not form a valid polygon")
	return false
}

// EndTurnEarly abandons the active card's remaining plays and ends the
// turn (or, during the end game, moves on to the next queued move).
func (e *Engine) EndTurnEarly(p Owner) error {
	if e.phase == PhaseGameOver {
		return ErrGameOver
	}
	if e.pending != nil {
		return ErrChoicePending
	}
	if e.phase != PhaseResolving && e.phase != PhaseEndGame {
		return ErrWrongPhase
	}
	if e.active == nil {
		return ErrWrongPhase
	}
	if p != e.actor {
		return ErrNotYourTurn
	}
	e.note("%s ended the card early", e.actor)
	e.finishResolution()
	return nil
}

// --- choices ---

// ResolveChoice answers the pending modal question.
func (e *Engine) ResolveChoice(p Owner, v ChoiceValue) error {
	if e.phase == PhaseGameOver {
		return ErrGameOver
	}
	if e.pending == nil {
		return ErrNoChoicePending
	}
	if p != e.pending.Player {
		return ErrNotYourTurn
	}
	pc := *e.pending
	e.pending = nil
	s := e.session

	if v.Cancelled {
		switch pc.Kind {
		case ChoiceDirection, ChoiceLayer:
			// These choices cannot be abandoned.
			e.pending = &pc
			e.reject("A choice must be made")
			return nil
		case ChoiceDiscardPick:
			if e.phase == PhaseEndGame {
				e.resetResolution()
				e.advanceEndGame()
				return nil
			}
			// Back out of Ctrl+Z entirely so another card can be picked.
			e.note("Choice cancelled")
			e.resetResolution()
			e.turnCard = nil
			e.phase = PhaseAwaitingCard
			return nil
		default:
			e.note("Choice cancelled")
			e.finishResolution()
			return nil
		}
	}

	switch pc.Kind {
	case ChoiceDirection:
		e.emit(log.GameEvent{Player: int(e.actor), Type: log.EventChoiceResolved, Details: fmt.Sprintf("Chosen direction: %s", v.Direction)})
		s.Board = e.active.OnDirection(e, s.Board, v.Direction, e.actor)
		e.finishResolution()

	case ChoiceLayer:
		e.emit(log.GameEvent{Player: int(e.actor), Type: log.EventChoiceResolved, Details: fmt.Sprintf("Chosen layer: %s", v.Layer)})
		s.Board = e.active.OnLayer(e, s.Board, v.Layer)
		e.finishResolution()

	case ChoiceDiscardPick:
		if !containsInt(pc.Options, v.CardID) {
			e.pending = &pc
			e.reject("Card not available")
			return nil
		}
		card := CardByID(v.CardID)
		e.emit(log.GameEvent{Player: int(e.actor), Type: log.EventChoiceResolved, Card: card.Name, Details: fmt.Sprintf("Replaying %s from the discard pile", card.Name)})
		e.beginResolve(card)

	case ChoiceDeckPick:
		if !containsInt(pc.Options, v.CardID) {
			e.pending = &pc
			e.reject("Card not available")
			return nil
		}
		s.RemoveFromDeck(v.CardID)
		card := CardByID(v.CardID)
		if e.phase == PhaseEndGame {
			e.emit(log.GameEvent{Player: int(e.actor), Type: log.EventChoiceResolved, Card: card.Name, Details: fmt.Sprintf("%s plays %s from the deck", e.actor, card.Name)})
			if !endgamePlayable(card) {
				e.note("%s cannot be played at the end of the game", card.Name)
				e.resetResolution()
				e.advanceEndGame()
				return nil
			}
			e.beginResolve(card)
			return nil
		}
		s.Pending = append(s.Pending, PendingMove{Kind: PendingModelBuilder, Player: e.actor, CardID: v.CardID})
		e.emit(log.GameEvent{
			Player:  int(e.actor),
			Type:    log.EventPendingQueued,
			Card:    card.Name,
			Details: fmt.Sprintf("Model Builder: %s queued for %s at end of game", card.Name, e.actor),
		})
		e.finishResolution()

	case ChoiceOpponentCard:
		if !containsInt(pc.Options, v.CardID) {
			e.pending = &pc
			e.reject("Card not available")
			return nil
		}
		opp := e.actor.Opponent()
		s.RemoveFromHand(opp, v.CardID)
		if v.Discard {
			s.Discard = append(s.Discard, DiscardEntry{CardID: v.CardID, Player: opp})
			e.emit(log.GameEvent{Player: int(e.actor), Type: log.EventDiscard, Card: CardName(v.CardID), Details: fmt.Sprintf("Forcing opponent to discard %s", CardName(v.CardID))})
			e.finishResolution()
			return nil
		}
		card := CardByID(v.CardID)
		e.emit(log.GameEvent{Player: int(e.actor), Type: log.EventReveal, Card: card.Name, Details: fmt.Sprintf("Using opponent's card: %s", card.Name)})
		e.beginResolve(card)
	}
	return nil
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// --- turn completion ---

// resetResolution clears the per-resolution state without ending the turn.
func (e *Engine) resetResolution() {
	e.active = nil
	e.plays = 0
	e.turn = newTurnContext()
}

// finishResolution is called when the active card has fully resolved.
// During normal play it ends the turn; during the end game it advances the
// pending-move queue.
func (e *Engine) finishResolution() {
	e.resetResolution()
	if e.phase == PhaseEndGame {
		e.advanceEndGame()
		return
	}
	e.completeTurn(e.turnCard)
}

// completeTurn performs end-of-turn bookkeeping and hands control to the
// other player, skipping over empty-handed players until someone can act
// or the game moves to the end-game sequence.
func (e *Engine) completeTurn(card *Card) {
	s := e.session
	for {
		s.RemoveFromHand(s.Current, card.ID)
		s.LastPlayed = card.ID
		s.LastPlayedBy = s.Current
		if card.ID != OpeningCardID && card.ID != SkipCardID {
			s.Discard = append(s.Discard, DiscardEntry{CardID: card.ID, Player: s.Current})
		}
		if card.ID == OpeningCardID {
			s.OpeningDone[handIndex(s.Current)] = true
			e.emit(log.GameEvent{Player: int(s.Current), Type: log.EventTurnEnd, Card: card.Name, Details: fmt.Sprintf("%s has completed their first turn!", s.Current)})
		}
		e.emit(log.NewTurnEndEvent(e.turnCount, int(s.Current), card.Name))
		s.Previous[handIndex(s.Current)] = s.Board

		s.Current = s.Current.Opponent()
		e.actor = s.Current
		e.turnCount++
		e.turnCard = nil
		e.resetResolution()
		e.phase = PhaseAwaitingCard

		if len(s.Hands[0]) == 0 && len(s.Hands[1]) == 0 {
			e.beginEndGame()
			return
		}
		if len(s.Hand(s.Current)) > 0 {
			e.emit(log.NewNewTurnEvent(e.turnCount, int(s.Current)))
			return
		}
		e.emit(log.NewSkipTurnEvent(e.turnCount, int(s.Current)))
		card = &Card{ID: SkipCardID, Name: "No Card"}
	}
}

// --- end game ---

func endgamePlayable(card *Card) bool {
	switch card.Kind {
	case KindPlacement, KindImmediate, KindChoiceDirection, KindChoiceLayer:
		return true
	default:
		return false
	}
}

func (e *Engine) beginEndGame() {
	s := e.session
	e.phase = PhaseEndGame
	e.emit(log.NewEndGameEvent(e.turnCount, len(s.Pending)))
	e.endgameQueue = append([]PendingMove(nil), s.Pending...)
	s.Pending = nil
	e.advanceEndGame()
}

// advanceEndGame drains the pending-move queue, pausing whenever a queued
// card needs clicks or a choice from its player.
func (e *Engine) advanceEndGame() {
	s := e.session
	for e.phase == PhaseEndGame && len(e.endgameQueue) > 0 {
		mv := e.endgameQueue[0]
		e.endgameQueue = e.endgameQueue[1:]
		e.actor = mv.Player

		switch mv.Kind {
		case PendingModelBuilder:
			card := CardByID(mv.CardID)
			if card == nil {
				continue
			}
			e.emit(log.GameEvent{Player: int(mv.Player), Type: log.EventSweep, Card: card.Name, Details: fmt.Sprintf("Processing Model Builder for %s with %s", mv.Player, card.Name)})
			if !endgamePlayable(card) {
				e.note("%s cannot be played at the end of the game", card.Name)
				continue
			}
			e.beginResolve(card)

		case PendingCrunch:
			e.emit(log.GameEvent{Player: int(mv.Player), Type: log.EventSweep, Details: fmt.Sprintf("Processing Crunch Time for %s", mv.Player)})
			if len(s.Deck) == 0 {
				e.note("No cards in remaining deck")
				continue
			}
			n := len(s.Deck)
			if n > 3 {
				n = 3
			}
			e.askChoice(PendingChoice{
				Kind:    ChoiceDeckPick,
				Player:  mv.Player,
				CardID:  14,
				Options: append([]int(nil), s.Deck[:n]...),
				Prompt:  "Choose a card from the top of the deck",
			})
		}
		if e.active != nil || e.pending != nil {
			return
		}
	}
	if e.phase == PhaseEndGame {
		e.finishGame()
	}
}

func (e *Engine) finishGame() {
	s := e.session
	scores := CalculateGameScore(s.Board)
	e.scores = &scores
	e.emit(log.NewScoreEvent(e.turnCount, 1, scores.PlayerOne.FinalScore))
	e.emit(log.NewScoreEvent(e.turnCount, 2, scores.PlayerTwo.FinalScore))

	winner := scores.Winner()
	e.winner = winner
	switch winner {
	case PlayerOne:
		s.Series.PlayerOne++
		e.emit(log.NewWinEvent(e.turnCount, 1))
	case PlayerTwo:
		s.Series.PlayerTwo++
		e.emit(log.NewWinEvent(e.turnCount, 2))
	default:
		e.emit(log.NewTieEvent(e.turnCount))
	}
	s.GameOver = true
	e.phase = PhaseGameOver
}
