package game

// SkipCardID marks a turn that was skipped because the hand was empty.
const SkipCardID = -1

// OpeningCardID is the sentinel opening card dealt to both players.
const OpeningCardID = 99

// ActivityLogLimit bounds the session's human-readable log.
const ActivityLogLimit = 50

// SeriesScore is the cumulative across-games tally for a rematch series.
type SeriesScore struct {
	PlayerOne int `json:"playerOne"`
	PlayerTwo int `json:"playerTwo"`
}

// MapView is presentation chrome carried through the session record so
// both clients render the same basemap.
type MapView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Basemap   string  `json:"basemap"`
}

// Session is the complete shared state of one game. It replaces what the
// synchronized record plus per-client globals hold: everything the engine
// reads or writes lives here, so a session can be saved, restored and
// resumed mid-turn between card plays.
type Session struct {
	GameID string

	Board Board
	// Previous holds per-player board snapshots taken when that player
	// last finished a turn. Discard Edits reverts to the acting player's
	// snapshot.
	Previous [2]Board

	Hands   [2][]int
	Deck    []int
	Discard []DiscardEntry
	Pending []PendingMove

	Current      Owner
	LastPlayed   int
	LastPlayedBy Owner
	OpeningDone  [2]bool

	GameOver bool
	Series   SeriesScore

	Map MapView
	// Log is the bounded human-readable activity feed shown to players.
	Log []string
}

func handIndex(p Owner) int {
	return int(p) - 1
}

// Hand returns the given player's hand slice.
func (s *Session) Hand(p Owner) []int {
	return s.Hands[handIndex(p)]
}

// HandContains reports whether the player holds the card.
func (s *Session) HandContains(p Owner, cardID int) bool {
	for _, id := range s.Hand(p) {
		if id == cardID {
			return true
		}
	}
	return false
}

// RemoveFromHand removes the first copy of cardID from the player's hand.
// Removing a card that is not there is a no-op.
func (s *Session) RemoveFromHand(p Owner, cardID int) bool {
	hand := s.Hands[handIndex(p)]
	for i, id := range hand {
		if id == cardID {
			s.Hands[handIndex(p)] = append(hand[:i], hand[i+1:]...)
			return true
		}
	}
	return false
}

// DrawCard pops the top of the deck, or (0, false) when it is empty.
func (s *Session) DrawCard() (int, bool) {
	if len(s.Deck) == 0 {
		return 0, false
	}
	top := s.Deck[0]
	s.Deck = s.Deck[1:]
	return top, true
}

// RemoveFromDeck removes the first copy of cardID from the deck.
func (s *Session) RemoveFromDeck(cardID int) bool {
	for i, id := range s.Deck {
		if id == cardID {
			s.Deck = append(s.Deck[:i], s.Deck[i+1:]...)
			return true
		}
	}
	return false
}

// AppendLog adds one line to the activity feed, dropping the oldest line
// once the feed exceeds its limit.
func (s *Session) AppendLog(line string) {
	s.Log = append(s.Log, line)
	if len(s.Log) > ActivityLogLimit {
		s.Log = s.Log[len(s.Log)-ActivityLogLimit:]
	}
}

// SessionState is the flat persistence record for a Session. Field names
// follow the synchronized-record naming the game has always used on the
// wire, so stored games stay readable.
type SessionState struct {
	GameID                   string         `json:"gameId"`
	GameState                []int          `json:"gameState"`
	PreviousStateOne         []int          `json:"previousStateOne"`
	PreviousStateTwo         []int          `json:"previousStateTwo"`
	PlayerOneHand            []int          `json:"playerOneHand"`
	PlayerTwoHand            []int          `json:"playerTwoHand"`
	RemainingDeck            []int          `json:"remainingDeck"`
	DiscardPile              []DiscardEntry `json:"discardPile"`
	PendingMoves             []PendingMove  `json:"pendingMoves"`
	CurrentPlayer            int            `json:"currentPlayer"`
	LastPlayedCard           int            `json:"lastPlayedCard"`
	LastPlayedCardPlayer     int            `json:"lastPlayedCardPlayer"`
	PlayerOnePlayedFirstTurn bool           `json:"playerOnePlayedFirstTurn"`
	PlayerTwoPlayedFirstTurn bool           `json:"playerTwoPlayedFirstTurn"`
	GameOver                 bool           `json:"gameOver"`
	CumulativeScore          SeriesScore    `json:"cumulativeScore"`
	Map                      MapView        `json:"map"`
	GameLog                  []string       `json:"gameLog"`
}

func boardToSlice(b Board) []int {
	out := make([]int, BoardSize)
	for i, o := range b {
		out[i] = int(o)
	}
	return out
}

func sliceToBoard(cells []int) Board {
	var b Board
	for i := 0; i < len(cells) && i < BoardSize; i++ {
		b[i] = Owner(cells[i])
	}
	return b
}

// Snapshot returns a deep copy of the session as a persistence record.
func (s *Session) Snapshot() SessionState {
	state := SessionState{
		GameID:                   s.GameID,
		GameState:                boardToSlice(s.Board),
		PreviousStateOne:         boardToSlice(s.Previous[0]),
		PreviousStateTwo:         boardToSlice(s.Previous[1]),
		PlayerOneHand:            append([]int(nil), s.Hands[0]...),
		PlayerTwoHand:            append([]int(nil), s.Hands[1]...),
		RemainingDeck:            append([]int(nil), s.Deck...),
		DiscardPile:              append([]DiscardEntry(nil), s.Discard...),
		PendingMoves:             append([]PendingMove(nil), s.Pending...),
		CurrentPlayer:            int(s.Current),
		LastPlayedCard:           s.LastPlayed,
		LastPlayedCardPlayer:     int(s.LastPlayedBy),
		PlayerOnePlayedFirstTurn: s.OpeningDone[0],
		PlayerTwoPlayedFirstTurn: s.OpeningDone[1],
		GameOver:                 s.GameOver,
		CumulativeScore:          s.Series,
		Map:                      s.Map,
		GameLog:                  append([]string(nil), s.Log...),
	}
	return state
}

// RestoreSession rebuilds a Session from a persistence record.
func RestoreSession(state SessionState) *Session {
	s := &Session{
		GameID:       state.GameID,
		Board:        sliceToBoard(state.GameState),
		Hands:        [2][]int{append([]int(nil), state.PlayerOneHand...), append([]int(nil), state.PlayerTwoHand...)},
		Deck:         append([]int(nil), state.RemainingDeck...),
		Discard:      append([]DiscardEntry(nil), state.DiscardPile...),
		Pending:      append([]PendingMove(nil), state.PendingMoves...),
		Current:      Owner(state.CurrentPlayer),
		LastPlayed:   state.LastPlayedCard,
		LastPlayedBy: Owner(state.LastPlayedCardPlayer),
		GameOver:     state.GameOver,
		Series:       state.CumulativeScore,
		Map:          state.Map,
		Log:          append([]string(nil), state.GameLog...),
	}
	s.Previous[0] = sliceToBoard(state.PreviousStateOne)
	s.Previous[1] = sliceToBoard(state.PreviousStateTwo)
	s.OpeningDone[0] = state.PlayerOnePlayedFirstTurn
	s.OpeningDone[1] = state.PlayerTwoPlayedFirstTurn
	if s.Current == Empty {
		s.Current = PlayerOne
	}
	return s
}
