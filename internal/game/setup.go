package game

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// GameConfig holds the game creation settings: how many cards each player
// is dealt, the piece colors, and the basemap chrome both clients render.
type GameConfig struct {
	HandSize       int     `yaml:"hand_size"`
	PlayerOneColor string  `yaml:"player_one_color"`
	PlayerTwoColor string  `yaml:"player_two_color"`
	Latitude       float64 `yaml:"latitude"`
	Longitude      float64 `yaml:"longitude"`
	Zoom           int     `yaml:"zoom"`
	Basemap        string  `yaml:"basemap"`
}

// DefaultConfig returns the standard five-card game.
func DefaultConfig() GameConfig {
	return GameConfig{
		HandSize:       5,
		PlayerOneColor: "rgba(255, 0, 0, 1)",
		PlayerTwoColor: "rgba(0, 0, 255, 1)",
		Zoom:           13,
		Basemap:        "streets",
	}
}

// ParseConfig reads YAML game settings, filling unset fields from the
// defaults.
func ParseConfig(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.HandSize < 1 || cfg.HandSize*2 > DeckCardCount {
		return GameConfig{}, fmt.Errorf("hand size %d out of range", cfg.HandSize)
	}
	return cfg, nil
}

// ParseConfigFile reads YAML game settings from a file.
func ParseConfigFile(path string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// NewGameID returns a short shareable game id.
func NewGameID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:5]
}

// NewSession creates a fresh game: empty board, a shuffled deck of the 21
// playable cards, HandSize cards dealt alternately to each player, and the
// opening sentinel appended to both hands. Player one moves first.
func NewSession(cfg GameConfig, rng *rand.Rand) *Session {
	s := &Session{
		GameID:     NewGameID(),
		Current:    PlayerOne,
		LastPlayed: OpeningCardID,
		Map: MapView{
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
			Zoom:      cfg.Zoom,
			Basemap:   cfg.Basemap,
		},
	}
	s.LastPlayedBy = PlayerOne
	dealHands(s, cfg.HandSize, rng)
	return s
}

// Reset rewinds a finished session for a rematch: fresh board, deck and
// hands, keeping the game id, the map chrome and the cumulative series
// score.
func Reset(s *Session, cfg GameConfig, rng *rand.Rand) {
	s.Board = Board{}
	s.Previous = [2]Board{}
	s.Discard = nil
	s.Pending = nil
	s.Current = PlayerOne
	s.LastPlayed = OpeningCardID
	s.LastPlayedBy = PlayerOne
	s.OpeningDone = [2]bool{}
	s.GameOver = false
	s.Log = nil
	dealHands(s, cfg.HandSize, rng)
}

func dealHands(s *Session, handSize int, rng *rand.Rand) {
	deck := make([]int, DeckCardCount)
	for i := range deck {
		deck[i] = i + 1
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	hands := [2][]int{}
	for i := 0; i < handSize; i++ {
		hands[0] = append(hands[0], deck[0])
		hands[1] = append(hands[1], deck[1])
		deck = deck[2:]
	}
	hands[0] = append(hands[0], OpeningCardID)
	hands[1] = append(hands[1], OpeningCardID)

	s.Hands = hands
	s.Deck = deck
}
