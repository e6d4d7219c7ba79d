package game

import "sort"

// cardRegistry maps card IDs to their constructors. The playable deck is
// IDs 1 through 21; 99 is the opening sentinel dealt outside the deck.
var cardRegistry = map[int]func() *Card{
	99: OpeningMoves,
	1:  CreateFeatures,
	2:  EraseFeatures,
	3:  Clip,
	4:  FieldCollection,
	5:  Interpolate,
	6:  Dissolve,
	7:  GroundTruth,
	8:  Buffer,
	9:  DiscardEdits,
	10: FillSinks,
	11: Project,
	12: SpatialJoin,
	13: TurnOffLayer,
	14: CrunchTime,
	15: HotspotAnalysis,
	16: NearestNeighbor,
	17: Tesselate,
	18: CtrlZ,
	19: Collaboration,
	20: ModelBuilder,
	21: DataValidation,
}

// DeckCardCount is how many distinct playable cards the deck holds.
const DeckCardCount = 21

// CardByID returns a fresh card definition, or nil for an unknown ID.
func CardByID(id int) *Card {
	ctor, ok := cardRegistry[id]
	if !ok {
		return nil
	}
	return ctor()
}

// CardName returns a display name for any card ID, including the synthetic
// skip marker used when a player has an empty hand.
func CardName(id int) string {
	if id == SkipCardID {
		return "No Card"
	}
	if c := CardByID(id); c != nil {
		return c.Name
	}
	return "Unknown Card"
}

// AllCards returns every registered card sorted by ID, the sentinel last.
func AllCards() []*Card {
	ids := make([]int, 0, len(cardRegistry))
	for id := range cardRegistry {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	cards := make([]*Card, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, cardRegistry[id]())
	}
	return cards
}
