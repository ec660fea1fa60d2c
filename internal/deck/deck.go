package deck

const (
	// MaxSize is the number of cards in a complete deck.
	MaxSize = 30
	// MaxCopies is how many copies of one card a deck may hold.
	MaxCopies = 2

	// AllSets as a set name draws from every set legal in the format.
	AllSets = "all"
	// NeutralClass is the class slug of cards playable by every hero.
	NeutralClass = "neutral"
)

// Deck is a generated deck together with its code.
type Deck struct {
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name,omitempty"`
	Class  string   `json:"class"`
	Hero   uint32   `json:"hero"`
	Format string   `json:"format"`
	Code   string   `json:"deck_code"`
	Cards  []uint32 `json:"cards"` // one entry per copy
}

// Counts returns card id -> copies.
func (d Deck) Counts() map[uint32]int {
	m := make(map[uint32]int, len(d.Cards))
	for _, id := range d.Cards {
		m[id]++
	}
	return m
}
