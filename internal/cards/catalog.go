package cards

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/youruser/deckgen/internal/deck"
	"github.com/youruser/deckgen/internal/deckcode"
)

var (
	ErrUnknownClass = errors.New("unknown class")
	ErrUnknownSet   = errors.New("unknown set")
)

var (
	_ deck.PoolResolver = (*Catalog)(nil)
	_ deck.Metadata     = (*Catalog)(nil)
)

// Catalog is a read-only index over the loaded cards. It is safe for
// concurrent use.
type Catalog struct {
	cards   []Card
	byID    map[uint32]int
	classes map[string]Class
	sets    map[string]Set
}

// NewCatalog indexes cards. Classes and sets referenced by cards but not
// listed are added, classes without a hero and sets as wild-only.
func NewCatalog(cards []Card, classes []Class, sets []Set) *Catalog {
	c := &Catalog{
		cards:   append([]Card(nil), cards...),
		byID:    make(map[uint32]int, len(cards)),
		classes: make(map[string]Class, len(classes)+1),
		sets:    make(map[string]Set, len(sets)),
	}
	for _, cl := range classes {
		c.classes[cl.Slug] = cl
	}
	for _, s := range sets {
		c.sets[s.Slug] = s
	}
	c.classes[deck.NeutralClass] = Class{Slug: deck.NeutralClass, Name: "Neutral"}
	for i, card := range c.cards {
		c.byID[card.ID] = i
		if _, ok := c.classes[card.Class]; !ok {
			c.classes[card.Class] = Class{Slug: card.Class, Name: card.Class}
		}
		if _, ok := c.sets[card.Set]; !ok && card.Set != "" {
			c.sets[card.Set] = Set{Slug: card.Set, Name: card.Set}
		}
	}
	return c
}

func (c *Catalog) Cards() []Card {
	return append([]Card(nil), c.cards...)
}

func (c *Catalog) Lookup(id uint32) (Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// CardInfo adapts Lookup for deck.ExportDeckText.
func (c *Catalog) CardInfo(id uint32) (deck.CardInfo, bool) {
	card, ok := c.Lookup(id)
	if !ok {
		return deck.CardInfo{}, false
	}
	return deck.CardInfo{Name: card.Name, Cost: card.Cost}, true
}

// HeroFor returns the hero card of a class.
func (c *Catalog) HeroFor(class string) (uint32, bool) {
	cl, ok := c.classes[class]
	if !ok || cl.HeroCardID == 0 {
		return 0, false
	}
	return cl.HeroCardID, true
}

// Pool returns the deck-eligible cards of q.Class in q.Set, in catalog order.
func (c *Catalog) Pool(_ context.Context, q deck.PoolQuery) ([]uint32, error) {
	if _, ok := c.classes[q.Class]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, q.Class)
	}
	inSet, err := c.setMatcher(q.Set, q.Format)
	if err != nil {
		return nil, err
	}
	var ids []uint32
	for _, card := range c.cards {
		if eligible(card) && card.Class == q.Class && inSet(card.Set) {
			ids = append(ids, card.ID)
		}
	}
	return ids, nil
}

func (c *Catalog) setMatcher(set string, format deckcode.Format) (func(string) bool, error) {
	if set == deck.AllSets {
		if format == deckcode.Standard {
			return func(s string) bool { return c.sets[s].Standard }, nil
		}
		return func(string) bool { return true }, nil
	}
	if _, ok := c.sets[set]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSet, set)
	}
	return func(s string) bool { return s == set }, nil
}

func eligible(card Card) bool {
	return card.Collectible && card.Type != TypeHero
}

func (c *Catalog) ClassSlugs() []string {
	return sortedKeys(c.classes)
}

func (c *Catalog) SetSlugs() []string {
	return sortedKeys(c.sets)
}

func (c *Catalog) StandardSetSlugs() []string {
	var out []string
	for slug, s := range c.sets {
		if s.Standard {
			out = append(out, slug)
		}
	}
	sort.Strings(out)
	return out
}

// CardCount counts the deck-eligible cards of class in set.
func (c *Catalog) CardCount(class, set string) int {
	n := 0
	for _, card := range c.cards {
		if eligible(card) && card.Class == class && card.Set == set {
			n++
		}
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
