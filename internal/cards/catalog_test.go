package cards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/deckgen/internal/deck"
	"github.com/youruser/deckgen/internal/deckcode"
	"github.com/youruser/deckgen/internal/sampler"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalogFromDataDir("testdata")
	require.NoError(t, err)
	return c
}

func TestLoadCatalog(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Len(t, c.Cards(), 48)
	assert.Equal(t, []string{"hunter", "mage", "neutral"}, c.ClassSlugs())
	assert.Equal(t, []string{"core", "naxx"}, c.SetSlugs())
	assert.Equal(t, []string{"core"}, c.StandardSetSlugs())

	card, ok := c.Lookup(1001)
	require.True(t, ok)
	assert.Equal(t, "Fireball", card.Name)
	assert.Equal(t, 4, card.Cost)
	assert.True(t, card.Collectible)

	hero, ok := c.HeroFor("mage")
	require.True(t, ok)
	assert.Equal(t, uint32(637), hero)
	_, ok = c.HeroFor(deck.NeutralClass)
	assert.False(t, ok)
}

func TestLoadCatalogMissingCards(t *testing.T) {
	_, err := LoadCatalogFromDataDir(t.TempDir())
	assert.Error(t, err)
}

func TestPool(t *testing.T) {
	c := loadTestCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name string
		q    deck.PoolQuery
		want int
	}{
		{"mage core", deck.PoolQuery{Class: "mage", Set: "core", Format: deckcode.Standard}, 10},
		{"mage all standard", deck.PoolQuery{Class: "mage", Set: deck.AllSets, Format: deckcode.Standard}, 10},
		{"mage all wild", deck.PoolQuery{Class: "mage", Set: deck.AllSets, Format: deckcode.Wild}, 14},
		{"neutral core skips uncollectible", deck.PoolQuery{Class: deck.NeutralClass, Set: "core", Format: deckcode.Wild}, 20},
		{"neutral naxx", deck.PoolQuery{Class: deck.NeutralClass, Set: "naxx", Format: deckcode.Wild}, 6},
		{"hunter naxx", deck.PoolQuery{Class: "hunter", Set: "naxx", Format: deckcode.Wild}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := c.Pool(ctx, tt.q)
			require.NoError(t, err)
			assert.Len(t, ids, tt.want)
			for _, id := range ids {
				card, _ := c.Lookup(id)
				assert.Equal(t, tt.q.Class, card.Class)
				assert.NotEqual(t, TypeHero, card.Type)
			}
		})
	}

	_, err := c.Pool(ctx, deck.PoolQuery{Class: "bard", Set: "core"})
	assert.ErrorIs(t, err, ErrUnknownClass)
	_, err = c.Pool(ctx, deck.PoolQuery{Class: "mage", Set: "tgt"})
	assert.ErrorIs(t, err, ErrUnknownSet)
}

func TestCardCount(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Equal(t, 10, c.CardCount("mage", "core"))
	assert.Equal(t, 20, c.CardCount(deck.NeutralClass, "core"))
	assert.Equal(t, 0, c.CardCount("hunter", "naxx"))
}

func TestNewCatalogInfersClassesAndSets(t *testing.T) {
	c := NewCatalog([]Card{
		{ID: 1, Class: "rogue", Set: "tgt", Collectible: true},
	}, nil, nil)
	assert.Equal(t, []string{"neutral", "rogue"}, c.ClassSlugs())
	assert.Equal(t, []string{"tgt"}, c.SetSlugs())
	assert.Empty(t, c.StandardSetSlugs())
}

func TestGenerateFromCatalog(t *testing.T) {
	c := loadTestCatalog(t)
	hero, _ := c.HeroFor("mage")
	req := deck.Request{
		Class:  "mage",
		Hero:   hero,
		Format: "wild",
		Sets: []deck.SetSpec{
			{SetName: "core", ClassCount: 10, NeutralCount: 10},
			{SetName: "naxx", ClassCount: 4, NeutralCount: 6},
		},
	}
	require.True(t, (&deck.Validator{Meta: c}).Validate(req).OK())

	g := deck.NewGenerator(c, nil)
	g.MaxAttempts = 1000
	d, err := g.Generate(context.Background(), req, sampler.NewSource(11))
	require.NoError(t, err)
	assert.Len(t, d.Cards, 30)

	text := deck.ExportDeckText(d, c.CardInfo)
	assert.Contains(t, text, "# Class: Mage")
	assert.Contains(t, text, d.Code)
}
