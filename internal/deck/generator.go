package deck

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/youruser/deckgen/internal/deckcode"
	"github.com/youruser/deckgen/internal/sampler"
)

var ErrDeckSizeExceeded = errors.New("deck size exceeded")

// SetSpec asks for a number of class and neutral cards from one set.
type SetSpec struct {
	SetName      string `json:"set_name" binding:"required"`
	ClassCount   int    `json:"class_set_count" binding:"min=0,max=30"`
	NeutralCount int    `json:"neutral_set_count" binding:"min=0,max=30"`
}

// Request describes the deck to generate.
type Request struct {
	Class  string    `json:"class_name" binding:"required"`
	Hero   uint32    `json:"hero,omitempty"`
	Format string    `json:"game_format"`
	Sets   []SetSpec `json:"deck_sets" binding:"required,dive"`
	Name   string    `json:"name,omitempty"`
}

// Size is the total number of cards requested across all sets.
func (r Request) Size() int {
	n := 0
	for _, s := range r.Sets {
		n += s.ClassCount + s.NeutralCount
	}
	return n
}

// PoolQuery names one candidate pool. Class is a class slug or NeutralClass,
// Set is a set slug or AllSets.
type PoolQuery struct {
	Class  string
	Set    string
	Format deckcode.Format
}

// PoolResolver supplies candidate pools. A card listed once in a pool may
// still be drawn twice.
type PoolResolver interface {
	Pool(ctx context.Context, q PoolQuery) ([]uint32, error)
}

// Generator assembles decks from random draws. It keeps no per-request
// state; every call to Generate brings its own random source.
type Generator struct {
	Pools       PoolResolver
	Logger      *zap.Logger
	MaxAttempts int
}

func NewGenerator(pools PoolResolver, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{Pools: pools, Logger: logger, MaxAttempts: sampler.DefaultMaxAttempts}
}

// Generate draws the requested cards set by set, class cards before neutral
// ones, and encodes the result. Copy limits apply across all sets.
func (g *Generator) Generate(ctx context.Context, req Request, src sampler.Source) (Deck, error) {
	size, err := checkSize(req)
	if err != nil {
		return Deck{}, err
	}
	format, err := deckcode.ParseFormat(req.Format)
	if err != nil {
		return Deck{}, err
	}

	counts := make(map[uint32]int, size)
	cards := make([]uint32, 0, size)
	for _, set := range req.Sets {
		parts := []struct {
			class string
			n     int
		}{
			{req.Class, set.ClassCount},
			{NeutralClass, set.NeutralCount},
		}
		for _, p := range parts {
			drawn, err := g.draw(ctx, PoolQuery{Class: p.class, Set: set.SetName, Format: format}, counts, p.n, src)
			if err != nil {
				return Deck{}, err
			}
			for _, id := range drawn {
				counts[id]++
			}
			cards = append(cards, drawn...)
		}
	}

	code, err := deckcode.Encode(deckcode.Deck{Format: format, Hero: req.Hero, Cards: cards})
	if err != nil {
		return Deck{}, fmt.Errorf("encode deck: %w", err)
	}
	g.Logger.Info("deck generated",
		zap.String("class", req.Class),
		zap.String("format", format.String()),
		zap.Int("cards", len(cards)),
		zap.String("code", code))

	return Deck{
		Name:   req.Name,
		Class:  req.Class,
		Hero:   req.Hero,
		Format: format.String(),
		Code:   code,
		Cards:  cards,
	}, nil
}

// checkSize rejects negative counts and oversized requests before any pool
// is resolved.
func checkSize(req Request) (int, error) {
	for _, set := range req.Sets {
		for _, n := range []int{set.ClassCount, set.NeutralCount} {
			switch {
			case n < 0:
				return 0, fmt.Errorf("set %s: %w: %d", set.SetName, sampler.ErrInvalidCount, n)
			case n > MaxSize:
				return 0, fmt.Errorf("%w: set %s asks for %d cards, max is %d", ErrDeckSizeExceeded, set.SetName, n, MaxSize)
			}
		}
	}
	size := req.Size()
	if size > MaxSize {
		return 0, fmt.Errorf("%w: requested %d cards, max is %d", ErrDeckSizeExceeded, size, MaxSize)
	}
	return size, nil
}

func (g *Generator) draw(ctx context.Context, q PoolQuery, counts map[uint32]int, n int, src sampler.Source) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	pool, err := g.Pools.Pool(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("resolve %s pool for set %s: %w", q.Class, q.Set, err)
	}
	drawn, err := sampler.Sample(src, pool, counts, n, sampler.WithMaxAttempts(g.MaxAttempts))
	if err != nil {
		return nil, fmt.Errorf("set %s, %s cards: %w", q.Set, q.Class, err)
	}
	g.Logger.Debug("cards drawn",
		zap.String("set", q.Set),
		zap.String("class", q.Class),
		zap.Int("pool", len(pool)),
		zap.Int("drawn", len(drawn)))
	return drawn, nil
}
