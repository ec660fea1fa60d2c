// Package deckcode encodes and decodes deck codes: a base-64 string holding a
// varint header block (reserved marker, version, format) followed by a cards
// block (hero, single-copy ids, double-copy ids, empty n-copy section).
package deckcode

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/youruser/deckgen/internal/varint"
)

const (
	// Version is the only encoding version this package writes or reads.
	Version = 1

	reservedMarker = 0
	heroCount      = 1
	maxCopies      = 2
)

var (
	ErrMalformedDeckCode        = errors.New("malformed deck code")
	ErrUnsupportedFormatVersion = errors.New("unsupported deck code version")
	ErrUnknownFormatValue       = errors.New("unknown format value")
	ErrTooManyCopies            = errors.New("card has more than two copies")
)

// Deck is the decoded content of a deck code.
type Deck struct {
	Format Format
	Hero   uint32
	Cards  []uint32
}

// Counts returns the number of copies of each card.
func (d Deck) Counts() map[uint32]int {
	m := make(map[uint32]int, len(d.Cards))
	for _, id := range d.Cards {
		m[id]++
	}
	return m
}

// DecodeError reports where a deck code stopped making sense. It matches both
// its Kind and the underlying cause with errors.Is.
type DecodeError struct {
	Kind   error
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v at byte %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%v at byte %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Encode serializes d. Cards are grouped by copy count and each group is
// written in ascending order, so the result does not depend on input order.
func Encode(d Deck) (string, error) {
	if !d.Format.Valid() {
		return "", errors.Wrapf(ErrUnknownFormatValue, "%d", uint32(d.Format))
	}
	singles, doubles, err := partition(d.Cards)
	if err != nil {
		return "", err
	}

	w := &writer{buf: make([]byte, 0, 8+2*(len(singles)+len(doubles)))}
	w.put(reservedMarker, Version, uint32(d.Format))
	w.put(heroCount, d.Hero)
	w.put(uint32(len(singles)))
	w.put(singles...)
	w.put(uint32(len(doubles)))
	w.put(doubles...)
	w.put(0)
	if w.err != nil {
		return "", errors.Wrap(w.err, "encode deck code")
	}
	return base64.StdEncoding.EncodeToString(w.buf), nil
}

func partition(cards []uint32) (singles, doubles []uint32, err error) {
	counts := make(map[uint32]int, len(cards))
	for _, id := range cards {
		counts[id]++
	}
	for id, n := range counts {
		switch {
		case n == 1:
			singles = append(singles, id)
		case n == maxCopies:
			doubles = append(doubles, id)
		default:
			return nil, nil, errors.Wrapf(ErrTooManyCopies, "card %d appears %d times", id, n)
		}
	}
	slices.Sort(singles)
	slices.Sort(doubles)
	return singles, doubles, nil
}

type writer struct {
	buf []byte
	err error
}

func (w *writer) put(vs ...uint32) {
	for _, v := range vs {
		if w.err != nil {
			return
		}
		w.buf, w.err = varint.Append(w.buf, uint64(v))
	}
}

// Decode parses a deck code. On failure the returned Deck is always zero.
func Decode(code string) (Deck, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return Deck{}, &DecodeError{Kind: ErrMalformedDeckCode, Err: err}
	}
	p := &parser{r: varint.NewReader(raw)}

	reserved := p.next()
	version := p.next()
	format := Format(p.next())
	if p.err != nil {
		return Deck{}, p.err
	}
	if reserved != reservedMarker || version != Version {
		return Deck{}, errors.Wrapf(ErrUnsupportedFormatVersion, "reserved %d, version %d", reserved, version)
	}
	if !format.Valid() {
		return Deck{}, errors.Wrapf(ErrUnknownFormatValue, "%d", uint32(format))
	}

	if n := p.next(); p.err == nil && n != heroCount {
		return Deck{}, p.fail(fmt.Errorf("hero count %d", n))
	}
	hero := p.next()

	counts := make(map[uint32]int)
	for copies := 1; copies <= maxCopies; copies++ {
		for _, id := range p.list() {
			if counts[id] != 0 {
				return Deck{}, p.fail(fmt.Errorf("card %d listed twice", id))
			}
			counts[id] = copies
		}
	}
	if n := p.next(); p.err == nil && n != 0 {
		return Deck{}, p.fail(errors.Wrapf(ErrTooManyCopies, "%d n-copy entries", n))
	}
	if p.err != nil {
		return Deck{}, p.err
	}
	if p.r.Len() != 0 {
		return Deck{}, p.fail(fmt.Errorf("%d trailing bytes", p.r.Len()))
	}

	ids := make([]uint32, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	cards := make([]uint32, 0, 2*len(ids))
	for _, id := range ids {
		for range counts[id] {
			cards = append(cards, id)
		}
	}
	return Deck{Format: format, Hero: hero, Cards: cards}, nil
}

type parser struct {
	r   *varint.Reader
	err error
}

func (p *parser) next() uint32 {
	if p.err != nil {
		return 0
	}
	v, err := p.r.Next()
	if err != nil {
		p.fail(err)
		return 0
	}
	return v
}

// list reads a count followed by that many ids.
func (p *parser) list() []uint32 {
	n := p.next()
	if p.err != nil {
		return nil
	}
	// every id takes at least one byte
	if int(n) > p.r.Len() {
		p.fail(fmt.Errorf("list of %d cards with %d bytes left", n, p.r.Len()))
		return nil
	}
	ids := make([]uint32, 0, n)
	for i := uint32(0); i < n && p.err == nil; i++ {
		ids = append(ids, p.next())
	}
	if p.err != nil {
		return nil
	}
	return ids
}

func (p *parser) fail(err error) error {
	if p.err == nil {
		p.err = &DecodeError{Kind: ErrMalformedDeckCode, Offset: p.r.Offset(), Err: err}
	}
	return p.err
}
