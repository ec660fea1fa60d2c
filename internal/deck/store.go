package deck

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("deck not found")

// Store keeps generated decks in memory for later lookup.
type Store struct {
	mu    sync.RWMutex
	decks map[string]Deck
}

func NewStore() *Store {
	return &Store{decks: make(map[string]Deck)}
}

// Save assigns d a new id and stores it.
func (s *Store) Save(d Deck) Deck {
	d.ID = uuid.NewString()
	d.Cards = append([]uint32(nil), d.Cards...)
	s.mu.Lock()
	s.decks[d.ID] = d
	s.mu.Unlock()
	return d
}

func (s *Store) Get(id string) (Deck, error) {
	s.mu.RLock()
	d, ok := s.decks[id]
	s.mu.RUnlock()
	if !ok {
		return Deck{}, ErrNotFound
	}
	return d, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[id]; !ok {
		return ErrNotFound
	}
	delete(s.decks, id)
	return nil
}
