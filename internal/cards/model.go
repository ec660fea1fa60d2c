package cards

// Card is one collectible card definition.
type Card struct {
	ID          uint32 `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Set         string `json:"set"`
	Type        string `json:"type"`
	Rarity      string `json:"rarity"`
	Cost        int    `json:"cost"`
	Text        string `json:"text"`
	Collectible bool   `json:"collectible"`
	ImageURL    string `json:"image_url"`
}

// Class is a playable class and the hero card that anchors its decks.
type Class struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	HeroCardID uint32 `json:"hero_card_id"`
}

// Set is a card set (expansion).
type Set struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Standard bool   `json:"standard"`
}

// TypeHero marks hero cards, which never go into a deck's card list.
const TypeHero = "hero"
