package cards

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadCatalogFromDataDir loads cards.csv and, when present, classes.csv and
// sets.csv from dataDir. Sets missing from sets.csv are added as wild-only.
func LoadCatalogFromDataDir(dataDir string) (*Catalog, error) {
	cardRows, err := readCSV(filepath.Join(dataDir, "cards.csv"))
	if err != nil {
		return nil, err
	}
	cards := make([]Card, 0, len(cardRows))
	for i, row := range cardRows {
		c, err := parseCard(row)
		if err != nil {
			return nil, fmt.Errorf("cards.csv row %d: %w", i+2, err)
		}
		cards = append(cards, c)
	}

	classRows, err := readOptionalCSV(filepath.Join(dataDir, "classes.csv"))
	if err != nil {
		return nil, err
	}
	classes := make([]Class, 0, len(classRows))
	for i, row := range classRows {
		id, err := parseID(row["hero_card_id"])
		if err != nil {
			return nil, fmt.Errorf("classes.csv row %d: %w", i+2, err)
		}
		classes = append(classes, Class{Slug: row["slug"], Name: row["name"], HeroCardID: id})
	}

	setRows, err := readOptionalCSV(filepath.Join(dataDir, "sets.csv"))
	if err != nil {
		return nil, err
	}
	sets := make([]Set, 0, len(setRows))
	for _, row := range setRows {
		sets = append(sets, Set{Slug: row["slug"], Name: row["name"], Standard: parseBool(row["standard"])})
	}

	return NewCatalog(cards, classes, sets), nil
}

func parseCard(row map[string]string) (Card, error) {
	id, err := parseID(row["id"])
	if err != nil {
		return Card{}, err
	}
	c := Card{
		ID:       id,
		Slug:     row["slug"],
		Name:     row["name"],
		Class:    strings.ToLower(row["class"]),
		Set:      strings.ToLower(row["set"]),
		Type:     strings.ToLower(row["type"]),
		Rarity:   strings.ToLower(row["rarity"]),
		Text:     row["text"],
		ImageURL: row["image_url"],
	}
	if c.Class == "" {
		c.Class = "neutral"
	}
	if cost := strings.TrimSpace(row["cost"]); cost != "" && cost != "-" {
		c.Cost, _ = strconv.Atoi(cost)
	}
	// a missing column means every listed card is collectible
	c.Collectible = true
	if v, ok := row["collectible"]; ok && strings.TrimSpace(v) != "" {
		c.Collectible = parseBool(v)
	}
	return c, nil
}

func parseID(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("card id %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func readOptionalCSV(path string) ([]map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return readCSV(path)
}

// readCSV returns one map per data row keyed by header name.
func readCSV(path string) ([]map[string]string, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	header := rows[0]
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				m[h] = row[i]
			}
		}
		out = append(out, m)
	}
	return out, nil
}
