package deck

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CardInfo is what the text export shows for a card.
type CardInfo struct {
	Name string
	Cost int
}

// CardLookup resolves a card id for display.
type CardLookup func(id uint32) (CardInfo, bool)

// ExportDeckText renders d in the game's deck import text format. Unknown
// cards are shown by id.
func ExportDeckText(d Deck, lookup CardLookup) string {
	type line struct {
		info  CardInfo
		count int
	}
	counts := d.Counts()
	rows := make([]line, 0, len(counts))
	for id, n := range counts {
		info, ok := CardInfo{}, false
		if lookup != nil {
			info, ok = lookup(id)
		}
		if !ok {
			info = CardInfo{Name: fmt.Sprintf("Card #%d", id)}
		}
		rows = append(rows, line{info: info, count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].info.Cost != rows[j].info.Cost {
			return rows[i].info.Cost < rows[j].info.Cost
		}
		return rows[i].info.Name < rows[j].info.Name
	})

	name := d.Name
	if name == "" {
		name = strings.TrimSpace(titleCase(d.Class) + " Deck")
	}
	lines := []string{
		"### " + name,
		"# Class: " + titleCase(d.Class),
		"# Format: " + titleCase(d.Format),
		"#",
	}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("# %dx (%d) %s", r.count, r.info.Cost, r.info.Name))
	}
	lines = append(lines, "#", d.Code, "#")
	return strings.Join(lines, "\n")
}

func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[n:]
	}
	return strings.Join(words, " ")
}
