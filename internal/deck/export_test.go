package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportDeckText(t *testing.T) {
	names := map[uint32]CardInfo{
		100: {Name: "Fireball", Cost: 4},
		200: {Name: "Arcane Missiles", Cost: 1},
	}
	d := Deck{
		Class:  "mage",
		Format: "standard",
		Code:   "AAECAQcByAEBZAA=",
		Cards:  []uint32{100, 200, 100, 300},
	}
	got := ExportDeckText(d, func(id uint32) (CardInfo, bool) {
		info, ok := names[id]
		return info, ok
	})

	want := `### Mage Deck
# Class: Mage
# Format: Standard
#
# 1x (0) Card #300
# 1x (1) Arcane Missiles
# 2x (4) Fireball
#
AAECAQcByAEBZAA=
#`
	assert.Equal(t, want, got)
}

func TestExportDeckTextNamed(t *testing.T) {
	got := ExportDeckText(Deck{Name: "Face", Class: "demon-hunter", Format: "wild", Code: "x"}, nil)
	assert.Contains(t, got, "### Face\n# Class: Demon Hunter\n")
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"demon-hunter", "Demon Hunter"},
		{"standard", "Standard"},
		{"élémentaire", "Élémentaire"},
		{"ñu_ö", "Ñu Ö"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleCase(tt.in), tt.in)
	}
}
