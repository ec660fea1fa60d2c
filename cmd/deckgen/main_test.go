package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/youruser/deckgen/internal/config"
	"github.com/youruser/deckgen/internal/deck"
	"github.com/youruser/deckgen/internal/deckcode"
)

func testCmd() (*cobra.Command, *bytes.Buffer) {
	logger = zap.NewNop()
	appConfig = config.Default()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestParseSetSpecs(t *testing.T) {
	got, err := parseSetSpecs([]string{"core:10:5", "all:0:15"})
	require.NoError(t, err)
	assert.Equal(t, []deck.SetSpec{
		{SetName: "core", ClassCount: 10, NeutralCount: 5},
		{SetName: "all", ClassCount: 0, NeutralCount: 15},
	}, got)

	for _, bad := range []string{"core", "core:x:1", "core:1:y", "a:1:2:3"} {
		_, err := parseSetSpecs([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestRunDecode(t *testing.T) {
	cmd, out := testCmd()
	require.NoError(t, runDecode(cmd, []string{"AAECAQcByAEBZAA="}))
	assert.Equal(t, "format: standard\nhero:   7\ncards:  3\n  2x 100\n  1x 200\n", out.String())

	assert.ErrorIs(t, runDecode(cmd, []string{"AAECAQcByA=="}), deckcode.ErrMalformedDeckCode)
}

func TestRunGenerate(t *testing.T) {
	cmd, out := testCmd()
	dataDir = filepath.Join("..", "..", "internal", "cards", "testdata")
	className = "mage"
	format = "wild"
	setSpecs = []string{"core:10:10", "naxx:4:6"}
	seed = 99
	deckName = "Test Deck"
	appConfig.Generator.MaxAttempts = 1000

	require.NoError(t, runGenerate(cmd, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "### Test Deck", lines[0])

	code := lines[len(lines)-2]
	d, err := deckcode.Decode(code)
	require.NoError(t, err)
	assert.Len(t, d.Cards, 30)
	assert.Equal(t, uint32(637), d.Hero)
	assert.Equal(t, deckcode.Wild, d.Format)
}

func TestRunGenerateInvalid(t *testing.T) {
	cmd, _ := testCmd()
	dataDir = filepath.Join("..", "..", "internal", "cards", "testdata")
	className = "bard"
	format = "wild"
	setSpecs = []string{"all:1:1"}

	err := runGenerate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bard")
}

func TestRunQR(t *testing.T) {
	cmd, _ := testCmd()
	qrOut = filepath.Join(t.TempDir(), "qr.png")
	qrSize = 128

	require.NoError(t, runQR(cmd, []string{"AAECAQcByAEBZAA="}))
	info, err := os.Stat(qrOut)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
