package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/deckgen/internal/cards"
	"github.com/youruser/deckgen/internal/deck"
	"github.com/youruser/deckgen/internal/deckcode"
	imagepkg "github.com/youruser/deckgen/internal/image"
	"github.com/youruser/deckgen/internal/sampler"
)

var (
	dataDir   string
	className string
	format    string
	setSpecs  []string
	seed      uint64
	deckName  string

	qrOut  string
	qrSize int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <code>",
	Short: "Print the format, hero and cards of a deck code",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random deck from the card catalog",
	Long: `Generate a random deck from the card catalog.

Each --set is name:class:neutral, e.g. --set core:10:5 --set all:10:5.
The set name "all" draws from every set legal in the format.`,
	RunE: runGenerate,
}

var qrCmd = &cobra.Command{
	Use:   "qr <code>",
	Short: "Write a QR code PNG for a deck code",
	Args:  cobra.ExactArgs(1),
	RunE:  runQR,
}

func init() {
	generateCmd.Flags().StringVar(&dataDir, "data", "", "card catalog directory (default from config)")
	generateCmd.Flags().StringVar(&className, "class", "", "class slug")
	generateCmd.Flags().StringVar(&format, "format", "standard", "standard or wild")
	generateCmd.Flags().StringArrayVar(&setSpecs, "set", []string{"all:15:15"}, "set spec name:class:neutral (repeatable)")
	generateCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	generateCmd.Flags().StringVar(&deckName, "name", "", "deck name for the text export")
	_ = generateCmd.MarkFlagRequired("class")

	qrCmd.Flags().StringVarP(&qrOut, "out", "o", "deck-qr.png", "output file")
	qrCmd.Flags().IntVar(&qrSize, "size", imagepkg.DefaultQRSize, "image size in pixels")
}

func runDecode(cmd *cobra.Command, args []string) error {
	d, err := deckcode.Decode(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "format: %s\nhero:   %d\ncards:  %d\n", d.Format, d.Hero, len(d.Cards))
	counts := d.Counts()
	seen := map[uint32]bool{}
	for _, id := range d.Cards {
		if seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(out, "  %dx %d\n", counts[id], id)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sets, err := parseSetSpecs(setSpecs)
	if err != nil {
		return err
	}
	dir := dataDir
	if dir == "" {
		dir = appConfig.Data.Dir
	}
	catalog, err := cards.LoadCatalogFromDataDir(dir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	req := deck.Request{Class: className, Format: format, Sets: sets, Name: deckName}
	if st := (&deck.Validator{Meta: catalog}).Validate(req); !st.OK() {
		return fmt.Errorf("invalid request:\n  %s", strings.Join(st.Messages, "\n  "))
	}
	hero, ok := catalog.HeroFor(className)
	if !ok {
		return fmt.Errorf("no hero card known for class %s", className)
	}
	req.Hero = hero

	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("generating deck", zap.Uint64("seed", seed))

	gen := deck.NewGenerator(catalog, logger)
	gen.MaxAttempts = appConfig.Generator.MaxAttempts
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := gen.Generate(ctx, req, sampler.NewSource(seed))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), deck.ExportDeckText(d, catalog.CardInfo))
	return nil
}

func runQR(cmd *cobra.Command, args []string) error {
	if _, err := deckcode.Decode(args[0]); err != nil {
		return err
	}
	b, err := imagepkg.GenerateQRPNG(args[0], qrSize)
	if err != nil {
		return err
	}
	if err := os.WriteFile(qrOut, b, 0o644); err != nil {
		return err
	}
	logger.Info("qr code written", zap.String("path", qrOut))
	return nil
}

// parseSetSpecs parses name:class:neutral triples.
func parseSetSpecs(specs []string) ([]deck.SetSpec, error) {
	out := make([]deck.SetSpec, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("set spec %q: want name:class:neutral", s)
		}
		classCount, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("set spec %q: class count: %w", s, err)
		}
		neutralCount, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("set spec %q: neutral count: %w", s, err)
		}
		out = append(out, deck.SetSpec{SetName: parts[0], ClassCount: classCount, NeutralCount: neutralCount})
	}
	return out, nil
}
