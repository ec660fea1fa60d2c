package api

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/youruser/deckgen/internal/cards"
	"github.com/youruser/deckgen/internal/deck"
	"github.com/youruser/deckgen/internal/deckcode"
	imagepkg "github.com/youruser/deckgen/internal/image"
	"github.com/youruser/deckgen/internal/sampler"
)

// maxArtCards caps how many card images the deck image downloads.
const maxArtCards = 27

// Server holds the handlers' dependencies.
type Server struct {
	catalog   *cards.Catalog
	generator *deck.Generator
	validator *deck.Validator
	store     *deck.Store
	logger    *zap.Logger

	// seed returns the seed of each request's random source.
	seed func() uint64
}

func NewServer(catalog *cards.Catalog, generator *deck.Generator, store *deck.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		catalog:   catalog,
		generator: generator,
		validator: &deck.Validator{Meta: catalog},
		store:     store,
		logger:    logger,
		seed:      rand.Uint64,
	}
}

// DeckResponse is returned by the deck endpoints.
type DeckResponse struct {
	ID       string       `json:"id,omitempty"`
	DeckCode string       `json:"deck_code,omitempty"`
	Format   string       `json:"format,omitempty"`
	Hero     uint32       `json:"hero,omitempty"`
	Cards    []cards.Card `json:"cards,omitempty"`
	Text     string       `json:"text,omitempty"`
	Status   deck.Status  `json:"status"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) generateDeck(c *gin.Context) {
	var req deck.Request
	// field errors are reported by the validator together with the rest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.As(err, new(validator.ValidationErrors)) {
		c.JSON(http.StatusBadRequest, DeckResponse{Status: deck.Failure(err.Error())})
		return
	}
	s.logger.Info("deck request received",
		zap.String("class", req.Class),
		zap.String("format", req.Format),
		zap.Int("sets", len(req.Sets)))

	if st := s.validator.Validate(req); !st.OK() {
		c.JSON(http.StatusBadRequest, DeckResponse{Status: st})
		return
	}
	if req.Hero == 0 {
		hero, ok := s.catalog.HeroFor(req.Class)
		if !ok {
			c.JSON(http.StatusBadRequest, DeckResponse{Status: deck.Failure("no hero card known for class " + req.Class)})
			return
		}
		req.Hero = hero
	}

	d, err := s.generator.Generate(c.Request.Context(), req, sampler.NewSource(s.seed()))
	if err != nil {
		s.logger.Warn("deck generation failed", zap.Error(err))
		c.JSON(statusFor(err), DeckResponse{Status: deck.Failure("Unable to create the deck at this time, please try again.", err.Error())})
		return
	}
	d = s.store.Save(d)
	c.JSON(http.StatusCreated, s.response(d))
}

func (s *Server) getDeck(c *gin.Context) {
	d, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, DeckResponse{Status: deck.Failure(err.Error())})
		return
	}
	c.JSON(http.StatusOK, s.response(d))
}

func (s *Server) deleteDeck(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, DeckResponse{Status: deck.Failure(err.Error())})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) decodeCode(c *gin.Context) {
	dc, err := deckcode.Decode(c.Query("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, DeckResponse{Status: deck.Failure(err.Error())})
		return
	}
	c.JSON(http.StatusOK, s.response(deck.Deck{
		Hero:   dc.Hero,
		Format: dc.Format.String(),
		Code:   c.Query("code"),
		Cards:  dc.Cards,
	}))
}

// qr endpoint returns a PNG of a QR for the "code" query param
func (s *Server) qrHandler(c *gin.Context) {
	code := c.Query("code")
	if _, err := deckcode.Decode(code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(code, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// deck image: hero art, card art and the QR code of a deck code
func (s *Server) deckImageHandler(c *gin.Context) {
	var req struct {
		DeckCode string `json:"deck_code" binding:"required"`
		WithArt  bool   `json:"with_art"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dc, err := deckcode.Decode(req.DeckCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var heroImg image.Image
	var cardImgs []image.Image
	if req.WithArt {
		heroImg = s.fetchArt(c, dc.Hero)
		seen := map[uint32]bool{}
		for _, id := range dc.Cards {
			if seen[id] || len(cardImgs) >= maxArtCards {
				continue
			}
			seen[id] = true
			if img := s.fetchArt(c, id); img != nil {
				cardImgs = append(cardImgs, img)
			}
		}
	}
	out, err := imagepkg.ComposeDeckImage(req.DeckCode, heroImg, cardImgs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// fetchArt is best-effort: missing or failing art leaves a gap.
func (s *Server) fetchArt(c *gin.Context, id uint32) image.Image {
	card, ok := s.catalog.Lookup(id)
	if !ok || card.ImageURL == "" {
		return nil
	}
	img, err := imagepkg.DownloadImage(c.Request.Context(), card.ImageURL)
	if err != nil {
		s.logger.Debug("card art download failed", zap.Uint32("card", id), zap.Error(err))
		return nil
	}
	return img
}

func (s *Server) filterHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := cards.Filter(s.catalog.Cards(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

func (s *Server) response(d deck.Deck) DeckResponse {
	resp := DeckResponse{
		ID:       d.ID,
		DeckCode: d.Code,
		Format:   d.Format,
		Hero:     d.Hero,
		Text:     deck.ExportDeckText(d, s.catalog.CardInfo),
		Status:   deck.Success(),
	}
	for _, id := range d.Cards {
		card, ok := s.catalog.Lookup(id)
		if !ok {
			card = cards.Card{ID: id}
		}
		resp.Cards = append(resp.Cards, card)
	}
	return resp
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sampler.ErrInsufficientCandidates):
		return http.StatusUnprocessableEntity
	case errors.Is(err, deck.ErrDeckSizeExceeded),
		errors.Is(err, deckcode.ErrUnknownFormat),
		errors.Is(err, sampler.ErrInvalidCount),
		errors.Is(err, cards.ErrUnknownClass),
		errors.Is(err, cards.ErrUnknownSet):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
