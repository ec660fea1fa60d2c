package imagepkg

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	canvasWidth  = 2150
	canvasHeight = 2048
	margin       = 48
	cardWidth    = 215
	cardHeight   = 300
	cardGap      = 8
	cardsPerRow  = 9
	qrSlot       = 400
)

// ComposeDeckImage lays out the hero at top left, a QR code of the deck code
// at top right and card art in rows below. hero and cards may be nil or
// empty; an empty code leaves the QR slot blank.
func ComposeDeckImage(code string, hero image.Image, cards []image.Image) (*image.NRGBA, error) {
	canvas := imaging.New(canvasWidth, canvasHeight, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})

	if hero != nil {
		h := imaging.Fit(hero, 400, 600, imaging.Lanczos)
		canvas = imaging.Paste(canvas, h, image.Pt(margin, margin))
	}
	if code != "" {
		q, err := qrcode.New(code, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("qr for %q: %w", code, err)
		}
		// drawn at slot size so modules stay sharp
		canvas = imaging.Paste(canvas, q.Image(qrSlot), image.Pt(canvasWidth-margin-qrSlot, margin))
	}

	top := 700
	for i, c := range cards {
		row, col := i/cardsPerRow, i%cardsPerRow
		y := top + row*(cardHeight+cardGap)
		if y+cardHeight > canvasHeight {
			break
		}
		x := margin + col*(cardWidth+cardGap)
		canvas = imaging.Paste(canvas, imaging.Resize(c, cardWidth, cardHeight, imaging.Lanczos), image.Pt(x, y))
	}
	return canvas, nil
}
