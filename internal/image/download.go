package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

const maxImageBytes = 8 << 20

var ErrImageTooLarge = errors.New("image too large")

var httpClient = &http.Client{Timeout: 10 * time.Second}

// DownloadImage downloads and decodes an image, applying EXIF orientation.
func DownloadImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxImageBytes {
		return nil, fmt.Errorf("download %s: %w: over %d bytes", url, ErrImageTooLarge, maxImageBytes)
	}
	return imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
}
