// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images acquires researcher photos: download, decode, conditional
// resize, and save as JPEG under the image asset directory. Acquisition
// never fails the caller; any error degrades to the configured default
// image path.
package images

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"

	"github.com/pdiddy/scholar-directory/internal/sentinel"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

const (
	defaultWidth  = 200
	defaultHeight = 200
)

// Fetcher downloads and normalizes photos.
type Fetcher struct {
	client *http.Client
	cfg    types.ImageConfig
	log    zerolog.Logger
}

// NewFetcher builds a Fetcher, applying the 200x200 default target size.
func NewFetcher(client *http.Client, cfg types.ImageConfig, log zerolog.Logger) *Fetcher {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	return &Fetcher{client: client, cfg: cfg, log: log}
}

// PathFor returns the asset path for a researcher's photo: the name
// lowercased with spaces replaced by hyphens, as a .jpg under dir.
func PathFor(dir, name string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	return filepath.Join(dir, slug+".jpg")
}

// Acquire downloads the image at url, converts it to RGB, resizes to the
// target size when the source is at least that large, and writes it to
// destPath. It returns destPath on success and the default-image path on
// an absent URL or any failure. It never returns an error: a bad photo
// must not abort row processing.
func (f *Fetcher) Acquire(url, destPath string) string {
	if sentinel.Absent(url) {
		f.log.Debug().Msg("no photo URL provided, skipping download")
		return f.cfg.DefaultPath
	}

	img, err := f.download(strings.TrimSpace(url))
	if err != nil {
		f.log.Warn().Str("url", url).Err(err).Msg("photo acquisition failed")
		return f.cfg.DefaultPath
	}

	bounds := img.Bounds()
	if bounds.Dx() < f.cfg.Width || bounds.Dy() < f.cfg.Height {
		f.log.Debug().Str("url", url).
			Int("width", bounds.Dx()).Int("height", bounds.Dy()).
			Msg("source image smaller than target size, skipping resize")
		img = toRGBA(img)
	} else {
		dst := image.NewRGBA(image.Rect(0, 0, f.cfg.Width, f.cfg.Height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	if err := save(img, destPath); err != nil {
		f.log.Warn().Str("path", destPath).Err(err).Msg("saving photo failed")
		return f.cfg.DefaultPath
	}
	return destPath
}

func (f *Fetcher) download(url string) (image.Image, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// toRGBA flattens any decoded format to RGB for JPEG output.
func toRGBA(img image.Image) image.Image {
	if _, ok := img.(*image.RGBA); ok {
		return img
	}
	dst := image.NewRGBA(img.Bounds())
	draw.Copy(dst, img.Bounds().Min, img, img.Bounds(), draw.Over, nil)
	return dst
}

func save(img image.Image, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating image directory: %w", err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 90}); err != nil {
		out.Close()
		return fmt.Errorf("encoding JPEG: %w", err)
	}
	return out.Close()
}
