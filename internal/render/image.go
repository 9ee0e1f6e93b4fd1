package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/san-kum/wolfca/internal/automaton"
)

// ErrEmptyHistory indicates there is nothing to render.
var ErrEmptyHistory = errors.New("render: empty history")

// Image paints history into an RGBA image, one pixel per cell; row y is
// generation y. Every cell must have a palette entry.
func Image(history []automaton.Generation, p Palette) (*image.RGBA, error) {
	w, h, err := bounds(history)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, g := range history {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x, s := range g {
			c, err := p.Color(s)
			if err != nil {
				return nil, fmt.Errorf("generation %d, cell %d: %w", y, x, err)
			}
			base := x * 4
			row[base+0] = c.R
			row[base+1] = c.G
			row[base+2] = c.B
			row[base+3] = c.A
		}
	}
	return img, nil
}

func bounds(history []automaton.Generation) (int, int, error) {
	if len(history) == 0 || len(history[0]) == 0 {
		return 0, 0, ErrEmptyHistory
	}
	w := len(history[0])
	for y, g := range history {
		if len(g) != w {
			return 0, 0, fmt.Errorf("generation %d has width %d, want %d", y, len(g), w)
		}
	}
	return w, len(history), nil
}

// Format names an image encoding.
type Format string

const (
	PNG  Format = "png"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatFor picks the encoding from a file extension, defaulting to PNG.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", "":
		return PNG, nil
	case ".gif":
		return GIF, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format: %s", ext)
	}
}

// Encode renders history and writes it to w in the given format.
func Encode(w io.Writer, f Format, history []automaton.Generation, p Palette) error {
	img, err := Image(history, p)
	if err != nil {
		return err
	}
	switch f {
	case PNG:
		return png.Encode(w, img)
	case GIF:
		return gif.Encode(w, paletted(img, p), nil)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format: %s", f)
	}
}

// paletted converts img to an exact paletted image so GIF output does not
// dither the state colors.
func paletted(img *image.RGBA, p Palette) *image.Paletted {
	pal := make(color.Palette, 0, len(p))
	index := make(map[color.RGBA]uint8, len(p))
	for s := 0; s < automaton.MaxStates && len(pal) < 256; s++ {
		c, ok := p[automaton.State(s)]
		if !ok {
			continue
		}
		if _, dup := index[c]; !dup {
			index[c] = uint8(len(pal))
			pal = append(pal, c)
		}
	}
	out := image.NewPaletted(img.Bounds(), pal)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetColorIndex(x, y, index[img.RGBAAt(x, y)])
		}
	}
	return out
}

// Save renders history to path, choosing the format from its extension.
func Save(path string, history []automaton.Generation, p Palette) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, f, history, p); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
