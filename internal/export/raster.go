package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"MaskBoard/internal/geom"
	"MaskBoard/internal/state"
)

// ErrInvalidSize is returned when a raster export is asked for an empty canvas.
var ErrInvalidSize = errors.New("invalid raster size")

// Format is a lossless raster encoding for the binary mask.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name, case-insensitively. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return PNG, nil
	case PNG, BMP, TIFF:
		return f, nil
	case "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("unsupported raster format %q", s)
}

func (f Format) Ext() string { return "." + string(f) }

// Bitmap rasterizes the closed polygons onto a w x h canvas.
func Bitmap(polys []state.Polygon, w, h int) *geom.Bitmap {
	closed := make([]state.Polygon, 0, len(polys))
	for _, p := range polys {
		if p.Closed {
			closed = append(closed, p)
		}
	}
	return geom.Rasterize(state.Vertices(closed), w, h)
}

// ToBinaryRaster renders the closed polygons black on white and encodes the
// result. Unlike the vector exports it always produces an image, all white
// when there is nothing to draw.
func ToBinaryRaster(polys []state.Polygon, w, h int, format Format) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	img := Bitmap(polys, w, h).Gray()

	var buf bytes.Buffer
	if err := encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("encode %s mask: %w", format, err)
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, img *image.Gray, format Format) error {
	switch format {
	case PNG, "":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(buf, img)
	case BMP:
		return bmp.Encode(buf, img)
	case TIFF:
		return tiff.Encode(buf, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported raster format %q", string(format))
}
