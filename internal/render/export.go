package render

import (
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image file format for exported renders.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// jpegQuality is used for every JPEG export.
const jpegQuality = 95

// ParseFormat accepts a format name or a file extension (with or without the dot).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", errors.Errorf("unsupported image format %q", s)
}

// FormatFromPath picks the format from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Errorf("output path %q has no extension", path)
	}
	return ParseFormat(ext)
}

// Scale resizes img by factor with nearest-neighbour sampling so rendered pixels stay crisp.
// A factor of 1 returns img unchanged.
func Scale(img image.Image, factor float64) (image.Image, error) {
	if factor <= 0 {
		return nil, errors.Errorf("scale factor must be positive, got %g", factor)
	}
	if factor == 1 {
		return img, nil
	}
	b := img.Bounds()
	w, h := int(float64(b.Dx())*factor+0.5), int(float64(b.Dy())*factor+0.5)
	if w < 1 || h < 1 {
		return nil, errors.Errorf("scale factor %g collapses a %dx%d image", factor, b.Dx(), b.Dy())
	}
	return transform.Resize(img, w, h, transform.NearestNeighbor), nil
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = imgio.PNGEncoder()(w, img)
	case JPEG:
		err = imgio.JPEGEncoder(jpegQuality)(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Errorf("unsupported image format %q", f)
	}
	return errors.Wrapf(err, "encode %s", f)
}
