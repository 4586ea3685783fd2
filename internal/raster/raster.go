// Package raster carries the in-memory image operations of the pipeline:
// loading the master, padding it square, Lanczos resampling, alpha
// flattening and PNG encoding. All functions return a fresh *image.NRGBA;
// inputs are never mutated.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// Load decodes the master image at path into an NRGBA raster.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open master %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}

// Canonicalize returns a square raster. A square input comes back as an
// unchanged copy. A non-square input is pasted centered onto a transparent
// canvas of side max(w, h); the source pixels are copied straight, not
// alpha-blended. The bool reports whether padding happened.
func Canonicalize(img *image.NRGBA) (*image.NRGBA, bool) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == h {
		return imaging.Clone(img), false
	}
	side := w
	if h > side {
		side = h
	}
	canvas := imaging.New(side, side, color.NRGBA{})
	return imaging.Paste(canvas, img, image.Pt((side-w)/2, (side-h)/2)), true
}

// Resize resamples img to exactly w×h with a Lanczos filter.
func Resize(img *image.NRGBA, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Flatten composites img over an opaque white background, producing a
// raster whose alpha channel is uniformly 255.
func Flatten(img *image.NRGBA) *image.NRGBA {
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
