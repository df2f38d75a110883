// Package raster turns entity SVG into bitmap posters.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const maxRasterDim = 4096

// Rasterize draws svgData onto a size x size canvas filled with background.
// background is a hex color; an unparsable value gives black.
func Rasterize(svgData []byte, size int, background string) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	size = max(1, min(size, maxRasterDim))
	icon.SetTarget(0, 0, float64(size), float64(size))

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: parseBackground(background)}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// WritePNG rasterizes svgData and encodes it as PNG to w
func WritePNG(w io.Writer, svgData []byte, size int, background string) error {
	img, err := Rasterize(svgData, size, background)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func parseBackground(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{A: 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
