package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

var (
	// ErrIO is returned when a file can't be created, written or closed.
	ErrIO = errors.New("i/o error")
	// ErrEncoding is returned when data can't be converted to or from its
	// file format.
	ErrEncoding = errors.New("encoding error")
)

var (
	wallColor  = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	emptyColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	startColor = color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	endColor   = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
)

// TileColor returns the colour a tile is drawn with.
func TileColor(t TileState) color.RGBA {
	switch t {
	case Empty:
		return emptyColor
	case Start:
		return startColor
	case End:
		return endColor
	default:
		return wallColor
	}
}

// Image renders the maze with one scale x scale block of pixels per tile.
// Tile (x, y) is drawn at column x and row y. All pixels are opaque. The
// caller must make sure the image fits in MaxPixels.
func (m *Maze) Image(scale int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for i, t := range m.tiles.Cells() {
		c := TileColor(t)
		// The pixel buffer is row-major as well, 4 bytes per pixel.
		copy(img.Pix[4*i:4*i+4], []uint8{c.R, c.G, c.B, c.A})
	}
	if scale <= 1 {
		return img
	}

	size := Pt{m.Width, m.Height}.Times(scale)
	scaled := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled
}

// SaveToFile writes the maze to path as an 8 bit RGB PNG. If anything goes
// wrong after the file was created, the file is removed so that no truncated
// image is left behind.
func (m *Maze) SaveToFile(path string, scale int) (err error) {
	if scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrConfig, scale)
	}
	if err := checkArea(m.Width, m.Height, scale); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", ErrIO, path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %w", ErrIO, path, closeErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	w := bufio.NewWriter(file)
	if err = png.Encode(w, m.Image(scale)); err != nil {
		return fmt.Errorf("%w: failed to encode the maze as PNG: %w",
			ErrEncoding, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w: failed to write the image data of the maze: %w",
			ErrIO, err)
	}
	return nil
}
