//go:build viewer_enabled

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Viewer shows a rendered maze in a window. The maze image is drawn at its
// native size and ebiten scales it to whatever size the window has.
type Viewer struct {
	img  *ebiten.Image
	size Pt
}

func (v *Viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Min.X), float64(screen.Bounds().Min.Y))
	screen.DrawImage(v.img, op)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return v.size.X, v.size.Y
}

// ShowMaze opens a window displaying m and blocks until the window is closed.
func ShowMaze(m *Maze, scale int) error {
	img := m.Image(scale)
	v := &Viewer{
		img:  ebiten.NewImageFromImage(img),
		size: Pt{img.Bounds().Dx(), img.Bounds().Dy()},
	}

	// Keep the window on screen for large mazes; ebiten scales the image
	// down to fit.
	windowSize := v.size
	for windowSize.X > 1600 || windowSize.Y > 1000 {
		windowSize = Pt{windowSize.X / 2, windowSize.Y / 2}
	}
	ebiten.SetWindowSize(max(windowSize.X, 1), max(windowSize.Y, 1))
	ebiten.SetWindowTitle("Labyrinth")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
