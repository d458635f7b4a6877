//go:build !viewer_enabled

package main

import (
	"errors"
)

var ErrViewerDisabled = errors.New("viewer not available, rebuild with " +
	"-tags viewer_enabled")

func ShowMaze(m *Maze, scale int) error {
	return ErrViewerDisabled
}
