package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrRegression = errors.New("regression")

// StateBytes is an array of bytes that represents the maze as perceived from
// the outside: its dimensions and the state of every tile, in row-major
// order. Two mazes with the same StateBytes render to the same image.
func (m *Maze) StateBytes() []byte {
	buf := new(bytes.Buffer)
	Serialize(buf, int64(m.Width))
	Serialize(buf, int64(m.Height))
	Serialize(buf, m.tiles.Cells())
	return buf.Bytes()
}

// RegressionId returns a string which uniquely identifies the maze. It is a
// hash of StateBytes.
//
// RegressionId is meant to be used this way:
// - Generate a maze from a seed and record its RegressionId.
// - Change the generator.
// - Generate a maze from the same seed and dimensions with the new generator.
// - If the RegressionId hasn't changed, the generator still produces the same
// maze for that seed. If it has changed, the change to the generator altered
// its output and GeneratorVersion must be bumped.
func RegressionId(m *Maze) string {
	hash := sha256.Sum256(m.StateBytes())
	return hex.EncodeToString(hash[:])
}
