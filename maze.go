package main

import (
	"fmt"
	"math"
	"slices"
)

// Maze rules
// - The maze is a grid of tiles, all of them walls to begin with.
// - Passages are carved by a randomized depth first search that starts from a
// random tile.
// - A tile can be carved only if none of the tiles around it are carved
// already, except for the tile the search arrives from and the two diagonal
// tiles that flank it. Passages stay one tile wide and never touch each
// other, not even diagonally, so the maze has no loops.
// - After carving, the first carved tile in row-major order becomes the Start
// and the last one becomes the End.

// GeneratorVersion identifies the carving algorithm. If a change to Populate
// (or to the random source) means that the same seed and dimensions produce a
// different maze, GeneratorVersion must change as well.
const GeneratorVersion = 1

// MaxDimension is the largest width or height accepted for a maze.
const MaxDimension = math.MaxInt32

// MaxPixels bounds the number of tiles in a maze and the number of pixels in
// a rendered image. The tile and visited grids take 2 bytes per tile and an
// image takes 4 bytes per pixel.
const MaxPixels = 1 << 28

// checkArea fails with ErrConfig when a width x height maze drawn with
// scale x scale pixels per tile has more than MaxPixels pixels. All three
// arguments must be positive.
func checkArea(width, height, scale int) error {
	if scale > MaxPixels/width || scale > MaxPixels/height ||
		width*scale > MaxPixels/(height*scale) {
		return fmt.Errorf("%w: a %dx%d maze at scale %d has more than %d pixels",
			ErrConfig, width, height, scale, MaxPixels)
	}
	return nil
}

type TileState uint8

const (
	Wall TileState = iota
	Empty
	Start
	End
)

func (t TileState) String() string {
	switch t {
	case Wall:
		return "Wall"
	case Empty:
		return "Empty"
	case Start:
		return "Start"
	case End:
		return "End"
	}
	return fmt.Sprintf("TileState(%d)", uint8(t))
}

// Carved is true for every tile that is part of a passage.
func (t TileState) Carved() bool {
	return t != Wall
}

type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

type neighbour struct {
	Pos Pt
	Dir Direction
}

type Maze struct {
	Width   int
	Height  int
	tiles   Mat[TileState]
	visited Mat[bool]
}

// NewMaze returns a maze of the given size with every tile a Wall. Both
// dimensions must be between 1 and MaxDimension, otherwise there would be no
// tile to start carving from, and the maze can't have more than MaxPixels
// tiles.
func NewMaze(width, height int) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: maze must be at least 1x1, got %dx%d",
			ErrConfig, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: maze dimensions %dx%d exceed %d",
			ErrConfig, width, height, MaxDimension)
	}
	if err := checkArea(width, height, 1); err != nil {
		return nil, err
	}

	size := Pt{width, height}
	return &Maze{
		Width:   width,
		Height:  height,
		tiles:   NewMat[TileState](size),
		visited: InitMat(size, false),
	}, nil
}

// Tile returns the state of the tile at pos, or false if pos lies outside the
// maze.
func (m *Maze) Tile(pos Pt) (TileState, bool) {
	return m.tiles.Get(pos)
}

// Tiles returns every tile in row-major order.
func (m *Maze) Tiles() []TileState {
	return m.tiles.Cells()
}

// Count returns how many tiles are in the given state.
func (m *Maze) Count(state TileState) (n int) {
	for _, t := range m.tiles.Cells() {
		if t == state {
			n++
		}
	}
	return
}

// Find returns the position of the first tile in row-major order that is in
// the given state.
func (m *Maze) Find(state TileState) (Pt, bool) {
	idx := slices.Index(m.tiles.Cells(), state)
	if idx < 0 {
		return Pt{}, false
	}
	return m.tiles.PosOf(idx), true
}

// Populate carves the maze using rng as the only source of randomness. The
// same sequence of values from rng always produces the same maze.
func (m *Maze) Populate(rng RandomSource) {
	start := Pt{rng.IntN(m.Width), rng.IntN(m.Height)}

	stack := []Pt{start}
	m.visited.Put(start, true)

	var neighbours [4]neighbour
	for len(stack) > 0 {
		pos := stack[len(stack)-1]

		neighbours = [4]neighbour{
			{Pt{pos.X, pos.Y + 1}, North},
			{Pt{pos.X + 1, pos.Y}, East},
			{Pt{pos.X, pos.Y - 1}, South},
			{Pt{pos.X - 1, pos.Y}, West},
		}
		rng.Shuffle(len(neighbours), func(i, j int) {
			neighbours[i], neighbours[j] = neighbours[j], neighbours[i]
		})

		if !m.tiles.InBounds(pos) {
			// Only tiles that passed isValidNeighbour are pushed, so this
			// should never happen.
			Assert(false)
			stack = stack[:len(stack)-1]
			continue
		}

		next := -1
		for i := range neighbours {
			if m.isValidNeighbour(neighbours[i].Pos, neighbours[i].Dir) {
				next = i
				break
			}
		}

		// The current tile is carved whether or not it leads anywhere. A
		// tile with no valid neighbour is a dead end and the search backs
		// up from it.
		m.tiles.Put(pos, Empty)
		if next >= 0 {
			m.visited.Put(neighbours[next].Pos, true)
			stack = append(stack, neighbours[next].Pos)
		} else {
			stack = stack[:len(stack)-1]
		}
	}

	m.placeStartAndEnd()
}

// placeStartAndEnd marks the first carved tile as the Start and the last one
// as the End. When only one tile was carved it ends up as the End.
func (m *Maze) placeStartAndEnd() {
	cells := m.tiles.Cells()
	first, last := -1, -1
	for i := range cells {
		if cells[i] == Empty {
			first = i
			break
		}
	}
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i] == Empty {
			last = i
			break
		}
	}

	if first >= 0 {
		cells[first] = Start
	}
	if last >= 0 {
		cells[last] = End
	}
}

// isolation lists the 8 tiles around a candidate together with the
// directions of travel for which each of them is ignored. A tile is ignored
// when it is the tile the move comes from or one of the two diagonal tiles
// next to it.
var isolation = [8]struct {
	Offset  Pt
	Ignored []Direction
}{
	{Pt{1, 0}, []Direction{West}},
	{Pt{0, 1}, []Direction{South}},
	{Pt{1, 1}, []Direction{South, West}},
	{Pt{-1, 0}, []Direction{East}},
	{Pt{-1, 1}, []Direction{South, East}},
	{Pt{0, -1}, []Direction{North}},
	{Pt{1, -1}, []Direction{North, West}},
	{Pt{-1, -1}, []Direction{North, East}},
}

// isValidNeighbour reports whether the search may move into pos, travelling
// in direction dir. pos must be unvisited and must not touch any carved tile
// other than the ones on the side the move comes from. Tiles outside the
// maze count as walls.
func (m *Maze) isValidNeighbour(pos Pt, dir Direction) bool {
	visited, ok := m.visited.Get(pos)
	if !ok || visited {
		return false
	}

	for _, iso := range isolation {
		if slices.Contains(iso.Ignored, dir) {
			continue
		}

		if t, ok := m.tiles.Get(pos.Plus(iso.Offset)); ok && t.Carved() {
			return false
		}
	}
	return true
}

// GenerateMaze creates a width x height maze and carves it with a Rand
// seeded with seed.
func GenerateMaze(width, height int, seed uint64) (*Maze, error) {
	m, err := NewMaze(width, height)
	if err != nil {
		return nil, err
	}
	rng := NewRand(seed)
	m.Populate(&rng)
	return m, nil
}
