package main

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardinal = []Pt{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

func carved(m *Maze, pos Pt) bool {
	t, ok := m.Tile(pos)
	return ok && t.Carved()
}

// checkPerfectMaze checks that the carved tiles form a tree of corridors one
// tile wide: connected, without loops, and with diagonal contacts only where
// a corridor turns a corner.
func checkPerfectMaze(t *testing.T, m *Maze) {
	t.Helper()

	nCarved := 0
	nEdges := 0
	var first Pt
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			pos := Pt{x, y}
			if !carved(m, pos) {
				continue
			}
			if nCarved == 0 {
				first = pos
			}
			nCarved++
			if carved(m, pos.Plus(Pt{1, 0})) {
				nEdges++
			}
			if carved(m, pos.Plus(Pt{0, 1})) {
				nEdges++
			}

			// Two carved tiles that touch diagonally must share a carved
			// orthogonal neighbour.
			for _, d := range []Pt{{1, 1}, {-1, 1}} {
				if carved(m, pos.Plus(d)) {
					assert.True(t,
						carved(m, pos.Plus(Pt{d.X, 0})) || carved(m, pos.Plus(Pt{0, d.Y})),
						"diagonal contact at %v and %v", pos, pos.Plus(d))
				}
			}
		}
	}
	require.Greater(t, nCarved, 0)
	assert.Equal(t, nCarved-1, nEdges, "carved tiles contain a loop")

	// Every carved tile is reachable from every other one.
	seen := InitMat(Pt{m.Width, m.Height}, false)
	seen.Put(first, true)
	queue := []Pt{first}
	nReached := 0
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		nReached++
		for _, d := range cardinal {
			n := pos.Plus(d)
			if carved(m, n) && !seen.At(n) {
				seen.Put(n, true)
				queue = append(queue, n)
			}
		}
	}
	assert.Equal(t, nCarved, nReached, "carved tiles are not connected")
}

func TestNewMaze_RejectsDegenerateDimensions(t *testing.T) {
	for _, dims := range []Pt{{0, 5}, {5, 0}, {0, 0}, {-1, 3}} {
		m, err := NewMaze(dims.X, dims.Y)
		assert.ErrorIs(t, err, ErrConfig, "%v", dims)
		assert.Nil(t, m)
	}
}

func TestNewMaze_RejectsTooManyTiles(t *testing.T) {
	for _, dims := range []Pt{{2000000000, 2000000000}, {MaxPixels/2 + 1, 2}, {MaxPixels + 1, 1}} {
		m, err := NewMaze(dims.X, dims.Y)
		assert.ErrorIs(t, err, ErrConfig, "%v", dims)
		assert.Nil(t, m)
	}
}

func TestMaze_Find(t *testing.T) {
	m, err := GenerateMaze(5, 5, 0)
	require.NoError(t, err)

	start, ok := m.Find(Start)
	require.True(t, ok)
	assert.Equal(t, Pt{0, 0}, start)
	end, ok := m.Find(End)
	require.True(t, ok)
	assert.Equal(t, Pt{4, 4}, end)

	m, err = GenerateMaze(1, 1, 0)
	require.NoError(t, err)
	_, ok = m.Find(Start)
	assert.False(t, ok)
}

func TestNewMaze_AllWalls(t *testing.T) {
	m, err := NewMaze(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, m.Count(Wall))
	for _, v := range m.visited.Cells() {
		assert.False(t, v)
	}
}

func TestPopulate_SingleTileBecomesEnd(t *testing.T) {
	m, err := GenerateMaze(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []TileState{End}, m.Tiles())
}

func TestPopulate_StartAndEnd(t *testing.T) {
	for seed := range uint64(20) {
		m, err := GenerateMaze(17, 11, seed)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Count(Start))
		assert.Equal(t, 1, m.Count(End))

		// Start is the first carved tile and End the last one in row-major
		// order.
		tiles := m.Tiles()
		firstCarved, lastCarved := -1, -1
		for i, tile := range tiles {
			if tile.Carved() {
				if firstCarved < 0 {
					firstCarved = i
				}
				lastCarved = i
			}
		}
		assert.Equal(t, Start, tiles[firstCarved])
		assert.Equal(t, End, tiles[lastCarved])
	}
}

func TestPopulate_PerfectMaze(t *testing.T) {
	dims := []Pt{{2, 2}, {2, 7}, {5, 5}, {9, 3}, {30, 30}, {64, 17}, {1, 12}}
	for _, d := range dims {
		for seed := range uint64(10) {
			m, err := GenerateMaze(d.X, d.Y, seed)
			require.NoError(t, err)
			checkPerfectMaze(t, m)
		}
	}
}

func TestPopulate_CarvedTilesWereVisited(t *testing.T) {
	m, err := GenerateMaze(40, 25, 1234)
	require.NoError(t, err)
	for i, tile := range m.Tiles() {
		if tile.Carved() {
			assert.True(t, m.visited.Cells()[i])
		}
	}
}

func TestPopulate_SingleRowIsACorridor(t *testing.T) {
	// With a single row there are no diagonal neighbours, so the search
	// carves the whole row.
	m, err := GenerateMaze(10, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Count(Wall))
	assert.Equal(t, Start, m.Tiles()[0])
	assert.Equal(t, End, m.Tiles()[9])
}

func TestPopulate_SameSeedSameMaze(t *testing.T) {
	m1, err := GenerateMaze(50, 40, 42)
	require.NoError(t, err)
	m2, err := GenerateMaze(50, 40, 42)
	require.NoError(t, err)
	assert.Equal(t, m1.Tiles(), m2.Tiles())

	m3, err := GenerateMaze(50, 40, 43)
	require.NoError(t, err)
	assert.NotEqual(t, m1.Tiles(), m3.Tiles())
}

func TestPopulate_AcceptsAnyRandomSource(t *testing.T) {
	m, err := NewMaze(20, 20)
	require.NoError(t, err)
	m.Populate(rand.New(rand.NewPCG(1, 2)))
	checkPerfectMaze(t, m)
}

func TestIsValidNeighbour(t *testing.T) {
	m, err := NewMaze(5, 5)
	require.NoError(t, err)

	// A corridor coming up from the bottom: (2, 0) and (2, 1) are carved and
	// the search is at (2, 1).
	for _, pos := range []Pt{{2, 0}, {2, 1}} {
		m.tiles.Put(pos, Empty)
		m.visited.Put(pos, true)
	}

	// Straight ahead is fine: the carved tile behind and the diagonals next
	// to it are ignored.
	assert.True(t, m.isValidNeighbour(Pt{2, 2}, North))
	// Turning is fine as well.
	assert.True(t, m.isValidNeighbour(Pt{1, 1}, West))
	assert.True(t, m.isValidNeighbour(Pt{3, 1}, East))
	// Visited tiles are never valid.
	assert.False(t, m.isValidNeighbour(Pt{2, 0}, South))
	// Out of bounds tiles are never valid.
	assert.False(t, m.isValidNeighbour(Pt{2, 5}, North))
	assert.False(t, m.isValidNeighbour(Pt{-1, 1}, West))

	// A tile that would touch the corridor diagonally is rejected.
	assert.False(t, m.isValidNeighbour(Pt{3, 2}, West))
	// A tile next to another branch is rejected.
	m.tiles.Put(Pt{4, 3}, Empty)
	m.visited.Put(Pt{4, 3}, true)
	assert.False(t, m.isValidNeighbour(Pt{3, 3}, North))
	assert.False(t, m.isValidNeighbour(Pt{3, 2}, East))
}

func TestTileState_String(t *testing.T) {
	assert.Equal(t, "Wall", Wall.String())
	assert.Equal(t, "End", End.String())
	assert.Equal(t, "West", West.String())
	assert.Equal(t, "TileState(9)", TileState(9).String())
}

func BenchmarkPopulate(b *testing.B) {
	for b.Loop() {
		_, err := GenerateMaze(500, 500, 0)
		Check(err)
	}
}
