package main

// Mat is a dense grid of size.X columns by size.Y rows. Cells are stored in
// row-major order: cell (x, y) lives at index y*size.X + x, so iterating over
// Cells() visits row 0 from left to right, then row 1 and so on.
type Mat[T any] struct {
	cells []T
	size  Pt
}

// NewMat returns a grid where every cell holds the zero value of T.
func NewMat[T any](size Pt) Mat[T] {
	m := Mat[T]{}
	m.size = size
	m.cells = make([]T, size.Area())
	return m
}

// InitMat returns a grid where every cell holds val.
func InitMat[T any](size Pt, val T) Mat[T] {
	m := NewMat[T](size)
	for i := range m.cells {
		m.cells[i] = val
	}
	return m
}

func (m *Mat[T]) Size() Pt {
	return m.size
}

func (m *Mat[T]) InBounds(pt Pt) bool {
	return pt.X >= 0 &&
		pt.Y >= 0 &&
		pt.Y < m.size.Y &&
		pt.X < m.size.X
}

// Get returns the value at pos. The second return value is false if pos lies
// outside the grid, in which case the first one is the zero value of T.
func (m *Mat[T]) Get(pos Pt) (val T, ok bool) {
	if !m.InBounds(pos) {
		return
	}
	return m.cells[m.index(pos)], true
}

// Set writes val at pos and reports whether pos was inside the grid. Nothing
// is written for an out of bounds pos.
func (m *Mat[T]) Set(pos Pt, val T) bool {
	if !m.InBounds(pos) {
		return false
	}
	m.cells[m.index(pos)] = val
	return true
}

// At is the unchecked version of Get. It must only be called with a pos that
// is already known to be inside the grid.
func (m *Mat[T]) At(pos Pt) T {
	return m.cells[m.index(pos)]
}

// Put is the unchecked version of Set.
func (m *Mat[T]) Put(pos Pt, val T) {
	m.cells[m.index(pos)] = val
}

// Cells exposes the underlying storage in row-major order. Callers must not
// keep the slice around after the grid changes size.
func (m *Mat[T]) Cells() []T {
	return m.cells
}

// PosOf converts an index in Cells() back to a grid position.
func (m *Mat[T]) PosOf(idx int) Pt {
	return Pt{idx % m.size.X, idx / m.size.X}
}

func (m *Mat[T]) index(pos Pt) int {
	return pos.Y*m.size.X + pos.X
}
