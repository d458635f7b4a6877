package main

// Pt is a grid coordinate. X grows to the east and Y grows to the north, in
// the sense of the carving directions. In the rendered image, Y is the pixel
// row.
type Pt struct {
	X int
	Y int
}

func (p Pt) Plus(other Pt) Pt {
	return Pt{p.X + other.X, p.Y + other.Y}
}

func (p Pt) Times(multiply int) Pt {
	return Pt{p.X * multiply, p.Y * multiply}
}

// Area is the number of cells in a grid of this size.
func (p Pt) Area() int {
	return p.X * p.Y
}
