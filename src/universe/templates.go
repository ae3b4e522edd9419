package universe

import (
	"math/rand"

	"github.com/pkg/errors"
)

//Template represents the seeding template which can be used to settle the universe with predefined data
type Template struct {
	Name      string     //template name
	Descr     string     //template descr
	Positions []Position //live cells relative to the template's top left corner
}

//Size returns the rows and columns occupied by the template
func (t Template) Size() (rows uint32, columns uint32) {
	for _, p := range t.Positions {
		rows = max(rows, p.Row+1)
		columns = max(columns, p.Column+1)
	}
	return
}

//BuiltinTemplates returns the templates known to every universe
func BuiltinTemplates() []Template {
	return []Template{
		{"blinker", "period 2 oscillator", []Position{{0, 1}, {1, 1}, {2, 1}}},
		{"block", "still life 2x2", []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		{"beehive", "still life 3x4", []Position{{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 1}, {2, 2}}},
		{"glider", "moves one cell diagonally every 4 generations", []Position{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
		{"testSample1", "the test sample with 3 stable patterns", []Position{
			{1, 1}, {2, 1},
			{1, 2}, {2, 2},
			{3, 3},
			{2, 4},
			{3, 4},
			{3, 5},
		}},
	}
}

//Place settles the template with its top left corner at origin
//the template wraps around the edges like any other pattern on the torus
func (u *Universe) Place(t Template, origin Position) error {
	if !u.Contains(origin) {
		return errors.Wrapf(ErrOutOfBounds, "origin (%v, %v)", origin.Row, origin.Column)
	}
	rows, columns := t.Size()
	if rows > u.height || columns > u.width {
		return errors.Wrapf(ErrTemplateTooLarge, "%q needs %vx%v, universe is %vx%v", t.Name, columns, rows, u.width, u.height)
	}
	shifted := make([]Position, len(t.Positions))
	for i, p := range t.Positions {
		shifted[i] = Position{
			Row:    (p.Row + origin.Row) % u.height,
			Column: (p.Column + origin.Column) % u.width,
		}
	}
	return u.SetLiveCells(shifted...)
}

//RandomPositions picks every cell of the width x height field with the probability density
func RandomPositions(rng *rand.Rand, width uint32, height uint32, density float64) []Position {
	var positions []Position
	for row := uint32(0); row < height; row++ {
		for column := uint32(0); column < width; column++ {
			if rng.Float64() < density {
				positions = append(positions, Position{row, column})
			}
		}
	}
	return positions
}
