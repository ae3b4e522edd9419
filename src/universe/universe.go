package universe

import "github.com/pkg/errors"

/*
	Universe is the fixed size toroidal field of cells
	The cells are stored in the single row-major buffer: index = row * width + column
	Every edge wraps to the opposite one, so each cell has exactly eight neighbours

	The next generation is calculated to the back buffer and the buffers are swapped
	when all cells are done, the partially calculated generation is never visible
*/
type Universe struct {
	width  uint32
	height uint32
	cells  []Cell
	next   []Cell
}

//New creates the universe with all cells dead
func New(width uint32, height uint32) (*Universe, error) {
	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %vx%v", width, height)
	}
	size := int(width) * int(height)
	return &Universe{
		width:  width,
		height: height,
		cells:  make([]Cell, size),
		next:   make([]Cell, size),
	}, nil
}

//Width returns the number of columns
func (u *Universe) Width() uint32 {
	return u.width
}

//Height returns the number of rows
func (u *Universe) Height() uint32 {
	return u.height
}

//Cells returns the copy of the current generation in row-major order
func (u *Universe) Cells() []Cell {
	c := make([]Cell, len(u.cells))
	copy(c, u.cells)
	return c
}

//RawCells returns the current generation buffer itself, without copying
//the slice is borrowed: it must not be modified and it is valid only until
//the next SetLiveCells, Reset or Tick call
func (u *Universe) RawCells() []Cell {
	return u.cells[:len(u.cells):len(u.cells)]
}

//Index converts the row and column to the buffer index
func (u *Universe) Index(row uint32, column uint32) int {
	return int(row)*int(u.width) + int(column)
}

//Position converts the buffer index back to the row and column
func (u *Universe) Position(index int) Position {
	row := index / int(u.width)
	return Position{Row: uint32(row), Column: uint32(index - row*int(u.width))}
}

//Contains reports whether the position lies inside the universe
func (u *Universe) Contains(p Position) bool {
	return p.Row < u.height && p.Column < u.width
}

//SetLiveCells makes the cells at the given positions alive, other cells are left untouched
//all positions are checked first: if any of them is outside the universe
//nothing is changed and ErrOutOfBounds is returned
func (u *Universe) SetLiveCells(positions ...Position) error {
	for _, p := range positions {
		if !u.Contains(p) {
			return errors.Wrapf(ErrOutOfBounds, "(%v, %v) in %vx%v universe", p.Row, p.Column, u.width, u.height)
		}
	}
	for _, p := range positions {
		u.cells[u.Index(p.Row, p.Column)] = Alive
	}
	return nil
}

//LiveCells returns positions of all live cells ordered by row, then by column
func (u *Universe) LiveCells() []Position {
	live := make([]Position, 0)
	for i, c := range u.cells {
		if c == Alive {
			live = append(live, u.Position(i))
		}
	}
	return live
}

//Population returns the count of live cells
func (u *Universe) Population() int {
	n := 0
	for _, c := range u.cells {
		n += int(c.Int())
	}
	return n
}

//Reset kills all cells, the dimensions are kept
func (u *Universe) Reset() {
	for i := range u.cells {
		u.cells[i] = Dead
	}
}

//LiveNeighbours counts live cells around row, column
//the offset -1 wraps to the last row (column), the offset +1 after the last row wraps to the first one
func (u *Universe) LiveNeighbours(row uint32, column uint32) uint8 {
	var count uint8
	h, w := int(u.height), int(u.width)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			//skip the cell itself
			if dr == 0 && dc == 0 {
				continue
			}
			nr := (int(row) + dr + h) % h
			nc := (int(column) + dc + w) % w
			count += u.cells[nr*w+nc].Int()
		}
	}
	return count
}

//Tick advances the universe to the next generation
func (u *Universe) Tick() {
	u.Step()
}

//Step calculates the next generation to the back buffer and swaps the buffers
//returns the count of live cells in the new generation and whether any cell has changed
func (u *Universe) Step() (liveCells int, changed bool) {
	for row := uint32(0); row < u.height; row++ {
		for column := uint32(0); column < u.width; column++ {
			idx := u.Index(row, column)
			cell := u.cells[idx]
			nextState := NextState(cell, u.LiveNeighbours(row, column))
			if nextState == Alive {
				liveCells++
			}
			changed = changed || nextState != cell
			u.next[idx] = nextState
		}
	}
	u.cells, u.next = u.next, u.cells
	return
}

//NextState applies the Life rule to the cell with the given count of live neighbours
func NextState(cell Cell, liveNeighbours uint8) Cell {
	switch {
	//underpopulation
	case cell == Alive && liveNeighbours < 2:
		return Dead
	//stasis
	case cell == Alive && (liveNeighbours == 2 || liveNeighbours == 3):
		return Alive
	//overpopulation
	case cell == Alive && liveNeighbours > 3:
		return Dead
	//birth
	case cell == Dead && liveNeighbours == 3:
		return Alive
	}
	return cell
}
