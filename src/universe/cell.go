package universe

//Cell is the state of one cell of the universe
//the numeric value is a part of the contract: Dead is 0, Alive is 1
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Int converts the cell to the number it contributes to a neighbour count
func (c Cell) Int() uint8 {
	if c == Alive {
		return 1
	}
	return 0
}

//IsAlive reports whether the cell is alive
func (c Cell) IsAlive() bool {
	return c == Alive
}

func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}

//Position is the row/column coordinate of a cell
type Position struct {
	Row    uint32
	Column uint32
}
