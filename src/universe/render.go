package universe

import (
	"bytes"
	"fmt"
	"io"
)

const (
	DeadGlyph  = '◻'
	AliveGlyph = '◼'
)

//Glyph returns the symbol used to print the cell
func (c Cell) Glyph() rune {
	if c == Alive {
		return AliveGlyph
	}
	return DeadGlyph
}

//String prints the universe row by row, one glyph per cell
func (u *Universe) String() string {
	var b bytes.Buffer
	for i, c := range u.cells {
		b.WriteRune(c.Glyph())
		if (i+1)%int(u.width) == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

//Render writes the universe with the column numbers on top and the row number before each row
func (u *Universe) Render(w io.Writer) error {
	var b bytes.Buffer
	b.WriteString(" - ")
	for column := uint32(0); column < u.width; column++ {
		_, _ = fmt.Fprintf(&b, " %v ", column)
	}
	b.WriteByte('\n')
	for row := uint32(0); row < u.height; row++ {
		_, _ = fmt.Fprintf(&b, " %v ", row)
		for column := uint32(0); column < u.width; column++ {
			_, _ = fmt.Fprintf(&b, " %c ", u.cells[u.Index(row, column)].Glyph())
		}
		b.WriteByte('\n')
	}
	_, err := w.Write(b.Bytes())
	return err
}
