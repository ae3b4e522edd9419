package engine

import (
	"io"

	"lifetorus/src/universe"
)

//Simulation is what viewers and the command line see of the engine
type Simulation interface {
	Status() Status
	Options() Options
	Area() Area
	StateCh() chan Status
	Render(w io.Writer) error
	AddTemplate(tmpl universe.Template)
	SettleTemplate(name string) error
	SettleWithRandomData(density float64)
	Settle(positions ...universe.Position) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

var _ Simulation = (*Engine)(nil)
