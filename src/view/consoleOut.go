package view

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"

	"lifetorus/src/engine"
)

//ConsoleOut is the non-interactive viewer, prints the progress and the final universe
type ConsoleOut struct {
	s         engine.Simulation
	w         io.Writer
	au        aurora.Aurora
	startTime time.Time
	finished  chan struct{}
	once      sync.Once
}

func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), finished: make(chan struct{})}
}

//Done is closed when the finished simulation is printed
func (c *ConsoleOut) Done() <-chan struct{} {
	return c.finished
}

func (c *ConsoleOut) Refresh() {
	st := c.s.Status()
	if st.RunningMode == engine.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		_, _ = fmt.Fprintln(c.w, c.au.Green("\nFinished:"))
		c.printProp("Last iteration", st.IterationNum)
		c.printProp("Live cells", st.LiveCells)
		c.printProp("Total time", totalTime)
		_ = c.s.Render(c.w)
		c.once.Do(func() { close(c.finished) })
	} else if st.RunningMode == engine.RunningStateRun {
		if st.IterationNum%10 == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(s engine.Simulation) {
	c.s = s
	o := c.s.Options()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	c.printProp("Dimension", fmt.Sprintf("%v x %v", o.Width, o.Height))
	c.printProp("Interval", o.Interval)
	c.printProp("Max iterations", fmt.Sprintf("%v steps", o.MaxSteps))
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
	_ = c.s.Render(c.w)
}

func (c *ConsoleOut) printProp(name string, value interface{}) {
	_, _ = fmt.Fprintf(c.w, "  %s: %v\n", c.au.Cyan(name), value)
}
