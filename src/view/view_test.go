package view

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetorus/src/engine"
	"lifetorus/src/universe"
)

//stubSimulation answers Status, Options and Render, the rest of engine.Simulation is not used by the viewers
type stubSimulation struct {
	engine.Simulation
	status engine.Status
	u      *universe.Universe
}

func (s *stubSimulation) Status() engine.Status { return s.status }

func (s *stubSimulation) Options() engine.Options {
	return engine.Options{Width: s.u.Width(), Height: s.u.Height(), Interval: time.Second, MaxSteps: 10}
}

func (s *stubSimulation) Render(w io.Writer) error { return s.u.Render(w) }

func newStub(t *testing.T) *stubSimulation {
	u, err := universe.New(2, 1)
	require.NoError(t, err)
	require.NoError(t, u.SetLiveCells(universe.Position{Row: 0, Column: 1}))
	return &stubSimulation{u: u}
}

func TestConsoleOutRegister(t *testing.T) {
	var b bytes.Buffer
	c := NewConsoleOut(&b, false)
	c.Register(newStub(t))
	assert.Equal(t, "Running configuration:\n  Dimension: 2 x 1\n  Interval: 1s\n  Max iterations: 10 steps\n", b.String())
}

func TestConsoleOutRefresh(t *testing.T) {
	var b bytes.Buffer
	s := newStub(t)
	c := NewConsoleOut(&b, false)
	c.Register(s)
	b.Reset()

	s.status = engine.Status{RunningMode: engine.RunningStateRun, IterationNum: 9}
	c.Refresh()
	assert.Empty(t, b.String())

	s.status.IterationNum = 10
	c.Refresh()
	assert.Equal(t, "  Iterations done: 10\n", b.String())
	b.Reset()

	s.status = engine.Status{RunningMode: engine.RunningStateManual}
	c.Refresh()
	assert.Empty(t, b.String())

	select {
	case <-c.Done():
		t.Fatal("done before the simulation is finished")
	default:
	}

	s.status = engine.Status{RunningMode: engine.RunningStateFinished, IterationNum: 12, LiveCells: 1}
	c.Refresh()
	c.Refresh()
	<-c.Done()
	out := b.String()
	assert.Contains(t, out, "Finished:")
	assert.Contains(t, out, "  Last iteration: 12\n")
	assert.Contains(t, out, "  Live cells: 1\n")
	assert.Contains(t, out, " 0  ◻  ◼ \n")
}

func TestFieldText(t *testing.T) {
	a := engine.Area{Width: 3, Height: 2, Cells: []universe.Cell{
		universe.Alive, universe.Dead, universe.Dead,
		universe.Dead, universe.Dead, universe.Alive,
	}}
	assert.Equal(t, "#..\n..#", fieldText(a, 10, 10, "#", "."))

	//narrow view discards the columns on the right
	assert.Equal(t, "#.\n..", fieldText(a, 2, 10, "#", "."))

	//short view replaces the last line with the warning
	cropped := fieldText(a, 10, 1, "#", ".")
	assert.Contains(t, cropped, "The field size is larger than the viewing area")
	assert.NotContains(t, cropped, "#")
}
