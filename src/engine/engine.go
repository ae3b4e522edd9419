package engine

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"lifetorus/src/universe"
)

//Options represents the engine's configurable options
type Options struct {
	Width           uint32
	Height          uint32
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            int64 //random seed for SettleWithRandomData, 0 means the current time
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Area is the copy of the universe field taken at concrete moment
type Area struct {
	Width  uint32
	Height uint32
	Cells  []universe.Cell //row-major
}

//Row returns the cells of the row r
func (a Area) Row(r uint32) []universe.Cell {
	start := int(r) * int(a.Width)
	return a.Cells[start : start+int(a.Width)]
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(s Simulation)
	Start()
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (rs RunningState) String() string {
	switch rs {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "do the step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//Engine drives one toroidal universe
//all mutations go through the control loop, so the universe itself is never touched concurrently
type Engine struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		*universe.Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]universe.Template
	rng       *rand.Rand
	controlCh chan func()
	done      chan struct{}
	closeOnce sync.Once
}

//New creates the engine and starts its control loop
//stateCh may be nil, otherwise every running state change is written there
func New(o *Options, stateCh chan Status) (*Engine, error) {
	if o == nil {
		o = &DefaultOptions
	}
	u, err := universe.New(o.Width, o.Height)
	if err != nil {
		return nil, errors.Wrap(err, "engine: create universe")
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		options:   *o,
		controlCh: make(chan func(), 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]universe.Template{},
		rng:       rand.New(rand.NewSource(seed)),
	}
	e.area.Universe = u
	for _, tmpl := range universe.BuiltinTemplates() {
		e.AddTemplate(tmpl)
	}
	go e.mainLoop()
	return e, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (e *Engine) AddTemplate(tmpl universe.Template) {
	e.area.Lock()
	e.templates[tmpl.Name] = tmpl
	e.area.Unlock()
}

//Templates returns the names of all known templates
func (e *Engine) Templates() []string {
	e.area.Lock()
	defer e.area.Unlock()
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	return names
}

//Settle makes the cells at positions alive
//the cells are set by the control loop, so they never land in the middle of a step
func (e *Engine) Settle(positions ...universe.Position) error {
	return e.exec(func() error {
		e.area.Lock()
		err := e.area.SetLiveCells(positions...)
		live := e.area.Population()
		e.area.Unlock()
		if err != nil {
			return err
		}
		e.setLiveCells(live)
		e.refreshView()
		return nil
	})
}

//SettleTemplate populates the universe with the seeding template placed at the top left corner
func (e *Engine) SettleTemplate(name string) error {
	return e.exec(func() error {
		e.area.Lock()
		tmpl, ok := e.templates[name]
		if !ok {
			e.area.Unlock()
			return errors.Wrapf(ErrUnknownTemplate, "%q", name)
		}
		err := e.area.Place(tmpl, universe.Position{})
		live := e.area.Population()
		e.area.Unlock()
		if err != nil {
			return err
		}
		e.setLiveCells(live)
		e.refreshView()
		return nil
	})
}

//SettleWithRandomData clears the universe and populates it with random data, returns immediately
//does nothing while the simulation is running
func (e *Engine) SettleWithRandomData(density float64) {
	rm := e.Status().RunningMode
	if rm != RunningStateManual && rm != RunningStateFinished {
		return
	}
	e.send(e.clear)
	e.send(func() {
		e.area.Lock()
		positions := universe.RandomPositions(e.rng, e.area.Width(), e.area.Height(), density)
		//positions are generated inside the universe
		_ = e.area.SetLiveCells(positions...)
		e.area.Unlock()
		e.setLiveCells(len(positions))
		e.refreshView()
	})
}

//RegisterViewer registers the viewer - the engine will call the viewer when the state is changed
func (e *Engine) RegisterViewer(v Viewer) {
	e.views = append(e.views, v)
	v.Register(e)
}

//StateCh returns the channel with the simulation status updates
func (e *Engine) StateCh() chan Status {
	return e.stateCh
}

//Status returns current simulation status represented by Status struct
func (e *Engine) Status() Status {
	e.state.Lock()
	defer e.state.Unlock()
	return e.state.Status
}

//Options returns the engine configuration represented by Options struct
func (e *Engine) Options() Options {
	return e.options
}

//Area returns the copy of the current universe field
func (e *Engine) Area() Area {
	e.area.Lock()
	defer e.area.Unlock()
	return Area{Width: e.area.Width(), Height: e.area.Height(), Cells: e.area.Cells()}
}

//LiveCells returns the positions of all live cells in row-major order
func (e *Engine) LiveCells() []universe.Position {
	e.area.Lock()
	defer e.area.Unlock()
	return e.area.LiveCells()
}

//Render writes the current universe with row and column numbers
func (e *Engine) Render(w io.Writer) error {
	e.area.Lock()
	defer e.area.Unlock()
	return e.area.Render(w)
}

//Run starts the simulation, returns immediately
func (e *Engine) Run() {
	e.send(e.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (e *Engine) Stop() {
	e.send(e.stop)
}

//Step does one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (e *Engine) Step() {
	e.send(e.step)
}

//Clear kills all cells and resets all counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (e *Engine) Clear() {
	e.send(e.clear)
}

//Close stops the control loop, returns immediately
//commands sent after Close are dropped
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
	})
}

//send passes the command to the control loop unless the engine is closed
func (e *Engine) send(cmd func()) bool {
	select {
	case e.controlCh <- cmd:
		return true
	case <-e.done:
		return false
	}
}

//exec runs the command by the control loop and waits for its result
//returns ErrClosed if the engine is closed before the command is done
func (e *Engine) exec(cmd func() error) error {
	select {
	case <-e.done:
		return ErrClosed
	default:
	}
	res := make(chan error, 1)
	if !e.send(func() { res <- cmd() }) {
		return ErrClosed
	}
	select {
	case err := <-res:
		return err
	case <-e.done:
		return ErrClosed
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (e *Engine) mainLoop() {
	for {
		select {
		case cmd := <-e.controlCh:
			cmd()
		case <-e.done:
			return
		}
	}
}

func (e *Engine) setLiveCells(n int) {
	e.state.Lock()
	e.state.LiveCells = n
	e.state.Unlock()
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (e *Engine) switchRunningState(to RunningState) {
	e.state.Lock()
	e.state.RunningMode = to
	st := e.state.Status
	e.state.Unlock()
	if e.stateCh != nil {
		select {
		case e.stateCh <- st:
		case <-e.done:
		}
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (e *Engine) run() {
	go func() {
		e.switchRunningState(RunningStateRun)
		skipped := 0
		//buffered: the step can finish after this goroutine has quit on Close
		stepDone := make(chan struct{}, 1)
		for {
			mode := e.Status().RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > e.options.MaxSkippedTicks {
				e.switchRunningState(RunningStateFinished)
				e.refreshView()
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				ok := e.send(func() {
					e.step()
					stepDone <- struct{}{}
				})
				if !ok {
					return
				}
				select {
				case <-stepDone:
				case <-e.done:
					return
				}
			} else {
				skipped++
			}
			if e.options.Interval > 0 {
				select {
				case <-time.After(e.options.Interval):
				case <-e.done:
					return
				}
			}
		}
	}()
}

//stop stops the running cycle
func (e *Engine) stop() {
	if e.Status().RunningMode == RunningStateRun {
		e.switchRunningState(RunningStateManual)
	}
}

//step does the new one generation calculation for the entire universe
//the simulation is finished when the universe dies out, stops changing or MaxSteps is reached
func (e *Engine) step() {
	rm := e.Status().RunningMode
	e.switchRunningState(RunningStateStep)

	e.area.Lock()
	start := time.Now()
	live, changed := e.area.Step()
	elapsed := time.Since(start)
	e.area.Unlock()

	e.state.Lock()
	e.state.IterationNum++
	e.state.LiveCells = live
	e.state.IterationTime = elapsed
	iteration := e.state.IterationNum
	e.state.Unlock()

	maxIter := e.options.MaxSteps
	if live == 0 || !changed || (maxIter != 0 && iteration >= maxIter) {
		e.switchRunningState(RunningStateFinished)
	} else {
		e.switchRunningState(rm)
	}
	e.refreshView()
}

//clear kills all cells, resets all counters
func (e *Engine) clear() {
	e.area.Lock()
	e.area.Reset()
	e.area.Unlock()

	e.state.Lock()
	e.state.IterationNum = 0
	e.state.LiveCells = 0
	e.state.IterationTime = 0
	e.state.Unlock()

	e.switchRunningState(RunningStateManual)
	e.refreshView()
}

//refreshView calls Refresh event for all registered views
func (e *Engine) refreshView() {
	for _, v := range e.views {
		v.Refresh()
	}
}
