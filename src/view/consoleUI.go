package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifetorus/src/engine"
	"lifetorus/src/universe"
)

const (
	viewHeader        = "header"
	viewConfiguration = "configuration"
	viewStatus        = "status"
	viewField         = "field"
	viewHelp          = "help"

	leftColumnWidth = 28
	minWindowHeight = 20
	headerHeight    = 3
	helpHeight      = 5
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive gocui viewer
type ConsoleUI struct {
	s          engine.Simulation
	g          *gocui.Gui
	k          []keyBindings
	density    float64
	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[engine.RunningState]string{
		engine.RunningStateManual:   aurora.Colorize(engine.RunningStateManual.String(), aurora.BlueFg).String(),
		engine.RunningStateStep:     engine.RunningStateStep.String(),
		engine.RunningStateRun:      aurora.Colorize(engine.RunningStateRun.String(), aurora.CyanFg).String(),
		engine.RunningStateFinished: aurora.Colorize(engine.RunningStateFinished.String(), aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the terminal UI, density is used by the "settle with random" command
func NewViewTerminal(density float64) *ConsoleUI {

	var err error
	t := ConsoleUI{
		density:    density,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC,
			"^C",
			"Exit",
			t.cmdQuit,
			""},
		{'n',
			"N",
			"Next step",
			t.cmdNextRound,
			""},
		{'r',
			"R",
			"Run",
			t.cmdRun,
			""},
		{'s',
			"S",
			"Stop",
			t.cmdStop,
			""},
		{'c',
			"C",
			"Clear",
			t.cmdClear,
			""},
		{'w',
			"W",
			"Settle with random",
			t.cmdSettleWithRandom,
			""},
		{gocui.MouseLeft,
			"MOUSE",
			"Seed the cell",
			t.cmdMouseClick,
			viewField},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(s engine.Simulation) {
	t.s = s
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.s.Area())
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField(a engine.Area) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View(viewField)
		if e != nil {
			return e
		}
		//the entire field is redrawing at once now
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, fieldText(a, maxW, maxH, t.liveFiller, t.deadFiller))
		return nil
	})
}

//fieldText draws the area with one filler per cell, the data outside maxW x maxH is discarded
//the last visible line is replaced by the warning when the area does not fit
func fieldText(a engine.Area, maxW int, maxH int, liveFiller string, deadFiller string) string {
	crop := int(a.Width) > maxW || int(a.Height) > maxH

	var b bytes.Buffer
	for i := 0; i < int(a.Height); i++ {
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, c := range a.Row(uint32(i)) {
			if j >= maxW {
				break
			}
			if c.IsAlive() {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus() {
	s := t.s.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View(viewStatus); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.s.Options()
		if v, e := g.View(viewConfiguration); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
			_, _ = fmt.Fprintln(v, t.renderProp("Topology", "%v", "torus"))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		for _, name := range []string{viewConfiguration, viewStatus, viewField} {
			_ = g.DeleteView(name)
		}
		return nil
	}
	if _, err := t.headerLayout(g, headerHeight, "\"The Life\" on the torus"); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	bottom := maxY - helpHeight
	middle := headerHeight + (bottom-headerHeight)/2

	if v, err := g.SetView(viewConfiguration, 0, headerHeight, leftColumnWidth, middle); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView(viewStatus, 0, middle+1, leftColumnWidth, bottom); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	v, err := g.SetView(viewField, leftColumnWidth+1, headerHeight, maxX-1, bottom)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		a := t.s.Area()
		v.Title = fmt.Sprintf("Torus %vx%v", a.Width, a.Height)
		v.Frame = true
	}
	t.renderField(t.s.Area())

	if v, err := g.SetView(viewHelp, -1, bottom, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, t.helpText())
	}

	return nil
}

func (t *ConsoleUI) helpText() string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, k := range t.k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

//headerLayout draws the centered title, the text is cut when the terminal is too narrow
func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView(viewHeader, -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			text = text[:max(maxX, 0)]
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.s.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.s.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.s.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.s.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.s.SettleWithRandomData(t.density)
	return nil
}

//cmdMouseClick seeds the clicked cell, seeding never kills a live cell
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	if cx+ox < 0 || cy+oy < 0 {
		return nil
	}
	p := universe.Position{Row: uint32(cy + oy), Column: uint32(cx + ox)}
	//clicks outside the field are ignored
	_ = t.s.Settle(p)
	return nil
}
