package main

import (
	"errors"
	"fmt"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/gdamore/tcell/v2"
)

// statusRows is the height of the text block under the field.
const statusRows = 4

var (
	styleSky      = tcell.StyleDefault
	styleGround   = tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)
	styleBase     = tcell.StyleDefault.Foreground(tcell.ColorDeepSkyBlue)
	styleLocked   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRubble   = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	styleHostile  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleIntercep = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBlast    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleDefense  = tcell.StyleDefault.Foreground(tcell.ColorIndianRed)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// viewer renders an engine into a terminal grid.
type viewer struct {
	screen tcell.Screen
	engine *game.Engine
	pilot  *game.Autopilot

	autoOn bool
	paused bool
	speed  int // ticks per frame
	weapon int // index into game.PlayerWeapons
	target game.FacilityID
	status string
}

func newViewer(screen tcell.Screen, engine *game.Engine, fireEvery int) *viewer {
	return &viewer{
		screen: screen,
		engine: engine,
		pilot:  game.NewAutopilot(fireEvery),
		autoOn: true,
		speed:  1,
	}
}

// project maps a field position onto a cols x rows grid.
func project(field game.FieldTuning, cols, rows int, p game.Vec2) (int, int, bool) {
	if cols <= 0 || rows <= 0 || p.X < 0 || p.Y < 0 || p.X >= field.Width || p.Y >= field.Height {
		return 0, 0, false
	}
	return int(p.X / field.Width * float64(cols)), int(p.Y / field.Height * float64(rows)), true
}

// step advances the engine by the current speed.
func (v *viewer) step() {
	if v.paused {
		return
	}
	for i := 0; i < v.speed; i++ {
		if v.autoOn {
			if _, err := v.pilot.Step(v.engine); err != nil && !errors.Is(err, game.ErrAlreadyTerminal) {
				v.status = err.Error()
			}
		}
		rep, err := v.engine.Tick()
		if err != nil {
			return
		}
		if tr := rep.Transition; tr != nil {
			v.status = fmt.Sprintf("T=%d %s → %s (%s)", rep.Tick, tr.From, tr.To, tr.Reason)
		}
	}
}

// handleInput returns false when the viewer should quit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyTab {
			v.cycleTarget()
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case '1', '2', '3', '4':
			v.weapon = int(r - '1')
		case 'a':
			v.autoOn = !v.autoOn
			v.pilot.Reset()
		case 'p':
			v.paused = !v.paused
		case '+', '=':
			v.speed = min(v.speed*2, 8)
		case '-':
			v.speed = max(v.speed/2, 1)
		case 'f', ' ':
			v.fire()
		case 'r':
			v.engine.Reset(v.engine.Seed() + 1)
			v.pilot.Reset()
			v.status = fmt.Sprintf("new session, seed %d", v.engine.Seed())
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// cycleTarget moves the manual target to the next standing facility.
func (v *viewer) cycleTarget() {
	snap := v.engine.Snapshot()
	n := len(snap.Facilities)
	for i := 1; i <= n; i++ {
		id := game.FacilityID((int(v.target) + i) % n)
		if f := snap.Facility(id); f != nil && f.Active && !f.Destroyed {
			v.target = id
			return
		}
	}
}

func (v *viewer) fire() {
	w := game.PlayerWeapons[v.weapon]
	if _, err := v.engine.FireAtFacility(w, v.target); err != nil {
		v.status = err.Error()
		return
	}
	v.status = fmt.Sprintf("%s away at %s", w, v.target)
}

func (v *viewer) put(x, y int, r rune, st tcell.Style) {
	v.screen.SetContent(x, y, r, nil, st)
}

func (v *viewer) text(x, y int, s string) {
	for i, r := range []rune(s) {
		v.put(x+i, y, r, styleText)
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	rows -= statusRows
	if rows < 4 || cols < 20 {
		v.text(0, 0, "terminal too small")
		v.screen.Show()
		return
	}

	snap := v.engine.Snapshot()
	field := snap.Field
	at := func(p game.Vec2, r rune, st tcell.Style) {
		if x, y, ok := project(field, cols, rows, p); ok {
			v.put(x, y, r, st)
		}
	}
	fillRect := func(rc game.Rect, r rune, st tcell.Style) {
		x0, y0, ok0 := project(field, cols, rows, game.Vec2{X: rc.X, Y: rc.Y})
		x1, y1, ok1 := project(field, cols, rows, game.Vec2{X: rc.X + rc.W - 1, Y: rc.Y + rc.H - 1})
		if !ok0 || !ok1 {
			return
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				v.put(x, y, r, st)
			}
		}
	}

	_, gy, _ := project(field, cols, rows, game.Vec2{X: 0, Y: field.GroundY})
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if y >= gy {
				v.put(x, y, '░', styleGround)
			} else {
				v.put(x, y, ' ', styleSky)
			}
		}
	}

	for _, d := range snap.Defenses {
		if d.Active {
			at(d.Pos, 'Δ', styleDefense)
		}
	}
	for i := range snap.Facilities {
		f := &snap.Facilities[i]
		switch {
		case !f.Active:
			fillRect(f.Rect, '·', styleLocked)
		case f.Destroyed:
			fillRect(f.Rect, '▁', styleRubble)
		default:
			fillRect(f.Rect, healthRune(f.HealthFrac()), threatStyle(f.Threat))
		}
	}
	if snap.Base.Destroyed {
		fillRect(snap.Base.Rect, '▁', styleRubble)
	} else {
		fillRect(snap.Base.Rect, '█', styleBase)
	}

	for _, x := range snap.Explosions {
		at(x.Pos, '✶', styleBlast)
	}
	for _, p := range snap.Projectiles {
		at(p.Pos, '•', stylePlayer)
	}
	for _, a := range snap.Aircraft {
		at(a.Pos, '►', stylePlayer)
	}
	for _, m := range snap.Missiles {
		if m.Kind == game.MissileInterceptor {
			at(m.Pos, '^', styleIntercep)
		} else {
			at(m.Pos, 'v', styleHostile)
		}
	}

	for i, line := range v.statusLines(&snap) {
		v.text(0, rows+i, line)
	}
	v.screen.Show()
}

func (v *viewer) statusLines(snap *game.Snapshot) []string {
	s := snap.Session
	auto := "off"
	if v.autoOn {
		auto = "on"
	}
	var inv string
	for i, w := range game.PlayerWeapons {
		sel := " "
		if i == v.weapon {
			sel = "*"
		}
		n := "inf"
		if c := snap.Inventory.Count(w); c != game.Unlimited {
			n = fmt.Sprintf("%d", c)
		}
		inv += fmt.Sprintf("[%d]%s%s %s  ", i+1, sel, w, n)
	}
	target := "-"
	if f := snap.Facility(v.target); f != nil {
		target = f.Name
	}
	return []string{
		fmt.Sprintf("T=%d %s L%d  score %d  time %ds  base %.0f  threat %.2f  x%d",
			snap.Tick, s.Phase, s.Level, s.Score, s.TimeLeftSeconds(), snap.Base.Health, snap.ThreatLevel, v.speed),
		inv,
		fmt.Sprintf("target %s (tab)  f=fire  a=autopilot(%s)  p=pause  +/- speed  r=restart  q=quit", target, auto),
		v.status,
	}
}

func healthRune(frac float64) rune {
	switch {
	case frac > 0.75:
		return '█'
	case frac > 0.5:
		return '▓'
	case frac > 0.25:
		return '▒'
	default:
		return '░'
	}
}

func threatStyle(t game.ThreatLevel) tcell.Style {
	switch t {
	case game.ThreatCritical:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case game.ThreatHigh:
		return tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	case game.ThreatMedium:
		return tcell.StyleDefault.Foreground(tcell.ColorGoldenrod)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorTan)
	}
}
