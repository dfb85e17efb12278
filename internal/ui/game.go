// Package ui is the ebiten front end: it drives the engine from Update,
// renders snapshots in Draw, and turns mouse and keyboard input into fire
// orders.
package ui

import (
	"errors"
	"fmt"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// statusTicks is how long a status message stays on screen.
const statusTicks = 180

// speeds are the selectable simulation rates in ticks per frame.
var speeds = []float64{0, 0.5, 1, 2, 4}

// Publisher receives every tick report. snap is only called when the
// publisher wants a frame.
type Publisher interface {
	Publish(rep game.TickReport, snap func() game.Snapshot)
}

// SoundPlayer turns tick reports into audio cues.
type SoundPlayer interface {
	Play(rep game.TickReport)
}

// Option configures a Game.
type Option func(*Game)

// WithPublisher streams ticks to p (the spectator feed).
func WithPublisher(p Publisher) Option {
	return func(g *Game) { g.publisher = p }
}

// WithSound plays cues through s.
func WithSound(s SoundPlayer) Option {
	return func(g *Game) { g.sound = s }
}

// Game implements ebiten.Game around one engine.
type Game struct {
	engine    *game.Engine
	feed      *EventFeed
	autopilot *game.Autopilot
	publisher Publisher
	sound     SoundPlayer

	width      int
	height     int
	gameWidth  int // playfield width (feed panel takes the rest)
	gameHeight int
	offX       int // pixel offset from window left to battlefield left
	offY       int

	simSpeed  float64 // ticks per frame, 0 = paused
	tickAccum float64
	selected  int // index into game.PlayerWeapons
	autoOn    bool
	showHUD   bool

	prevKeys map[ebiten.Key]bool

	status     string
	statusLeft int

	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image
}

// New wraps an engine. The window size follows the engine's field tuning.
func New(engine *game.Engine, opts ...Option) *Game {
	field := engine.Tuning().Field
	g := &Game{
		engine:     engine,
		feed:       NewEventFeed(),
		autopilot:  game.NewAutopilot(0),
		gameWidth:  int(field.Width),
		gameHeight: int(field.Height),
		offX:       borderWidth,
		offY:       borderWidth,
		simSpeed:   1,
		showHUD:    true,
		prevKeys:   map[ebiten.Key]bool{},
	}
	g.width = g.offX*2 + g.gameWidth + feedPanelWidth
	g.height = g.offY*2 + g.gameHeight
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	for _, o := range opts {
		o(g)
	}
	g.feed.Pull(engine.Log())
	return g
}

// Size returns the window size the game lays out at.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.handleInput()
	if g.statusLeft > 0 {
		g.statusLeft--
	}

	if g.simSpeed <= 0 || g.engine.Phase().Terminal() {
		return nil
	}

	// For speeds > 1 run multiple ticks per frame; below 1 accumulate.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		if !g.simTick() {
			g.tickAccum = 0
			break
		}
	}
	return nil
}

// simTick runs one engine tick and fans the report out. It returns false
// once the session has ended.
func (g *Game) simTick() bool {
	if g.autoOn {
		if _, err := g.autopilot.Step(g.engine); err != nil && !errors.Is(err, game.ErrAlreadyTerminal) {
			g.setStatus("autopilot: " + err.Error())
		}
	}
	rep, err := g.engine.Tick()
	if err != nil {
		return false
	}
	g.feed.Pull(g.engine.Log())
	if g.sound != nil {
		g.sound.Play(rep)
	}
	if g.publisher != nil {
		g.publisher.Publish(rep, g.engine.Snapshot)
	}
	if tr := rep.Transition; tr != nil {
		switch tr.To {
		case game.PhaseVictory, game.PhaseDefeat:
			g.setStatus(fmt.Sprintf("%s (%s): R to restart, C to copy report", tr.To, tr.Reason))
		default:
			g.setStatus(fmt.Sprintf("level %d", tr.ToLevel))
		}
	}
	return !g.engine.Phase().Terminal()
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusLeft = statusTicks
}

// justPressed reports a key going down this frame and records it for the next.
func (g *Game) justPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

// handleInput processes keys (edge-triggered) and fire clicks.
func (g *Game) handleInput() {
	cur := map[ebiten.Key]bool{}

	// Weapon select: 1-4.
	weaponKeys := [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}
	for i, k := range weaponKeys {
		if i < len(game.PlayerWeapons) && g.justPressed(cur, k) {
			g.selected = i
		}
	}

	if g.justPressed(cur, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.justPressed(cur, ebiten.KeyA) {
		g.autoOn = !g.autoOn
		g.autopilot.Reset()
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if g.justPressed(cur, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.justPressed(cur, ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.justPressed(cur, ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}

	if g.justPressed(cur, ebiten.KeyR) {
		g.restart()
	}
	if g.justPressed(cur, ebiten.KeyC) {
		g.copyReport()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.fireAt(mx, my)
	}

	g.prevKeys = cur
}

// fireAt launches the selected weapon at a screen position.
func (g *Game) fireAt(mx, my int) {
	if mx < g.offX || mx >= g.offX+g.gameWidth || my < g.offY || my >= g.offY+g.gameHeight {
		return
	}
	w := g.Weapon()
	aim := game.Vec2{X: float64(mx - g.offX), Y: float64(my - g.offY)}
	if _, err := g.engine.Fire(w, g.engine.Origin(), aim); err != nil {
		g.setStatus(fireStatus(w, err))
	}
}

// fireStatus is the banner text for a rejected shot.
func fireStatus(w game.WeaponType, err error) string {
	switch {
	case errors.Is(err, game.ErrInsufficientAmmo):
		return fmt.Sprintf("no %s left", w)
	case errors.Is(err, game.ErrInvalidTarget):
		return "aim away from the launch point"
	case errors.Is(err, game.ErrAlreadyTerminal):
		return "session over: R to restart"
	default:
		return err.Error()
	}
}

// restart begins a fresh playthrough on the next seed.
func (g *Game) restart() {
	seed := g.engine.Seed() + 1
	g.engine.Reset(seed)
	g.feed.Clear()
	g.feed.Pull(g.engine.Log())
	g.autopilot.Reset()
	g.tickAccum = 0
	g.setStatus(fmt.Sprintf("new session, seed %d", seed))
}

// copyReport puts the after-action report on the system clipboard.
func (g *Game) copyReport() {
	if err := clipboard.WriteAll(g.engine.Report().Format()); err != nil {
		g.setStatus("clipboard: " + err.Error())
		return
	}
	g.setStatus("report copied to clipboard")
}

// Weapon returns the selected weapon.
func (g *Game) Weapon() game.WeaponType {
	return game.PlayerWeapons[g.selected]
}

// Feed exposes the on-screen event feed.
func (g *Game) Feed() *EventFeed { return g.feed }

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
