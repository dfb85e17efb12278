package audio

import (
	"sync"
	"time"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// cueCooldown is the minimum ticks between two plays of the same cue, so a
// salvo does not stack dozens of voices.
var cueCooldown = [cueCount]int{
	CueLaunch:    6,
	CueHit:       4,
	CueIntercept: 6,
	CueBaseHit:   10,
	CueDestroyed: 20,
}

// Player turns tick reports into sounds. A Player that failed to initialise
// (or was never initialised) stays silent but still tracks what it would
// have played.
type Player struct {
	Volume float64

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastTick    int
	lastPlayed  [cueCount]int
	played      [cueCount]int
}

// NewPlayer creates a silent player at full volume.
func NewPlayer() *Player {
	p := &Player{Volume: 1, mixer: &beep.Mixer{}}
	p.resetCooldowns()
	return p
}

func (p *Player) resetCooldowns() {
	for i := range p.lastPlayed {
		p.lastPlayed[i] = -1 << 30
	}
}

// Init opens the audio device. A failure leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every voice.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play queues the cues for one tick report.
func (p *Player) Play(rep game.TickReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rep.Tick < p.lastTick {
		// Engine reset.
		p.resetCooldowns()
	}
	p.lastTick = rep.Tick
	for _, c := range CuesFor(rep) {
		if rep.Tick-p.lastPlayed[c] < cueCooldown[c] {
			continue
		}
		p.lastPlayed[c] = rep.Tick
		p.played[c]++
		if !p.initialized {
			continue
		}
		s := build(c, sampleRate, p.Volume)
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
}

// Played returns how many times cue c has been triggered.
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}
