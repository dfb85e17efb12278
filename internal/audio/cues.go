// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"math"
	"time"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue is one kind of sound effect.
type Cue int

const (
	CueLaunch    Cue = iota // hostile launch
	CueHit                  // facility hit
	CueIntercept            // player ordnance lost
	CueBaseHit
	CueDestroyed // facility destroyed
	CueLevel
	CueVictory
	CueDefeat

	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueLaunch:
		return "launch"
	case CueHit:
		return "hit"
	case CueIntercept:
		return "intercept"
	case CueBaseHit:
		return "base_hit"
	case CueDestroyed:
		return "destroyed"
	case CueLevel:
		return "level"
	case CueVictory:
		return "victory"
	case CueDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// CuesFor maps a tick report to the cues it should trigger, each at most once.
func CuesFor(rep game.TickReport) []Cue {
	var out []Cue
	if rep.Launches > 0 {
		out = append(out, CueLaunch)
	}
	if rep.Hits > 0 {
		out = append(out, CueHit)
	}
	if rep.Intercepts > 0 {
		out = append(out, CueIntercept)
	}
	if rep.BaseHits > 0 {
		out = append(out, CueBaseHit)
	}
	if len(rep.DestroyedFacilities) > 0 {
		out = append(out, CueDestroyed)
	}
	if tr := rep.Transition; tr != nil {
		switch tr.To {
		case game.PhaseVictory:
			out = append(out, CueVictory)
		case game.PhaseDefeat:
			out = append(out, CueDefeat)
		default:
			out = append(out, CueLevel)
		}
	}
	return out
}

// newVolume scales a stream by a linear volume; 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a sine note of fixed length.
func tone(sr beep.SampleRate, freq float64, d time.Duration, vol float64) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(d))
	}
	return newVolume(beep.Take(sr.N(d), sine), vol)
}

// rumble is a decaying low noise burst for explosions.
type rumble struct {
	sr   beep.SampleRate
	pos  int
	n    int
	seed uint32
}

func newRumble(sr beep.SampleRate, d time.Duration) *rumble {
	return &rumble{sr: sr, n: sr.N(d), seed: 0x2545f491}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if r.pos >= r.n {
			return i, i > 0
		}
		t := float64(r.pos) / float64(r.sr)
		env := math.Exp(-t * 6)
		r.seed = r.seed*1664525 + 1013904223
		noise := float64(r.seed)/float64(math.MaxUint32)*2 - 1
		v := env * (0.3*noise + 0.4*math.Sin(2*math.Pi*55*t))
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// build returns the streamer for a cue at volume vol.
func build(c Cue, sr beep.SampleRate, vol float64) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueLaunch:
		return tone(sr, 330, 60*ms, 0.25*vol)
	case CueHit:
		return tone(sr, 880, 50*ms, 0.35*vol)
	case CueIntercept:
		return tone(sr, 220, 80*ms, 0.3*vol)
	case CueBaseHit:
		return newVolume(newRumble(sr, 350*ms), 0.6*vol)
	case CueDestroyed:
		return beep.Mix(
			newVolume(newRumble(sr, 700*ms), 0.8*vol),
			tone(sr, 110, 300*ms, 0.3*vol),
		)
	case CueLevel:
		return beep.Seq(tone(sr, 523, 120*ms, 0.4*vol), tone(sr, 784, 180*ms, 0.4*vol))
	case CueVictory:
		return beep.Seq(
			tone(sr, 523, 150*ms, 0.4*vol),
			tone(sr, 659, 150*ms, 0.4*vol),
			tone(sr, 1046, 400*ms, 0.4*vol),
		)
	case CueDefeat:
		return beep.Seq(tone(sr, 392, 250*ms, 0.4*vol), tone(sr, 196, 600*ms, 0.4*vol))
	default:
		return beep.Silence(0)
	}
}
