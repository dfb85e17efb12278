package audio

import (
	"slices"
	"testing"
	"time"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/gopxl/beep"
)

func TestCuesFor(t *testing.T) {
	cases := []struct {
		name string
		rep  game.TickReport
		want []Cue
	}{
		{"quiet tick", game.TickReport{Tick: 3}, nil},
		{"salvo", game.TickReport{Launches: 3}, []Cue{CueLaunch}},
		{"hit and kill", game.TickReport{Hits: 2, DestroyedFacilities: []game.FacilityID{game.FacilityKestrel}}, []Cue{CueHit, CueDestroyed}},
		{"base and intercept", game.TickReport{BaseHits: 1, Intercepts: 1}, []Cue{CueIntercept, CueBaseHit}},
		{"level", game.TickReport{Transition: &game.PhaseTransition{To: game.PhaseLevel}}, []Cue{CueLevel}},
		{"victory", game.TickReport{Transition: &game.PhaseTransition{To: game.PhaseVictory}}, []Cue{CueVictory}},
		{"defeat", game.TickReport{BaseHits: 1, Transition: &game.PhaseTransition{To: game.PhaseDefeat}}, []Cue{CueBaseHit, CueDefeat}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CuesFor(tc.rep); !slices.Equal(got, tc.want) {
				t.Fatalf("CuesFor = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlayer_CooldownWithoutDevice(t *testing.T) {
	p := NewPlayer()
	for tick := 1; tick <= 12; tick++ {
		p.Play(game.TickReport{Tick: tick, Launches: 1})
	}
	// Launch cooldown is 6 ticks: plays on 1 and 7.
	if got := p.Played(CueLaunch); got != 2 {
		t.Fatalf("launch played %d times, want 2", got)
	}

	// A reset engine starts counting from tick 1 again.
	p.Play(game.TickReport{Tick: 1, Launches: 1})
	if got := p.Played(CueLaunch); got != 3 {
		t.Fatalf("launch after reset played %d times, want 3", got)
	}
	p.Close()
}

func TestPlayer_FollowsEngine(t *testing.T) {
	e := game.New(game.WithSeed(4))
	p := NewPlayer()
	for i := 0; i < 4; i++ {
		if _, err := e.FireAtFacility(game.WeaponMissile, game.FacilityKestrel); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 300 && !e.Phase().Terminal(); i++ {
		rep, err := e.Tick()
		if err != nil {
			t.Fatal(err)
		}
		p.Play(rep)
	}
	if p.Played(CueHit) == 0 {
		t.Fatal("no hit cue for four missiles on the tutorial facility")
	}
}

func TestBuild_StreamsEndAndHaveSound(t *testing.T) {
	sr := beep.SampleRate(8000)
	for c := Cue(0); c < cueCount; c++ {
		s := build(c, sr, 1)
		buf := make([][2]float64, 512)
		total, peak := 0, 0.0
		for {
			n, ok := s.Stream(buf)
			total += n
			for _, smp := range buf[:n] {
				peak = max(peak, smp[0], -smp[0])
			}
			if !ok || total > sr.N(5*time.Second) {
				break
			}
		}
		if total == 0 || total > sr.N(2*time.Second) {
			t.Errorf("%s: %d samples", c, total)
		}
		if peak == 0 {
			t.Errorf("%s is silent", c)
		}
	}
}
