package game

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultTuning_Valid(t *testing.T) {
	tn := DefaultTuning()
	if err := tn.Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
	if len(tn.Facilities) != tn.Session.MaxLevel {
		t.Fatalf("expected one facility per level, got %d for %d levels", len(tn.Facilities), tn.Session.MaxLevel)
	}
	if tn.Difficulty[0].Enabled {
		t.Fatal("tutorial row must be disabled")
	}
}

func TestDifficultyTable_StrictlyMoreAggressive(t *testing.T) {
	rows := DefaultTuning().Difficulty
	for i := 2; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.AttackChance <= prev.AttackChance || cur.Accuracy <= prev.Accuracy ||
			cur.MissileSpeed <= prev.MissileSpeed || cur.FrequencyMs >= prev.FrequencyMs {
			t.Errorf("level %d row is not more aggressive than level %d: %+v vs %+v", i+1, i, cur, prev)
		}
	}
}

func TestLoadTuning_PartialOverride(t *testing.T) {
	path := writeTuning(t, `
session:
  time_budget_sec: 90
  max_level: 1
weapons:
  guided:
    count: 9
    speed: 6
    damage: 50
facilities:
  - key: alpha
    name: Alpha Depot
    x: 600
    w: 50
    h: 60
    health: 40
    threat: critical
    missiles: 2
    frequency_ms: 3000
    missile_speed: 4
    accuracy: 0.9
`)
	tn, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tn.Session.TimeBudgetSec != 90 {
		t.Errorf("time budget = %d, want 90", tn.Session.TimeBudgetSec)
	}
	if tn.Session.TicksPerSecond != 60 {
		t.Errorf("unset key lost its default: ticks_per_second = %d", tn.Session.TicksPerSecond)
	}
	if tn.Weapons.Guided.Count != 9 || tn.Weapons.Missile.Count != Unlimited {
		t.Errorf("weapon override wrong: guided=%d missile=%d", tn.Weapons.Guided.Count, tn.Weapons.Missile.Count)
	}
	if len(tn.Facilities) != 1 || tn.Facilities[0].Threat != ThreatCritical {
		t.Fatalf("facility list should be replaced: %+v", tn.Facilities)
	}

	e := New(WithTuning(tn))
	if f := e.Facility(0); f == nil || f.Name != "Alpha Depot" || f.Rect.Y != tn.Field.GroundY-60 {
		t.Fatalf("engine did not pick up the facility override: %+v", f)
	}
	if got := e.Session().TimeLeftSeconds(); got != 90 {
		t.Fatalf("engine time left = %d, want 90", got)
	}
}

func TestLoadTuning_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected a wrapped not-exist error, got %v", err)
		}
	})
	t.Run("bad probability", func(t *testing.T) {
		_, err := LoadTuning(writeTuning(t, "opfor:\n  direct_chance: 1.5\n"))
		if err == nil || !strings.Contains(err.Error(), "not a probability") {
			t.Fatalf("expected probability error, got %v", err)
		}
	})
	t.Run("unknown threat", func(t *testing.T) {
		_, err := LoadTuning(writeTuning(t, "facilities:\n  - key: x\n    threat: apocalyptic\n"))
		if err == nil || !strings.Contains(err.Error(), "unknown threat level") {
			t.Fatalf("expected threat parse error, got %v", err)
		}
	})
	t.Run("max level beyond facilities", func(t *testing.T) {
		_, err := LoadTuning(writeTuning(t, `
facilities:
  - {key: a, w: 10, h: 10, health: 10}
`))
		if err == nil || !strings.Contains(err.Error(), "max_level") {
			t.Fatalf("expected max_level error, got %v", err)
		}
	})
	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := LoadTuning(writeTuning(t, "field: [1, 2\n")); err == nil {
			t.Fatal("expected a parse error")
		}
	})
}

func TestThreatLevel_YAMLRoundTrip(t *testing.T) {
	for c := ThreatLow; c <= ThreatCritical; c++ {
		v, err := c.MarshalYAML()
		if err != nil || v != c.String() {
			t.Fatalf("MarshalYAML(%s) = %v, %v", c, v, err)
		}
	}
}

func TestMsToTicks(t *testing.T) {
	tn := DefaultTuning()
	cases := map[float64]int{0: 0, 1000: 60, 300: 18, 3000: 180, 16: 1}
	for ms, want := range cases {
		if got := tn.msToTicks(ms); got != want {
			t.Errorf("msToTicks(%v) = %d, want %d", ms, got, want)
		}
	}
}

func TestLoadTuning_ShippedFileMatchesDefaults(t *testing.T) {
	got, err := LoadTuning(filepath.Join("..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if want := DefaultTuning(); !reflect.DeepEqual(got, want) {
		t.Fatalf("configs/tuning.yaml drifted from DefaultTuning:\n got %+v\nwant %+v", got, want)
	}
}
