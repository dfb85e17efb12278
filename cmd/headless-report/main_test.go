package main

import (
	"testing"

	"github.com/Garsondee/Salvo-Sense/internal/game"
)

func TestClassifyPacing(t *testing.T) {
	cases := []struct {
		name string
		rs   runStats
		want string
	}{
		{
			name: "victory",
			rs:   runStats{outcome: game.Outcome{Phase: game.PhaseVictory, Level: 7}, stats: game.SessionStats{ShotsFired: 40, Hits: 30}, baseLeft: 60},
			want: "cleared",
		},
		{
			name: "early overrun",
			rs:   runStats{outcome: game.Outcome{Phase: game.PhaseDefeat, Level: 2}, stats: game.SessionStats{ShotsFired: 10, Hits: 5}},
			want: "overrun_early",
		},
		{
			name: "late overrun",
			rs:   runStats{outcome: game.Outcome{Phase: game.PhaseDefeat, Level: 5}, stats: game.SessionStats{ShotsFired: 10, Hits: 5}},
			want: "overrun",
		},
		{
			name: "timeout",
			rs:   runStats{outcome: game.Outcome{Phase: game.PhaseDefeat, Level: 4}, stats: game.SessionStats{ShotsFired: 10, Hits: 5}, baseLeft: 35},
			want: "timed_out",
		},
		{
			name: "never hit",
			rs:   runStats{outcome: game.Outcome{Phase: game.PhaseDefeat, Level: 1}, stats: game.SessionStats{ShotsFired: 12}, baseLeft: 100},
			want: "no_hits",
		},
		{
			name: "still running",
			rs:   runStats{outcome: game.Outcome{Phase: game.PhaseLevel, Level: 3}, baseLeft: 100},
			want: "unfinished",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyPacing(tc.rs); got != tc.want {
				t.Fatalf("classifyPacing = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOutcomeCountsAndJoin(t *testing.T) {
	all := []runStats{
		{outcome: game.Outcome{Description: "defeat_time_expired"}},
		{outcome: game.Outcome{Description: "victory_all_facilities_destroyed"}},
		{outcome: game.Outcome{Description: "defeat_time_expired"}},
	}
	counts := outcomeCounts(all)
	if counts["defeat_time_expired"] != 2 || counts["victory_all_facilities_destroyed"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	got := joinCounts(counts)
	want := "defeat_time_expired=2,victory_all_facilities_destroyed=1"
	if got != want {
		t.Fatalf("joinCounts = %q, want %q", got, want)
	}
	if joinCounts(nil) != "none" {
		t.Fatalf("empty counts should render as none")
	}
}

func TestAvgHelpers(t *testing.T) {
	if got := avg(10, 4); got != 2.5 {
		t.Fatalf("avg(10,4) = %v, want 2.5", got)
	}
	if got := avg(10, 0); got != 0 {
		t.Fatalf("avg with no runs = %v, want 0", got)
	}
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("avgTickString(nil) = %q, want n/a", got)
	}
	if got := avgTickString([]int{100, 201}); got != "150.5" {
		t.Fatalf("avgTickString = %q, want 150.5", got)
	}
}

func TestRunAutopilot_Deterministic(t *testing.T) {
	a := runAutopilot(1, 7, 1200, 40, game.DefaultTuning())
	b := runAutopilot(1, 7, 1200, 40, game.DefaultTuning())
	if a.outcome != b.outcome || a.stats != b.stats || a.ticks != b.ticks {
		t.Fatalf("same seed diverged:\n a=%+v %+v\n b=%+v %+v", a.outcome, a.stats, b.outcome, b.stats)
	}
	if a.stats.ShotsFired == 0 {
		t.Fatalf("autopilot never fired in %d ticks", a.ticks)
	}
}
