package game

import (
	"math"
	"testing"
)

func TestSteerMissile(t *testing.T) {
	ts := quietSim(WithTuningChange(func(tn *Tuning) { tn.OpFor.RetargetJitterP = 0 }))
	e := ts.Engine
	centre := e.base.Rect.Center()

	cases := []struct {
		name      string
		pos       Vec2
		life      int
		direct    bool
		homing    float64
		wantSpeed float64
		wantMoved bool
	}{
		{"direct, fresh, far", Vec2{700, 200}, 200, true, 0.4, 4, true},
		{"half life speeds up", Vec2{700, 200}, 100, true, 0.4, 4 * 1.15, true},
		{"terminal boost", Vec2{centre.X, centre.Y - 75}, 200, true, 0.4, 4 * 1.2, true},
		{"terminal and aged", Vec2{centre.X, centre.Y - 75}, 100, true, 0.4, 4 * 1.15 * 1.2, true},
		{"arrived keeps heading", Vec2{centre.X + 3, centre.Y}, 200, true, 0.4, 4, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e.store.Missiles = nil
			m := ts.InjectMissile(MissileOffensive, tc.pos, Vec2{4, 0}, 20)
			m.Life = tc.life
			m.DirectHoming = tc.direct
			m.HomingStrength = tc.homing
			m.Target = Vec2{1000, 0}

			e.steerMissile(m)
			if m.Target != centre {
				t.Fatalf("target = %v, want platform centre %v", m.Target, centre)
			}
			if !tc.wantMoved {
				if m.Vel != (Vec2{4, 0}) {
					t.Fatalf("velocity changed inside the arrival distance: %v", m.Vel)
				}
				return
			}
			if got := m.Vel.Len(); math.Abs(got-tc.wantSpeed) > 1e-9 {
				t.Errorf("speed = %.4f, want %.4f", got, tc.wantSpeed)
			}
			want, _ := centre.Sub(tc.pos).Unit()
			got, _ := m.Vel.Unit()
			if got.Dist(want) > 1e-9 {
				t.Errorf("heading %v, want %v", got, want)
			}
		})
	}
}

func TestSteerMissile_FixedTargetHeld(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	m := ts.InjectMissile(MissileStrike, Vec2{700, 200}, Vec2{0, 3}, 20)
	aim := Vec2{300, 590}
	m.Target = aim

	e.steerMissile(m)
	if m.Target != aim {
		t.Fatalf("a non-homing missile re-targeted to %v", m.Target)
	}
	want, _ := aim.Sub(m.Pos).Unit()
	got, _ := m.Vel.Unit()
	if got.Dist(want) > 1e-9 {
		t.Fatalf("heading %v, want %v", got, want)
	}
}

func TestSteerMissile_DirectHomingFollowsBase(t *testing.T) {
	ts := quietSim(WithTuningChange(func(tn *Tuning) { tn.OpFor.RetargetJitterP = 0 }))
	e := ts.Engine
	m := ts.InjectMissile(MissileOffensive, Vec2{800, 100}, Vec2{-3, 1}, 20)
	m.DirectHoming = true

	for i := 0; i < 5; i++ {
		e.base.Rect.X += 40
		e.steerMissile(m)
		if m.Target != e.base.Rect.Center() {
			t.Fatalf("step %d: target %v, base centre %v", i, m.Target, e.base.Rect.Center())
		}
		m.Pos = m.Pos.Add(m.Vel)
	}
}
