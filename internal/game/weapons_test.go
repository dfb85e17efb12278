package game

import (
	"errors"
	"testing"
)

func quietSim(opts ...SimOption) *TestSim {
	return NewTestSim(append([]SimOption{WithoutDefenses(), WithoutOpFor()}, opts...)...)
}

func TestParseWeaponType(t *testing.T) {
	for _, w := range PlayerWeapons {
		got, err := ParseWeaponType(w.String())
		if err != nil || got != w {
			t.Fatalf("ParseWeaponType(%q) = %v, %v", w.String(), got, err)
		}
	}
	if _, err := ParseWeaponType("railgun"); !errors.Is(err, ErrUnknownWeapon) {
		t.Fatalf("expected ErrUnknownWeapon, got %v", err)
	}
}

func TestInventory_DefaultCounts(t *testing.T) {
	wt := DefaultTuning().Weapons
	inv := newInventory(&wt)
	cases := map[WeaponType]int{
		WeaponMissile:  Unlimited,
		WeaponGuided:   5,
		WeaponAircraft: 3,
		WeaponCruise:   2,
	}
	for w, want := range cases {
		if got := inv.Count(w); got != want {
			t.Errorf("%s count = %d, want %d", w, got, want)
		}
	}
}

func TestInventory_TakeNeverNegative(t *testing.T) {
	var inv WeaponInventory
	inv.Set(WeaponCruise, 1)
	if !inv.take(WeaponCruise) {
		t.Fatal("first take should succeed")
	}
	if inv.take(WeaponCruise) {
		t.Fatal("take from an empty count should fail")
	}
	if got := inv.Count(WeaponCruise); got != 0 {
		t.Fatalf("count went to %d, want 0", got)
	}
	inv.Set(WeaponGuided, -7)
	if got := inv.Count(WeaponGuided); got != 0 {
		t.Fatalf("negative Set should clamp to 0, got %d", got)
	}
}

func TestFire_UnlimitedMissileKeepsCount(t *testing.T) {
	ts := quietSim()
	for i := 0; i < 20; i++ {
		if _, err := ts.Engine.FireAtFacility(WeaponMissile, FacilityKestrel); err != nil {
			t.Fatalf("shot %d: %v", i, err)
		}
	}
	if got := ts.Engine.Inventory().Count(WeaponMissile); got != Unlimited {
		t.Fatalf("missile count = %d, want unlimited", got)
	}
	if got := ts.Session().Stats.ShotsFired; got != 20 {
		t.Fatalf("ShotsFired = %d, want 20", got)
	}
}

func TestFire_EmptyWeaponCreatesNothing(t *testing.T) {
	ts := quietSim(WithWeaponCount(WeaponGuided, 0))
	before := len(ts.Snapshot().Projectiles)

	_, err := ts.Engine.FireAtFacility(WeaponGuided, FacilityKestrel)
	if !errors.Is(err, ErrInsufficientAmmo) {
		t.Fatalf("expected ErrInsufficientAmmo, got %v", err)
	}
	snap := ts.Snapshot()
	if len(snap.Projectiles) != before {
		t.Fatalf("projectile created on an empty weapon")
	}
	if snap.Inventory.Count(WeaponGuided) != 0 {
		t.Fatalf("guided count = %d, want 0", snap.Inventory.Count(WeaponGuided))
	}
	if snap.Session.Stats.ShotsFired != 0 {
		t.Fatalf("rejected shot was counted")
	}
	if !ts.SimLog.HasEntry("fire", "rejected", "guided") {
		t.Fatal("expected a fire/rejected log entry")
	}
}

func TestFire_BoundaryErrors(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	origin := e.Origin()

	cases := []struct {
		name string
		w    WeaponType
		aim  Vec2
		want error
	}{
		{"bomb is not player fireable", WeaponBomb, Vec2{600, 500}, ErrUnknownWeapon},
		{"out of range enum", WeaponType(42), Vec2{600, 500}, ErrUnknownWeapon},
		{"zero length aim", WeaponMissile, origin, ErrInvalidTarget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.Fire(tc.w, origin, tc.aim); !errors.Is(err, tc.want) {
				t.Fatalf("Fire = %v, want %v", err, tc.want)
			}
		})
	}
	if _, err := e.FireAtFacility(WeaponMissile, FacilityID(99)); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("unknown facility: got %v", err)
	}
	if n := len(e.Snapshot().Projectiles); n != 0 {
		t.Fatalf("failed fires created %d projectiles", n)
	}
}

func TestFire_DecrementsLimitedWeapons(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	for _, w := range []WeaponType{WeaponGuided, WeaponCruise, WeaponAircraft} {
		before := e.Inventory().Count(w)
		if _, err := e.FireAtFacility(w, FacilityKestrel); err != nil {
			t.Fatalf("%s: %v", w, err)
		}
		if got := e.Inventory().Count(w); got != before-1 {
			t.Fatalf("%s count %d → %d, want one less", w, before, got)
		}
	}
	snap := e.Snapshot()
	if len(snap.Aircraft) != 1 {
		t.Fatalf("aircraft weapon should spawn one aircraft, got %d", len(snap.Aircraft))
	}
	if len(snap.Projectiles) != 2 {
		t.Fatalf("expected guided and cruise projectiles, got %d", len(snap.Projectiles))
	}
}

func TestWeaponDamage_FallsBackToDefault(t *testing.T) {
	wt := DefaultTuning().Weapons
	wt.Cruise.Damage = 0
	if got := wt.Damage(WeaponCruise); got != wt.DefaultDamage {
		t.Fatalf("zero damage should fall back to %v, got %v", wt.DefaultDamage, got)
	}
	if got := wt.Damage(WeaponType(42)); got != wt.DefaultDamage {
		t.Fatalf("unknown weapon damage = %v, want default", got)
	}
	if got := wt.Damage(WeaponGuided); got != 35 {
		t.Fatalf("guided damage = %v, want 35", got)
	}
}
