package game

import "errors"

// defaultFireEvery is the autopilot's shot cadence in ticks.
const defaultFireEvery = 40

// Autopilot is a deterministic aiming policy used by the headless runner,
// the terminal viewer and attract mode. It spends scarce ordnance on fresh
// targets and falls back to plain missiles.
type Autopilot struct {
	FireEvery int
	wait      int
}

// NewAutopilot creates an autopilot firing every fireEvery ticks (default 40).
func NewAutopilot(fireEvery int) *Autopilot {
	if fireEvery <= 0 {
		fireEvery = defaultFireEvery
	}
	return &Autopilot{FireEvery: fireEvery}
}

// Target returns the standing active facility with the lowest health, ties
// broken by unlock order. Nil when nothing is left to hit.
func (a *Autopilot) Target(snap *Snapshot) *Facility {
	var best *Facility
	for i := range snap.Facilities {
		f := &snap.Facilities[i]
		if !f.Active || f.Destroyed {
			continue
		}
		if best == nil || f.Health < best.Health {
			best = f
		}
	}
	return best
}

// Choose picks the weapon for target from the inventory.
func (a *Autopilot) Choose(inv WeaponInventory, target *Facility) WeaponType {
	switch {
	case target.HealthFrac() >= 1 && inv.Count(WeaponAircraft) != 0:
		return WeaponAircraft
	case inv.Count(WeaponGuided) != 0:
		return WeaponGuided
	case inv.Count(WeaponCruise) != 0 && target.HealthFrac() <= 0.5:
		return WeaponCruise
	default:
		return WeaponMissile
	}
}

// Step fires at most one shot. It reports whether a shot was fired. Running
// out of a weapon is not an error; the next call picks another.
func (a *Autopilot) Step(e *Engine) (bool, error) {
	if e.Phase().Terminal() {
		return false, nil
	}
	if a.wait > 0 {
		a.wait--
		return false, nil
	}
	snap := e.Snapshot()
	target := a.Target(&snap)
	if target == nil {
		return false, nil
	}
	w := a.Choose(snap.Inventory, target)
	_, err := e.Fire(w, e.Origin(), target.Rect.Center())
	a.wait = a.FireEvery
	if errors.Is(err, ErrInsufficientAmmo) {
		return false, nil
	}
	return err == nil, err
}

// Reset restarts the cadence.
func (a *Autopilot) Reset() { a.wait = 0 }
