package game

import "fmt"

// Unlimited marks a weapon with an inexhaustible count.
const Unlimited = -1

// WeaponType is the closed set of player ordnance.
type WeaponType int

const (
	WeaponMissile WeaponType = iota
	WeaponGuided
	WeaponAircraft
	WeaponCruise
	WeaponBomb // dropped by aircraft only

	weaponCount
)

// PlayerWeapons lists the weapons the player can select, in hotkey order.
var PlayerWeapons = [...]WeaponType{WeaponMissile, WeaponGuided, WeaponAircraft, WeaponCruise}

func (w WeaponType) String() string {
	switch w {
	case WeaponMissile:
		return "missile"
	case WeaponGuided:
		return "guided"
	case WeaponAircraft:
		return "aircraft"
	case WeaponCruise:
		return "cruise"
	case WeaponBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// ParseWeaponType maps a weapon name back to its enum.
func ParseWeaponType(s string) (WeaponType, error) {
	for w := WeaponMissile; w < weaponCount; w++ {
		if w.String() == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeapon, s)
}

// playerFireable reports whether the player may launch w directly.
func (w WeaponType) playerFireable() bool {
	switch w {
	case WeaponMissile, WeaponGuided, WeaponAircraft, WeaponCruise:
		return true
	default:
		return false
	}
}

// ballistic reports whether gravity acts on the weapon.
func (w WeaponType) ballistic() bool {
	return w != WeaponCruise
}

// params returns the tuning row for w; ok is false for values outside the enum.
func (wt *WeaponTuning) params(w WeaponType) (WeaponSpec, bool) {
	switch w {
	case WeaponMissile:
		return wt.Missile, true
	case WeaponGuided:
		return wt.Guided, true
	case WeaponAircraft:
		return wt.Aircraft, true
	case WeaponCruise:
		return wt.Cruise, true
	case WeaponBomb:
		return wt.Bomb, true
	default:
		return WeaponSpec{}, false
	}
}

// Damage looks up the damage for w, falling back to DefaultDamage.
func (wt *WeaponTuning) Damage(w WeaponType) float64 {
	if s, ok := wt.params(w); ok && s.Damage > 0 {
		return s.Damage
	}
	return wt.DefaultDamage
}

// WeaponInventory tracks remaining rounds per weapon. Counts never go negative.
type WeaponInventory struct {
	counts [weaponCount]int
}

func newInventory(wt *WeaponTuning) WeaponInventory {
	var inv WeaponInventory
	for w := WeaponMissile; w < weaponCount; w++ {
		s, _ := wt.params(w)
		inv.counts[w] = s.Count
	}
	return inv
}

// Count returns the remaining rounds for w, or Unlimited.
func (inv WeaponInventory) Count(w WeaponType) int {
	if w < 0 || w >= weaponCount {
		return 0
	}
	return inv.counts[w]
}

// Set overrides the count for w. Negative values other than Unlimited clamp to 0.
func (inv *WeaponInventory) Set(w WeaponType, n int) {
	if w < 0 || w >= weaponCount {
		return
	}
	if n < 0 && n != Unlimited {
		n = 0
	}
	inv.counts[w] = n
}

// take consumes one round. It returns false without changing anything when
// the weapon is exhausted.
func (inv *WeaponInventory) take(w WeaponType) bool {
	switch c := inv.counts[w]; {
	case c == Unlimited:
		return true
	case c <= 0:
		return false
	default:
		inv.counts[w] = c - 1
		return true
	}
}
