package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ThreatLevel tiers a facility's offensive danger.
type ThreatLevel int

const (
	ThreatLow ThreatLevel = iota
	ThreatMedium
	ThreatHigh
	ThreatCritical
)

func (t ThreatLevel) String() string {
	switch t {
	case ThreatLow:
		return "low"
	case ThreatMedium:
		return "medium"
	case ThreatHigh:
		return "high"
	case ThreatCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MissileDamage is the damage a strike launched by this tier deals.
func (t ThreatLevel) MissileDamage() float64 {
	switch t {
	case ThreatCritical:
		return 35
	case ThreatHigh:
		return 25
	case ThreatMedium:
		return 18
	case ThreatLow:
		return 12
	default:
		return 15
	}
}

// strikeChance is the per-tick launch roll for this tier.
func (t ThreatLevel) strikeChance(o *OpForTuning) float64 {
	switch t {
	case ThreatCritical:
		return o.StrikeChanceCritical
	case ThreatHigh:
		return o.StrikeChanceHigh
	default:
		return o.StrikeChanceDefault
	}
}

// UnmarshalYAML accepts the tier name.
func (t *ThreatLevel) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for c := ThreatLow; c <= ThreatCritical; c++ {
		if c.String() == s {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown threat level %q", value.Line, s)
}

// MarshalYAML writes the tier name.
func (t ThreatLevel) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// FacilityID is a facility's position in the unlock order.
type FacilityID int

const (
	FacilityKestrel FacilityID = iota
	FacilityGranite
	FacilitySaltmarsh
	FacilityIronwood
	FacilityQuarry
	FacilityHarbor
	FacilityDune
)

func (id FacilityID) String() string {
	switch id {
	case FacilityKestrel:
		return "kestrel"
	case FacilityGranite:
		return "granite"
	case FacilitySaltmarsh:
		return "saltmarsh"
	case FacilityIronwood:
		return "ironwood"
	case FacilityQuarry:
		return "quarry"
	case FacilityHarbor:
		return "harbor"
	case FacilityDune:
		return "dune"
	default:
		return fmt.Sprintf("facility%d", int(id))
	}
}

// Facility is a stationary destructible target with its own offensive loadout.
type Facility struct {
	ID        FacilityID
	Key       string
	Name      string
	Rect      Rect
	Health    float64
	MaxHealth float64
	Destroyed bool
	Active    bool // unlocked at the current level

	Threat       ThreatLevel
	Missiles     int
	Cooldown     int
	FrequencyMs  int
	MissileSpeed float64
	Accuracy     float64
}

// Label is the facility key used in logs.
func (f *Facility) Label() string {
	if f.Key != "" {
		return f.Key
	}
	return f.ID.String()
}

// HealthFrac returns health as a fraction of max.
func (f *Facility) HealthFrac() float64 {
	if f.MaxHealth <= 0 {
		return 0
	}
	return f.Health / f.MaxHealth
}

// hittable reports whether the collision resolver may match this facility.
func (f *Facility) hittable() bool {
	return f.Active && !f.Destroyed
}

// newFacilities builds the session's facilities standing on the ground line.
func newFacilities(t *Tuning) []*Facility {
	out := make([]*Facility, 0, len(t.Facilities))
	for i, s := range t.Facilities {
		out = append(out, &Facility{
			ID:           FacilityID(i),
			Key:          s.Key,
			Name:         s.Name,
			Rect:         Rect{X: s.X, Y: t.Field.GroundY - s.H, W: s.W, H: s.H},
			Health:       s.Health,
			MaxHealth:    s.Health,
			Threat:       s.Threat,
			Missiles:     s.Missiles,
			FrequencyMs:  s.FrequencyMs,
			MissileSpeed: s.MissileSpeed,
			Accuracy:     s.Accuracy,
		})
	}
	return out
}

func newDefenses(t *Tuning) []*DefenseSystem {
	out := make([]*DefenseSystem, 0, len(t.Defenses))
	for _, s := range t.Defenses {
		out = append(out, &DefenseSystem{
			Name:     s.Name,
			Pos:      Vec2{s.X, s.Y},
			Radius:   s.Radius,
			Active:   true,
			Missiles: s.Missiles,
		})
	}
	return out
}
