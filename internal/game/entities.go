package game

import "fmt"

// EntityID identifies a moving entity within one session. Zero means none.
type EntityID uint32

// TrailPoint is one fading sample of an entity's recent path.
type TrailPoint struct {
	Pos  Vec2
	Life int
}

// Entity is the shared state of every moving simulation object.
type Entity struct {
	ID    EntityID
	Pos   Vec2
	Vel   Vec2
	Life  int // ticks remaining, never negative
	Trail []TrailPoint

	trailLife int
	dead      bool // marked for removal at the end of the current pass
}

// age spends one tick of life and records the trail sample for the new position.
func (e *Entity) age(trailCap int) {
	if e.Life > 0 {
		e.Life--
	}
	n := 0
	for _, p := range e.Trail {
		p.Life--
		if p.Life > 0 {
			e.Trail[n] = p
			n++
		}
	}
	e.Trail = e.Trail[:n]
	e.Trail = append(e.Trail, TrailPoint{Pos: e.Pos, Life: e.trailLife})
	if over := len(e.Trail) - trailCap; over > 0 {
		e.Trail = append(e.Trail[:0], e.Trail[over:]...)
	}
}

func (e *Entity) copyTrail() []TrailPoint {
	if len(e.Trail) == 0 {
		return nil
	}
	out := make([]TrailPoint, len(e.Trail))
	copy(out, e.Trail)
	return out
}

// Projectile is player-launched ordnance.
type Projectile struct {
	Entity
	Weapon WeaponType
	Target Vec2
	Guided bool
	Damage float64
	Speed  float64 // nominal launch speed

	eta int // ticks until the launch arc reaches Target
}

func (p *Projectile) Label() string { return fmt.Sprintf("P%d", p.ID) }

// MissileKind distinguishes the three hostile missile roles.
type MissileKind int

const (
	MissileOffensive   MissileKind = iota // scheduler launch from a defense site at the base
	MissileStrike                         // facility launch at the base
	MissileInterceptor                    // defense launch at a player projectile
)

func (k MissileKind) String() string {
	switch k {
	case MissileOffensive:
		return "offensive"
	case MissileStrike:
		return "strike"
	case MissileInterceptor:
		return "interceptor"
	default:
		return "unknown"
	}
}

// targetsBase reports whether this kind can damage the launch platform.
func (k MissileKind) targetsBase() bool {
	return k == MissileOffensive || k == MissileStrike
}

// EnemyMissile is any opposing-force missile.
type EnemyMissile struct {
	Entity
	Kind           MissileKind
	HomingStrength float64
	DirectHoming   bool
	ErraticChance  float64
	Damage         float64
	Target         Vec2
	TargetID       EntityID // interceptors track a projectile
	Speed          float64
	MaxLife        int
	Source         string
}

func (m *EnemyMissile) Label() string { return fmt.Sprintf("M%d", m.ID) }

// Aircraft flies level across the field and releases bombs past DropX.
type Aircraft struct {
	Entity
	Bombs   int
	Dropped bool    // every bomb released
	DropX   float64 // release point for the next bomb, re-solved each tick
	Target  Vec2

	dropWait int
}

func (a *Aircraft) Label() string { return fmt.Sprintf("A%d", a.ID) }

// LaunchPlatform is the player's base.
type LaunchPlatform struct {
	Rect      Rect
	Health    float64
	MaxHealth float64
	Destroyed bool
}

// Origin is where player ordnance leaves the platform.
func (lp *LaunchPlatform) Origin() Vec2 {
	return Vec2{lp.Rect.X + lp.Rect.W, lp.Rect.Y + lp.Rect.H/2}
}

// DefenseSystem is a fixed installation that launches interceptors at player
// ordnance and, while stocked, offensive missiles at the base.
type DefenseSystem struct {
	Name     string
	Pos      Vec2
	Radius   float64
	Active   bool
	Cooldown int
	Missiles int
}

// canLaunch reports whether the system is active and off cooldown.
func (d *DefenseSystem) canLaunch() bool {
	return d.Active && d.Cooldown <= 0
}
