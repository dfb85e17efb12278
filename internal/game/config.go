package game

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every balance value the simulation reads. The zero value is not
// usable; start from DefaultTuning and override.
type Tuning struct {
	Field      FieldTuning     `yaml:"field"`
	Session    SessionTuning   `yaml:"session"`
	Platform   PlatformTuning  `yaml:"platform"`
	Weapons    WeaponTuning    `yaml:"weapons"`
	Facilities []FacilitySpec  `yaml:"facilities"`
	Defenses   []DefenseSpec   `yaml:"defenses"`
	OpFor      OpForTuning     `yaml:"opfor"`
	Intercept  InterceptTuning `yaml:"intercept"`
	Difficulty []DifficultyRow `yaml:"difficulty"`
	Effects    EffectsTuning   `yaml:"effects"`
}

// FieldTuning describes the playfield.
type FieldTuning struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	GroundY  float64 `yaml:"ground_y"` // projectiles below this line impact the ground
	Gravity  float64 `yaml:"gravity"`  // px/tick² for ballistic ordnance
	TrailCap int     `yaml:"trail_cap"`
}

// SessionTuning covers the clock, levels and scoring.
type SessionTuning struct {
	TicksPerSecond       int     `yaml:"ticks_per_second"`
	TimeBudgetSec        int     `yaml:"time_budget_sec"`
	MaxLevel             int     `yaml:"max_level"`
	LevelBonus           int     `yaml:"level_bonus"`            // score per level reached
	LevelTimeBonusSec    int     `yaml:"level_time_bonus_sec"`   // capped at the time budget
	HitScorePerDamage    int     `yaml:"hit_score_per_damage"`   // 10
	DestroyBonus         int     `yaml:"destroy_bonus"`          // 500
	TimeBonusPerSec      int     `yaml:"time_bonus_per_sec"`     // victory only
	AccuracyBonus        float64 `yaml:"accuracy_bonus"`         // multiplied by hit ratio
	BasePenaltyPerDamage int     `yaml:"base_penalty_per_damage"` // score lost per base damage point
}

// PlatformTuning places the player's launch platform.
type PlatformTuning struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	W            float64 `yaml:"w"`
	H            float64 `yaml:"h"`
	Health       float64 `yaml:"health"`
	HitTolerance float64 `yaml:"hit_tolerance"` // margin around the platform box
	GroundReach  float64 `yaml:"ground_reach"`  // ground hits within this of the platform edges count
}

// WeaponSpec is the per-weapon row of the weapon table.
type WeaponSpec struct {
	Count  int     `yaml:"count"` // -1 means unlimited
	Speed  float64 `yaml:"speed"`
	Damage float64 `yaml:"damage"`
}

// WeaponTuning holds the weapon table plus per-class flight rules.
type WeaponTuning struct {
	Missile  WeaponSpec `yaml:"missile"`
	Guided   WeaponSpec `yaml:"guided"`
	Aircraft WeaponSpec `yaml:"aircraft"`
	Cruise   WeaponSpec `yaml:"cruise"`
	Bomb     WeaponSpec `yaml:"bomb"`

	DefaultDamage   float64 `yaml:"default_damage"`
	ProjectileLife  int     `yaml:"projectile_life"`
	TrailLife       int     `yaml:"trail_life"`
	GuidedLifeFloor int     `yaml:"guided_life_floor"` // homing runs while life is above this
	GuidedBlend     float64 `yaml:"guided_blend"`      // fraction of the course error corrected per tick

	CruiseBandTop    float64 `yaml:"cruise_band_top"`    // offset above ground
	CruiseBandBottom float64 `yaml:"cruise_band_bottom"` // offset above ground
	CruiseClimb      float64 `yaml:"cruise_climb"`

	AircraftLife   int     `yaml:"aircraft_life"`
	AircraftBombs  int     `yaml:"aircraft_bombs"`
	AircraftSpawnY float64 `yaml:"aircraft_spawn_y"` // offset above the platform
	AircraftDrift  float64 `yaml:"aircraft_drift"`   // vertical speed spread
	BombLife       int     `yaml:"bomb_life"`
	BombDropVY     float64 `yaml:"bomb_drop_vy"`
	BombVXFactor   float64 `yaml:"bomb_vx_factor"`
	BombSpacing    int     `yaml:"bomb_spacing"` // ticks between successive drops
}

// FacilitySpec defines one facility in unlock order.
type FacilitySpec struct {
	Key          string      `yaml:"key"`
	Name         string      `yaml:"name"`
	X            float64     `yaml:"x"`
	W            float64     `yaml:"w"`
	H            float64     `yaml:"h"`
	Health       float64     `yaml:"health"`
	Threat       ThreatLevel `yaml:"threat"`
	Missiles     int         `yaml:"missiles"`
	FrequencyMs  int         `yaml:"frequency_ms"`
	MissileSpeed float64     `yaml:"missile_speed"`
	Accuracy     float64     `yaml:"accuracy"`
}

// DefenseSpec defines one defense installation.
type DefenseSpec struct {
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Missiles int     `yaml:"missiles"`
}

// DifficultyRow is the opposing force's parameter set for one level.
type DifficultyRow struct {
	Enabled      bool    `yaml:"enabled"`
	AttackChance float64 `yaml:"attack_chance"`
	Accuracy     float64 `yaml:"accuracy"`
	MissileSpeed float64 `yaml:"missile_speed"`
	FrequencyMs  int     `yaml:"frequency_ms"`
}

// OpForTuning drives the offensive scheduler, missile flight and adaptation.
type OpForTuning struct {
	ProgressChance  float64 `yaml:"progress_chance"` // added to the attack chance at full progress
	RetryMinMs      int     `yaml:"retry_min_ms"`
	RetryMaxMs      int     `yaml:"retry_max_ms"`
	TargetSpread    float64 `yaml:"target_spread"`
	TargetHighBias  float64 `yaml:"target_high_bias"` // chance the y offset lands below centre
	SiteDistWeight  float64 `yaml:"site_dist_weight"`
	SiteStockWeight float64 `yaml:"site_stock_weight"`

	SalvoChance      float64 `yaml:"salvo_chance"`
	SalvoProgress    float64 `yaml:"salvo_progress"`
	SalvoDelayMinMs  int     `yaml:"salvo_delay_min_ms"`
	SalvoDelayMaxMs  int     `yaml:"salvo_delay_max_ms"`
	ThirdAfter       float64 `yaml:"third_after"` // progress threshold
	ThirdChance      float64 `yaml:"third_chance"`
	ThirdDelayMinMs  int     `yaml:"third_delay_min_ms"`
	ThirdDelayMaxMs  int     `yaml:"third_delay_max_ms"`
	ExtraSpacingMs   int     `yaml:"extra_spacing_ms"`
	MaxFollowUps     int     `yaml:"max_follow_ups"`
	MissileLife      int     `yaml:"missile_life"`
	StrikeLife       int     `yaml:"strike_life"`
	DamageMin        float64 `yaml:"damage_min"`
	DamageSpread     float64 `yaml:"damage_spread"`
	StrikeJitter     float64 `yaml:"strike_jitter"`
	DirectChance     float64 `yaml:"direct_chance"`
	HomingMin        float64 `yaml:"homing_min"`
	HomingSpread     float64 `yaml:"homing_spread"`
	RetargetJitterP  float64 `yaml:"retarget_jitter_p"`
	RetargetJitter   float64 `yaml:"retarget_jitter"`
	ErraticChance    float64 `yaml:"erratic_chance"`
	Erratic          float64 `yaml:"erratic"`
	AgeSpeedup       float64 `yaml:"age_speedup"` // fraction of speed gained by end of life
	TerminalRadius   float64 `yaml:"terminal_radius"`
	ArrivalDist      float64 `yaml:"arrival_dist"`
	MissileTrailLife int     `yaml:"missile_trail_life"`

	StrikeChanceCritical float64 `yaml:"strike_chance_critical"`
	StrikeChanceHigh     float64 `yaml:"strike_chance_high"`
	StrikeChanceDefault  float64 `yaml:"strike_chance_default"`

	ThreatStep         float64 `yaml:"threat_step"`
	ThreatMax          float64 `yaml:"threat_max"`
	ThreatHitRate      float64 `yaml:"threat_hit_rate"`
	ThreatMinShots     int     `yaml:"threat_min_shots"`
	AdaptEveryTicks    int     `yaml:"adapt_every_ticks"`
	AdaptChanceCap     float64 `yaml:"adapt_chance_cap"`
	AccuracyCap        float64 `yaml:"accuracy_cap"`
	FrequencyFloorMs   int     `yaml:"frequency_floor_ms"`
	EscalateEverySec   int     `yaml:"escalate_every_sec"`
	EscalateBelowSec   int     `yaml:"escalate_below_sec"`
	EscalateAccuracy   float64 `yaml:"escalate_accuracy"`
	EscalateSpeed      float64 `yaml:"escalate_speed"`
	EscalateFreqStepMs int     `yaml:"escalate_freq_step_ms"`
	EscalateFreqFloor  int     `yaml:"escalate_freq_floor_ms"`
}

// InterceptTuning drives defense-system interceptor launches.
type InterceptTuning struct {
	FirstDelayMs      int     `yaml:"first_delay_ms"`
	FirstSpreadMs     int     `yaml:"first_spread_ms"`
	BaseDelayMs       int     `yaml:"base_delay_ms"`
	ProgressDelayMs   int     `yaml:"progress_delay_ms"` // subtracted at full progress
	DelaySpreadMs     int     `yaml:"delay_spread_ms"`
	NewestBias        float64 `yaml:"newest_bias"` // chance to pick the most recent projectile
	BaseSpeed         float64 `yaml:"base_speed"`
	SpeedBoost        float64 `yaml:"speed_boost"`
	FollowUpSpeed     float64 `yaml:"follow_up_speed"`
	Life              int     `yaml:"life"`
	CooldownTicks     int     `yaml:"cooldown_ticks"`
	CooldownProgress  int     `yaml:"cooldown_progress"`
	CooldownMinTicks  int     `yaml:"cooldown_min_ticks"`
	FollowUpChance    float64 `yaml:"follow_up_chance"`
	FollowUpProgress  float64 `yaml:"follow_up_progress"`
	FollowUpDelayMs   int     `yaml:"follow_up_delay_ms"`
	KillRadius        float64 `yaml:"kill_radius"`
	AircraftKillRange float64 `yaml:"aircraft_kill_range"`
	TrailLife         int     `yaml:"trail_life"`
}

// EffectsTuning bounds the cosmetic side of the simulation.
type EffectsTuning struct {
	ParticleCap       int     `yaml:"particle_cap"`
	ExplosionSparks   int     `yaml:"explosion_sparks"`
	HitRadius         float64 `yaml:"hit_radius"`
	GroundRadius      float64 `yaml:"ground_radius"`
	InterceptRadius   float64 `yaml:"intercept_radius"`
	AtomicRadius      float64 `yaml:"atomic_radius"`
	AtomicDebris      int     `yaml:"atomic_debris"`
	LaunchSmoke       int     `yaml:"launch_smoke"`
	ExplosionLife     int     `yaml:"explosion_life"`
	AtomicLife        int     `yaml:"atomic_life"`
	FlashLife         int     `yaml:"flash_life"`
	ShockwaveLife     int     `yaml:"shockwave_life"`
	ParticleLife      int     `yaml:"particle_life"`
	ExplosionGrowth   float64 `yaml:"explosion_growth"`
	ExplosionFade     float64 `yaml:"explosion_fade"`
	ParticleFade      float64 `yaml:"particle_fade"`
	SparkGravity      float64 `yaml:"spark_gravity"`
	DebrisGravity     float64 `yaml:"debris_gravity"`
	DebrisDrag        float64 `yaml:"debris_drag"`
	SmokeLift         float64 `yaml:"smoke_lift"`
	SmokeDrag         float64 `yaml:"smoke_drag"`
	SmokeGrowth       float64 `yaml:"smoke_growth"`
	ShockwaveGrowth   float64 `yaml:"shockwave_growth"`
	ShockwaveMaxScale float64 `yaml:"shockwave_max_scale"`
}

// DefaultTuning returns a fresh copy of the built-in balance.
func DefaultTuning() Tuning {
	return Tuning{
		Field: FieldTuning{Width: 1200, Height: 700, GroundY: 600, Gravity: 0.2, TrailCap: 30},
		Session: SessionTuning{
			TicksPerSecond:       60,
			TimeBudgetSec:        180,
			MaxLevel:             7,
			LevelBonus:           250,
			LevelTimeBonusSec:    10,
			HitScorePerDamage:    10,
			DestroyBonus:         500,
			TimeBonusPerSec:      10,
			AccuracyBonus:        1000,
			BasePenaltyPerDamage: 5,
		},
		Platform: PlatformTuning{X: 50, Y: 560, W: 100, H: 40, Health: 100, HitTolerance: 50, GroundReach: 100},
		Weapons: WeaponTuning{
			Missile:          WeaponSpec{Count: Unlimited, Speed: 8, Damage: 25},
			Guided:           WeaponSpec{Count: 5, Speed: 6, Damage: 35},
			Aircraft:         WeaponSpec{Count: 3, Speed: 4, Damage: 30},
			Cruise:           WeaponSpec{Count: 2, Speed: 10, Damage: 40},
			Bomb:             WeaponSpec{Count: 0, Speed: 0, Damage: 30},
			DefaultDamage:    20,
			ProjectileLife:   1000,
			TrailLife:        30,
			GuidedLifeFloor:  500,
			GuidedBlend:      0.1,
			CruiseBandTop:    80,
			CruiseBandBottom: 50,
			CruiseClimb:      0.5,
			AircraftLife:     300,
			AircraftBombs:    2,
			AircraftSpawnY:   150,
			AircraftDrift:    1,
			BombLife:         200,
			BombDropVY:       2,
			BombVXFactor:     0.5,
			BombSpacing:      8,
		},
		Facilities: []FacilitySpec{
			{Key: "kestrel", Name: "Kestrel Works", X: 700, W: 80, H: 120, Health: 100, Threat: ThreatHigh, Missiles: 8, FrequencyMs: 4000, MissileSpeed: 4.5, Accuracy: 0.85},
			{Key: "granite", Name: "Granite Complex", X: 850, W: 60, H: 100, Health: 100, Threat: ThreatCritical, Missiles: 12, FrequencyMs: 3500, MissileSpeed: 5.0, Accuracy: 0.90},
			{Key: "saltmarsh", Name: "Saltmarsh Plant", X: 500, W: 65, H: 90, Health: 100, Threat: ThreatMedium, Missiles: 5, FrequencyMs: 4500, MissileSpeed: 4.2, Accuracy: 0.82},
			{Key: "ironwood", Name: "Ironwood Reactor", X: 600, W: 70, H: 110, Health: 100, Threat: ThreatHigh, Missiles: 6, FrequencyMs: 5000, MissileSpeed: 4.0, Accuracy: 0.80},
			{Key: "quarry", Name: "Quarry Lab", X: 400, W: 55, H: 85, Health: 100, Threat: ThreatMedium, Missiles: 4, FrequencyMs: 6000, MissileSpeed: 3.8, Accuracy: 0.75},
			{Key: "harbor", Name: "Harbor Power Station", X: 1000, W: 90, H: 130, Health: 100, Threat: ThreatCritical, Missiles: 10, FrequencyMs: 3800, MissileSpeed: 4.8, Accuracy: 0.88},
			{Key: "dune", Name: "Dune Mill", X: 300, W: 65, H: 85, Health: 100, Threat: ThreatLow, Missiles: 3, FrequencyMs: 7000, MissileSpeed: 3.5, Accuracy: 0.70},
		},
		Defenses: []DefenseSpec{
			{Name: "Northern Grid", X: 800, Y: 450, Radius: 200, Missiles: 10},
			{Name: "Eastern System", X: 1000, Y: 300, Radius: 180, Missiles: 8},
			{Name: "Southern Base", X: 900, Y: 500, Radius: 160, Missiles: 6},
			{Name: "Central Command", X: 1100, Y: 400, Radius: 170, Missiles: 12},
			{Name: "Western Outpost", X: 850, Y: 350, Radius: 150, Missiles: 5},
		},
		OpFor: OpForTuning{
			ProgressChance:       0.6,
			RetryMinMs:           200,
			RetryMaxMs:           400,
			TargetSpread:         40,
			TargetHighBias:       0.3,
			SiteDistWeight:       1000,
			SiteStockWeight:      10,
			SalvoChance:          0.2,
			SalvoProgress:        0.4,
			SalvoDelayMinMs:      300,
			SalvoDelayMaxMs:      500,
			ThirdAfter:           0.6,
			ThirdChance:          0.4,
			ThirdDelayMinMs:      600,
			ThirdDelayMaxMs:      900,
			ExtraSpacingMs:       300,
			MaxFollowUps:         3,
			MissileLife:          200,
			StrikeLife:           300,
			DamageMin:            15,
			DamageSpread:         15,
			StrikeJitter:         80,
			DirectChance:         0.6,
			HomingMin:            0.2,
			HomingSpread:         0.3,
			RetargetJitterP:      0.1,
			RetargetJitter:       2.5,
			ErraticChance:        0.15,
			Erratic:              1.25,
			AgeSpeedup:           0.3,
			TerminalRadius:       150,
			ArrivalDist:          5,
			MissileTrailLife:     30,
			StrikeChanceCritical: 0.035,
			StrikeChanceHigh:     0.025,
			StrikeChanceDefault:  0.02,
			ThreatStep:           0.1,
			ThreatMax:            5,
			ThreatHitRate:        0.7,
			ThreatMinShots:       5,
			AdaptEveryTicks:      300,
			AdaptChanceCap:       0.5,
			AccuracyCap:          0.98,
			FrequencyFloorMs:     1000,
			EscalateEverySec:     30,
			EscalateBelowSec:     150,
			EscalateAccuracy:     0.05,
			EscalateSpeed:        0.3,
			EscalateFreqStepMs:   300,
			EscalateFreqFloor:    2000,
		},
		Intercept: InterceptTuning{
			FirstDelayMs:      3000,
			FirstSpreadMs:     2000,
			BaseDelayMs:       3000,
			ProgressDelayMs:   1500,
			DelaySpreadMs:     1500,
			NewestBias:        0.6,
			BaseSpeed:         4.5,
			SpeedBoost:        1,
			FollowUpSpeed:     5,
			Life:              200,
			CooldownTicks:     120,
			CooldownProgress:  60,
			CooldownMinTicks:  60,
			FollowUpChance:    0.2,
			FollowUpProgress:  0.3,
			FollowUpDelayMs:   300,
			KillRadius:        20,
			AircraftKillRange: 30,
			TrailLife:         20,
		},
		Difficulty: []DifficultyRow{
			{Enabled: false, AttackChance: 0.22, Accuracy: 0.84, MissileSpeed: 4.3, FrequencyMs: 3200},
			{Enabled: true, AttackChance: 0.25, Accuracy: 0.86, MissileSpeed: 4.5, FrequencyMs: 3000},
			{Enabled: true, AttackChance: 0.28, Accuracy: 0.88, MissileSpeed: 4.7, FrequencyMs: 2800},
			{Enabled: true, AttackChance: 0.31, Accuracy: 0.90, MissileSpeed: 4.9, FrequencyMs: 2600},
			{Enabled: true, AttackChance: 0.34, Accuracy: 0.92, MissileSpeed: 5.1, FrequencyMs: 2400},
			{Enabled: true, AttackChance: 0.37, Accuracy: 0.94, MissileSpeed: 5.3, FrequencyMs: 2200},
			{Enabled: true, AttackChance: 0.40, Accuracy: 0.96, MissileSpeed: 5.5, FrequencyMs: 2000},
		},
		Effects: EffectsTuning{
			ParticleCap:       600,
			ExplosionSparks:   15,
			HitRadius:         40,
			GroundRadius:      30,
			InterceptRadius:   25,
			AtomicRadius:      120,
			AtomicDebris:      40,
			LaunchSmoke:       6,
			ExplosionLife:     30,
			AtomicLife:        120,
			FlashLife:         15,
			ShockwaveLife:     40,
			ParticleLife:      60,
			ExplosionGrowth:   2,
			ExplosionFade:     0.02,
			ParticleFade:      0.01,
			SparkGravity:      0.1,
			DebrisGravity:     0.15,
			DebrisDrag:        0.99,
			SmokeLift:         0.05,
			SmokeDrag:         0.98,
			SmokeGrowth:       0.05,
			ShockwaveGrowth:   6,
			ShockwaveMaxScale: 2.5,
		},
	}
}

// LoadTuning reads a YAML file and applies it over DefaultTuning. Keys absent
// from the file keep their default; lists present in the file replace the
// default list wholesale.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects tunings the engine cannot run.
func (t *Tuning) Validate() error {
	var errs []error
	if t.Field.Width <= 0 || t.Field.Height <= 0 {
		errs = append(errs, errors.New("field size must be positive"))
	}
	if t.Field.GroundY <= 0 || t.Field.GroundY > t.Field.Height {
		errs = append(errs, errors.New("ground_y must lie inside the field"))
	}
	if t.Session.TicksPerSecond <= 0 {
		errs = append(errs, errors.New("ticks_per_second must be positive"))
	}
	if t.Session.TimeBudgetSec <= 0 {
		errs = append(errs, errors.New("time_budget_sec must be positive"))
	}
	if len(t.Facilities) == 0 {
		errs = append(errs, errors.New("at least one facility is required"))
	}
	if t.Session.MaxLevel < 1 || t.Session.MaxLevel > len(t.Facilities) {
		errs = append(errs, fmt.Errorf("max_level %d must be within 1..%d", t.Session.MaxLevel, len(t.Facilities)))
	}
	if len(t.Difficulty) < t.Session.MaxLevel {
		errs = append(errs, fmt.Errorf("difficulty table has %d rows, need %d", len(t.Difficulty), t.Session.MaxLevel))
	}
	for i, f := range t.Facilities {
		if f.W <= 0 || f.H <= 0 || f.Health <= 0 {
			errs = append(errs, fmt.Errorf("facility %d (%s) needs positive size and health", i, f.Key))
		}
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"opfor.direct_chance", t.OpFor.DirectChance},
		{"opfor.erratic_chance", t.OpFor.ErraticChance},
		{"opfor.salvo_chance", t.OpFor.SalvoChance},
		{"opfor.third_chance", t.OpFor.ThirdChance},
		{"intercept.newest_bias", t.Intercept.NewestBias},
		{"intercept.follow_up_chance", t.Intercept.FollowUpChance},
	} {
		if p.v < 0 || p.v > 1 || math.IsNaN(p.v) {
			errs = append(errs, fmt.Errorf("%s = %v is not a probability", p.name, p.v))
		}
	}
	for i, row := range t.Difficulty {
		if row.AttackChance < 0 || row.AttackChance > 1 || row.Accuracy < 0 || row.Accuracy > 1 {
			errs = append(errs, fmt.Errorf("difficulty row %d has an out-of-range probability", i+1))
		}
	}
	return errors.Join(errs...)
}

// msToTicks converts a duration in milliseconds to whole ticks, rounding to nearest.
func (t *Tuning) msToTicks(ms float64) int {
	return int(math.Round(ms * float64(t.Session.TicksPerSecond) / 1000))
}

// secToTicks converts whole seconds to ticks.
func (t *Tuning) secToTicks(sec int) int {
	return sec * t.Session.TicksPerSecond
}
