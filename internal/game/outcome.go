package game

// Phase is the session's position in the level state machine.
type Phase int

const (
	PhaseTutorial Phase = iota // level 1, opposing force disabled
	PhaseLevel                 // levels 2..MaxLevel
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseTutorial:
		return "tutorial"
	case PhaseLevel:
		return "level"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// PhaseTransition records a phase or level change on one tick.
type PhaseTransition struct {
	From, To   Phase
	FromLevel  int
	ToLevel    int
	Reason     string // level_cleared, base_destroyed, time_expired, all_destroyed
	TimeBonus  int
	AccBonus   int
	LevelBonus int
}

// Outcome summarises a finished (or abandoned) session.
type Outcome struct {
	Phase       Phase
	Level       int
	Score       int
	Description string
}

// DetermineOutcome classifies a session from its state. Non-terminal sessions
// are reported as in progress.
func DetermineOutcome(s SessionState, base LaunchPlatform) Outcome {
	o := Outcome{Phase: s.Phase, Level: s.Level, Score: s.Score}
	switch {
	case s.Phase == PhaseVictory:
		o.Description = "victory_all_facilities_destroyed"
	case s.Phase == PhaseDefeat && base.Destroyed:
		o.Description = "defeat_base_destroyed"
	case s.Phase == PhaseDefeat && s.TimeLeftTicks == 0:
		o.Description = "defeat_time_expired"
	case s.Phase == PhaseDefeat:
		o.Description = "defeat"
	default:
		o.Description = "in_progress"
	}
	return o
}
