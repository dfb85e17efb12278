package game

import (
	"fmt"
	"math"
)

// stepDifficulty runs the session clock and the level state machine. Terminal
// checks run in a fixed order: platform lost, level cleared or victory, then
// timeout, so facilities destroyed on the last tick still count.
func (e *Engine) stepDifficulty() {
	s := &e.session
	if e.base.Destroyed {
		e.finish(PhaseDefeat, "base_destroyed")
		return
	}

	if s.TimeLeftTicks > 0 {
		s.TimeLeftTicks--
	}

	op := &e.tuning.OpFor
	every := e.tuning.secToTicks(op.EscalateEverySec)
	if every > 0 && e.tick%every == 0 && s.TimeLeftSeconds() < op.EscalateBelowSec {
		e.escalate()
	}

	if e.levelCleared() {
		if s.Level >= e.maxLevel() {
			e.finish(PhaseVictory, "all_destroyed")
			return
		}
		e.advanceLevel()
	}

	if s.TimeLeftTicks == 0 {
		e.finish(PhaseDefeat, "time_expired")
	}
}

func (e *Engine) maxLevel() int {
	return min(e.tuning.Session.MaxLevel, len(e.facilities))
}

// levelCleared reports whether every facility active at this level is destroyed.
func (e *Engine) levelCleared() bool {
	active := e.activeFacilities()
	if len(active) == 0 {
		return false
	}
	for _, f := range active {
		if !f.Destroyed {
			return false
		}
	}
	return true
}

// advanceLevel unlocks the next facility, pays the level bonus and re-derives
// the opposing force from the difficulty table.
func (e *Engine) advanceLevel() {
	s := &e.session
	st := &e.tuning.Session
	from, fromLevel := s.Phase, s.Level

	s.Level++
	s.Phase = PhaseLevel
	s.SpeedMultiplier = speedMultiplierFor(s.Level)
	bonus := st.LevelBonus * s.Level
	s.addScore(bonus)
	budget := e.tuning.secToTicks(st.TimeBudgetSec)
	s.TimeLeftTicks = min(budget, s.TimeLeftTicks+e.tuning.secToTicks(st.LevelTimeBonusSec))
	e.activateLevel(s.Level)

	wasEnabled := e.opfor.enabled
	if row := s.Level - 1; row < len(e.tuning.Difficulty) {
		e.opfor.applyRow(e.tuning.Difficulty[row])
	}
	if e.opfor.enabled && !wasEnabled {
		e.opfor.cooldown = e.tuning.msToTicks(float64(e.opfor.frequencyMs))
	}

	e.report.Transition = &PhaseTransition{
		From: from, To: s.Phase, FromLevel: fromLevel, ToLevel: s.Level,
		Reason: "level_cleared", LevelBonus: bonus,
	}
	e.log.Add(e.tick, "--", "--", "level", "advance",
		fmt.Sprintf("level %d → %d bonus=%d time_left=%ds", fromLevel, s.Level, bonus, s.TimeLeftSeconds()),
		float64(s.Level))
	if from != s.Phase {
		e.log.Add(e.tick, "--", "--", "phase", "change", fmt.Sprintf("%s → %s", from, s.Phase), float64(s.Level))
	}
}

// finish moves the session into a terminal phase and pays the end bonuses.
func (e *Engine) finish(to Phase, reason string) {
	s := &e.session
	st := &e.tuning.Session
	from := s.Phase

	timeBonus := 0
	if to == PhaseVictory {
		timeBonus = s.TimeLeftSeconds() * st.TimeBonusPerSec
	}
	accBonus := int(math.Floor(s.Stats.Accuracy() * st.AccuracyBonus))
	s.addScore(timeBonus + accBonus)
	s.Phase = to
	e.deferred.clear()

	e.report.Transition = &PhaseTransition{
		From: from, To: to, FromLevel: s.Level, ToLevel: s.Level,
		Reason: reason, TimeBonus: timeBonus, AccBonus: accBonus,
	}
	e.log.Add(e.tick, "--", "--", "phase", "change",
		fmt.Sprintf("%s → %s (%s) time_bonus=%d acc_bonus=%d score=%d", from, to, reason, timeBonus, accBonus, s.Score),
		float64(s.Score))
}
