package game

// SessionStats are the cumulative counters for one playthrough.
type SessionStats struct {
	ShotsFired       int
	Hits             int // facility hits
	TargetsDestroyed int
	Intercepted      int // player ordnance lost to hostile missiles
	BaseHits         int
	MissilesLaunched int // hostile launches of every kind
	AircraftLost     int
}

// Accuracy is hits over shots, 0 before the first shot.
func (s SessionStats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.ShotsFired)
}

// SessionState is owned by the difficulty state machine.
type SessionState struct {
	Score           int // never negative
	TimeLeftTicks   int // never negative
	Level           int // 1..MaxLevel
	Phase           Phase
	SpeedMultiplier float64
	Stats           SessionStats

	ticksPerSecond int
}

// TimeLeftSeconds rounds the remaining time up to whole seconds.
func (s SessionState) TimeLeftSeconds() int {
	if s.ticksPerSecond <= 0 {
		return 0
	}
	return (s.TimeLeftTicks + s.ticksPerSecond - 1) / s.ticksPerSecond
}

// addScore applies a delta and clamps the total at zero.
func (s *SessionState) addScore(delta int) {
	s.Score += delta
	if s.Score < 0 {
		s.Score = 0
	}
}

// speedMultiplierFor derives the display speed multiplier for a level.
func speedMultiplierFor(level int) float64 {
	return 1 + float64(level-1)*0.3
}
