// Package feed streams snapshots of a running session to websocket
// spectators as msgpack frames.
package feed

import (
	"fmt"
	"math"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// EntityState is one moving object in a frame.
type EntityState struct {
	ID   uint32  `msgpack:"id"`
	Kind string  `msgpack:"k"`
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
}

// FacilityState is one facility in a frame.
type FacilityState struct {
	Key       string  `msgpack:"key"`
	Health    float64 `msgpack:"hp"`
	Active    bool    `msgpack:"on"`
	Destroyed bool    `msgpack:"dead"`
}

// Frame is the wire form of a snapshot. Positions are rounded to a tenth of
// a pixel to keep frames small.
type Frame struct {
	Session     string          `msgpack:"session"`
	Tick        int             `msgpack:"tick"`
	Phase       string          `msgpack:"phase"`
	Level       int             `msgpack:"level"`
	Score       int             `msgpack:"score"`
	TimeLeft    int             `msgpack:"time_left"` // seconds
	BaseHealth  float64         `msgpack:"base_hp"`
	Threat      float64         `msgpack:"threat"`
	Facilities  []FacilityState `msgpack:"facilities"`
	Projectiles []EntityState   `msgpack:"projectiles"`
	Missiles    []EntityState   `msgpack:"missiles"`
	Aircraft    []EntityState   `msgpack:"aircraft"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// NewFrame builds a frame from a snapshot.
func NewFrame(session uuid.UUID, snap game.Snapshot) Frame {
	s := snap.Session
	f := Frame{
		Session:     session.String(),
		Tick:        snap.Tick,
		Phase:       s.Phase.String(),
		Level:       s.Level,
		Score:       s.Score,
		TimeLeft:    s.TimeLeftSeconds(),
		BaseHealth:  round1(snap.Base.Health),
		Threat:      math.Round(snap.ThreatLevel*100) / 100,
		Facilities:  make([]FacilityState, 0, len(snap.Facilities)),
		Projectiles: make([]EntityState, 0, len(snap.Projectiles)),
		Missiles:    make([]EntityState, 0, len(snap.Missiles)),
		Aircraft:    make([]EntityState, 0, len(snap.Aircraft)),
	}
	for i := range snap.Facilities {
		fc := &snap.Facilities[i]
		f.Facilities = append(f.Facilities, FacilityState{
			Key:       fc.Label(),
			Health:    round1(fc.Health),
			Active:    fc.Active,
			Destroyed: fc.Destroyed,
		})
	}
	for _, p := range snap.Projectiles {
		f.Projectiles = append(f.Projectiles, EntityState{
			ID: uint32(p.ID), Kind: p.Weapon.String(), X: round1(p.Pos.X), Y: round1(p.Pos.Y),
		})
	}
	for _, m := range snap.Missiles {
		f.Missiles = append(f.Missiles, EntityState{
			ID: uint32(m.ID), Kind: m.Kind.String(), X: round1(m.Pos.X), Y: round1(m.Pos.Y),
		})
	}
	for _, a := range snap.Aircraft {
		f.Aircraft = append(f.Aircraft, EntityState{
			ID: uint32(a.ID), Kind: "aircraft", X: round1(a.Pos.X), Y: round1(a.Pos.Y),
		})
	}
	return f
}

// Encode marshals the frame with msgpack.
func (f *Frame) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode frame T=%d: %w", f.Tick, err)
	}
	return data, nil
}

// DecodeFrame is the inverse of Encode.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}
