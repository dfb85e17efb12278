package feed

import (
	"log"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/google/uuid"
)

// DefaultEvery is the frame cadence in ticks when none is given.
const DefaultEvery = 6

// Publisher turns tick reports into frames on a hub. A frame goes out every
// Every ticks and on every phase or level change.
type Publisher struct {
	Every int

	hub      *Hub
	session  uuid.UUID
	lastTick int
	sent     int
	dropped  int
}

// NewPublisher creates a publisher for hub with a fresh session id.
func NewPublisher(hub *Hub, every int) *Publisher {
	if every <= 0 {
		every = DefaultEvery
	}
	return &Publisher{Every: every, hub: hub, session: uuid.New()}
}

// Session is the id stamped on every frame of the current playthrough.
func (p *Publisher) Session() uuid.UUID { return p.session }

// Sent and Dropped count frames handed to the hub and frames it refused.
func (p *Publisher) Sent() int    { return p.sent }
func (p *Publisher) Dropped() int { return p.dropped }

// Due reports whether a tick report should produce a frame.
func (p *Publisher) Due(rep game.TickReport) bool {
	return rep.Transition != nil || rep.Tick%p.Every == 0
}

// Publish encodes and queues a frame when one is due. A tick counter that
// went backwards means the engine was reset, so a new session id is issued.
func (p *Publisher) Publish(rep game.TickReport, snap func() game.Snapshot) {
	if rep.Tick <= p.lastTick {
		p.session = uuid.New()
	}
	p.lastTick = rep.Tick
	if !p.Due(rep) {
		return
	}
	f := NewFrame(p.session, snap())
	data, err := f.Encode()
	if err != nil {
		log.Printf("feed: %v", err)
		return
	}
	if p.hub.Send(data) {
		p.sent++
	} else {
		p.dropped++
	}
}
