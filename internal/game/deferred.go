package game

// deferredKind names an action scheduled for a later tick.
type deferredKind int

const (
	deferOffensiveMissile deferredKind = iota // salvo follow-up from a defense site
	deferInterceptorWave                      // periodic interceptor spawn check
	deferFollowUpInterceptor                  // second interceptor after a spawn
)

func (k deferredKind) String() string {
	switch k {
	case deferOffensiveMissile:
		return "salvo_missile"
	case deferInterceptorWave:
		return "interceptor_wave"
	case deferFollowUpInterceptor:
		return "follow_up_interceptor"
	default:
		return "unknown"
	}
}

// deferredEvent is a tick-counted stand-in for a timer callback.
type deferredEvent struct {
	remaining int
	kind      deferredKind
	site      int     // defense index for salvo follow-ups, -1 when unused
	index     int     // salvo position, widens the aim spread
	speed     float64 // interceptor speed captured at scheduling time
}

// deferredQueue holds pending events in scheduling order.
type deferredQueue struct {
	events []deferredEvent
}

// schedule queues ev to fire after delay ticks. A delay below one is bumped to
// one so nothing scheduled during processing fires on the same tick.
func (q *deferredQueue) schedule(delay int, ev deferredEvent) {
	if delay < 1 {
		delay = 1
	}
	ev.remaining = delay
	q.events = append(q.events, ev)
}

// advance counts every event down by one tick and returns the events that
// came due, in scheduling order. Due events are removed from the queue.
func (q *deferredQueue) advance() []deferredEvent {
	var due []deferredEvent
	n := 0
	for _, ev := range q.events {
		ev.remaining--
		if ev.remaining <= 0 {
			due = append(due, ev)
			continue
		}
		q.events[n] = ev
		n++
	}
	q.events = q.events[:n]
	return due
}

// pending returns how many events of kind k are queued.
func (q *deferredQueue) pending(k deferredKind) int {
	n := 0
	for _, ev := range q.events {
		if ev.kind == k {
			n++
		}
	}
	return n
}

func (q *deferredQueue) size() int { return len(q.events) }

func (q *deferredQueue) clear() { q.events = nil }
